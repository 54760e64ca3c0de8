package store

import "time"

// FinancialTotals are the three period scalars. Income is >= 0, Expenses is
// <= 0 (ledger sign convention), Remaining = Income + Expenses.
type FinancialTotals struct {
	Income    int64
	Expenses  int64
	Remaining int64
}

// BucketRow is a grouped sum for one truncated calendar date. Expenses come
// back as a positive magnitude.
type BucketRow struct {
	BucketStart time.Time
	Income      int64
	Expenses    int64
}

// TransactionRow is a ranked transaction row; Amount is absolute.
type TransactionRow struct {
	Date   time.Time
	Amount int64
	Payee  string
}

// CategoryTotal is a per-category sum of absolute amounts.
type CategoryTotal struct {
	Name  string
	Value int64
}

// CategoryActivity is a per-category breakdown for budget variance.
// Only categories with at least one transaction in range are reported.
type CategoryActivity struct {
	Name    string
	Budget  int64
	Income  int64
	Expense int64
}

// BillGroup is one grouped bills row keyed by year, month, name, status and
// due date, with the summed amount.
type BillGroup struct {
	Year    int
	Month   int
	Name    string
	Status  string
	DueDate time.Time
	Amount  int64
}
