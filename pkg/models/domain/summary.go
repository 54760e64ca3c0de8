package domain

import "time"

// Summary compares the resolved period against the immediately preceding
// period of identical length. Amounts are integer milli-units; changes are
// percentages.
type Summary struct {
	RemainingAmount int64
	RemainingChange float64
	IncomeAmount    int64
	IncomeChange    float64
	ExpensesAmount  int64
	ExpensesChange  float64
}

// TimeBucket is one entry of a gapless trend series. Expenses carry a
// positive magnitude here, unlike the ledger's signed convention.
type TimeBucket struct {
	Date     time.Time
	Income   int64
	Expenses int64
}

// ActivePeriod is a complete bucket series at one granularity.
type ActivePeriod struct {
	DateTrunc Granularity
	Data      []TimeBucket
}

// ActivePeriodsReport carries every granularity that could be computed for
// the period plus the zoom levels the caller should offer.
type ActivePeriodsReport struct {
	ActivePeriods []ActivePeriod
	ZoomLevels    []Granularity
}

// RankedTransaction is a top-N transaction entry. Amount is an absolute
// magnitude regardless of flow.
type RankedTransaction struct {
	Date   time.Time
	Amount int64
	Payee  string
}

// RankedCategory is a top-N category entry. The synthetic "Other" entry
// aggregates every category below the rank cutoff.
type RankedCategory struct {
	Name  string
	Value int64
}

// CategoryBudget pairs a category's realized income and expense with its
// flat budget. Expense is a positive magnitude.
type CategoryBudget struct {
	Name    string
	Income  int64
	Expense int64
	Budget  int64
}

// DataCount reports how many records of each kind a user owns.
type DataCount struct {
	Accounts     int64
	Categories   int64
	Transactions int64
	Bills        int64
}
