package api

import "time"

// Monetary fields cross this boundary as integer milli-units; display
// conversion is the client's job.

type Summary struct {
	RemainingAmount int64   `json:"remainingAmount"`
	RemainingChange float64 `json:"remainingChange"`
	IncomeAmount    int64   `json:"incomeAmount"`
	IncomeChange    float64 `json:"incomeChange"`
	ExpensesAmount  int64   `json:"expensesAmount"`
	ExpensesChange  float64 `json:"expensesChange"`
}

type TimeBucket struct {
	Date     time.Time `json:"date"`
	Income   int64     `json:"income"`
	Expenses int64     `json:"expenses"`
}

type ActivePeriod struct {
	DateTrunc        string       `json:"dateTrunc"`
	ActivePeriodData []TimeBucket `json:"activePeriodData"`
}

type ActivePeriodsResponse struct {
	ActivePeriods  []ActivePeriod `json:"activePeriods"`
	ChartZoomLevel []string       `json:"chartZoomLevel"`
}

type RankedTransaction struct {
	Date   time.Time `json:"date"`
	Amount int64     `json:"amount"`
	Payee  string    `json:"payee"`
}

type TopTransactionsResponse struct {
	TopTransactions []RankedTransaction `json:"topTransactions"`
}

type RankedCategory struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type TopCategoriesResponse struct {
	TopCategories []RankedCategory `json:"topCategories"`
}

type CategoryBudget struct {
	Name    string `json:"name"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Budget  int64  `json:"budget"`
}

type CategoriesBudgetResponse struct {
	CategoriesBudgetData []CategoryBudget `json:"categoriesBudgetData"`
}

type BillEntry struct {
	Year    int       `json:"year"`
	Month   string    `json:"month"`
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	DueDate time.Time `json:"dueDate"`
	Amount  int64     `json:"amount"`
}

type BillsResponse struct {
	BillsData   []BillEntry `json:"billsData"`
	UniqueYears []int       `json:"uniqueYears"`
}

type DataCountResponse struct {
	AccountCount     int64 `json:"accountCount"`
	CategoriesCount  int64 `json:"categoriesCount"`
	TransactionCount int64 `json:"transactionCount"`
	BillsCount       int64 `json:"billsCount"`
}

type Error struct {
	Error string `json:"error"`
}
