package domain

import "time"

// BillEntry is one (year, month, name, status, due date) group of bills with
// the summed amount. Month is a three-letter short name for display.
type BillEntry struct {
	Year    int
	Month   string
	Name    string
	Status  string
	DueDate time.Time
	Amount  int64
}

// BillsReport groups a user's bills for calendar-style reporting.
// UniqueYears lists every year present, ascending, so a UI can pick a year
// and filter months within it.
type BillsReport struct {
	Bills       []BillEntry
	UniqueYears []int
}
