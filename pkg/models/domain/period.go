package domain

import "time"

// Granularity is a calendar bucket size for trend series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// Flow selects a transaction direction by amount sign.
type Flow string

const (
	FlowIncome  Flow = "income"
	FlowExpense Flow = "expense"
)

// Period is a closed date interval. Both endpoints are midnight-UTC dates;
// the interval includes every transaction dated within [Start, End].
type Period struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive day count of the period.
// A single-day period has length 1; an inverted period reports <= 0.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}
