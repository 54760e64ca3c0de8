package analytics

import (
	"time"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/models/store"
)

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateWeek(t time.Time) time.Time {
	d := truncateDay(t)
	// ISO weeks start on Monday; time.Weekday numbers Sunday as 0.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func truncateMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func truncateYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Truncate maps t to the start of its calendar unit at granularity g, in UTC.
func Truncate(t time.Time, g domain.Granularity) time.Time {
	switch g {
	case domain.GranularityWeek:
		return truncateWeek(t)
	case domain.GranularityMonth:
		return truncateMonth(t)
	case domain.GranularityYear:
		return truncateYear(t)
	default:
		return truncateDay(t)
	}
}

func nextUnit(t time.Time, g domain.Granularity) time.Time {
	switch g {
	case domain.GranularityWeek:
		return t.AddDate(0, 0, 7)
	case domain.GranularityMonth:
		return t.AddDate(0, 1, 0)
	case domain.GranularityYear:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// enumerateUnits lists every unit start touched by the period, in calendar
// order. The first week/month/year bucket may begin before p.Start; that is
// the bucket the period's first day belongs to. Inverted periods enumerate
// nothing.
func enumerateUnits(p domain.Period, g domain.Granularity) []time.Time {
	if p.End.Before(p.Start) {
		return nil
	}
	var units []time.Time
	last := Truncate(p.End, g)
	for u := Truncate(p.Start, g); !u.After(last); u = nextUnit(u, g) {
		units = append(units, u)
	}
	return units
}

// FillGaps turns sparse grouped rows into a rectangular series: exactly one
// bucket per calendar unit of the period, zero-valued where the ledger had no
// activity. Row dates are matched by truncated-date equality, so rows may
// arrive truncated by the store or not.
func FillGaps(rows []store.BucketRow, p domain.Period, g domain.Granularity) []domain.TimeBucket {
	byUnit := make(map[time.Time]store.BucketRow, len(rows))
	for _, r := range rows {
		byUnit[Truncate(r.BucketStart, g)] = r
	}

	units := enumerateUnits(p, g)
	buckets := make([]domain.TimeBucket, 0, len(units))
	for _, u := range units {
		b := domain.TimeBucket{Date: u}
		if r, ok := byUnit[u]; ok {
			b.Income = r.Income
			b.Expenses = r.Expenses
		}
		buckets = append(buckets, b)
	}
	return buckets
}
