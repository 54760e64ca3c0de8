package analytics

import (
	"sort"
	"time"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/models/store"
	"golang.org/x/exp/maps"
)

// BuildBillsReport formats grouped bill rows for calendar-style display:
// month numbers become three-letter names and the distinct years present are
// collected in ascending order.
func BuildBillsReport(groups []store.BillGroup) domain.BillsReport {
	years := make(map[int]struct{}, len(groups))
	bills := make([]domain.BillEntry, 0, len(groups))

	for _, g := range groups {
		years[g.Year] = struct{}{}
		bills = append(bills, domain.BillEntry{
			Year:    g.Year,
			Month:   MonthShortName(g.Month),
			Name:    g.Name,
			Status:  g.Status,
			DueDate: g.DueDate,
			Amount:  g.Amount,
		})
	}

	uniqueYears := maps.Keys(years)
	sort.Ints(uniqueYears)

	return domain.BillsReport{Bills: bills, UniqueYears: uniqueYears}
}

// MonthShortName renders a 1-based month number as "Jan".."Dec". Out-of-range
// numbers come back empty rather than panicking on bad stored data.
func MonthShortName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()[:3]
}
