package analytics

import "github.com/fin-tools/finsight/pkg/models/domain"

const (
	twoMonthDays = 60
	oneYearDays  = 360 // 12 x 30-day months
)

// ZoomLevels picks the 1-2 bucket granularities worth charting for a period,
// by its inclusive day length. The first entry is the default display
// granularity.
func ZoomLevels(p domain.Period) []domain.Granularity {
	length := p.Days()

	if length <= twoMonthDays {
		return []domain.Granularity{domain.GranularityDay, domain.GranularityWeek}
	}
	if length <= oneYearDays {
		return []domain.Granularity{domain.GranularityWeek, domain.GranularityMonth}
	}
	return []domain.Granularity{domain.GranularityMonth, domain.GranularityYear}
}
