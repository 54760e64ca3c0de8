package analytics

import (
	"sort"

	"github.com/fin-tools/finsight/pkg/models/domain"
)

// DefaultRankLimit is the rank cutoff used when the caller does not pick one.
const DefaultRankLimit = 10

// OtherCategory is the synthetic rollup entry name.
const OtherCategory = "Other"

// ClampRankLimit normalizes a caller-supplied rank cutoff to [1, 10],
// defaulting when unset.
func ClampRankLimit(n int) int {
	if n <= 0 {
		return DefaultRankLimit
	}
	if n > DefaultRankLimit {
		return DefaultRankLimit
	}
	return n
}

// RankCategories orders categories by summed magnitude and applies the
// "Other" rollup: with more than limit-1 entries, the top limit-1 are kept
// named and the rest collapse into a single Other entry holding their sum.
// With no remainder there is no Other entry. Ties break by name so fixtures
// are reproducible.
func RankCategories(categories []domain.RankedCategory, limit int) []domain.RankedCategory {
	limit = ClampRankLimit(limit)

	ranked := make([]domain.RankedCategory, len(categories))
	copy(ranked, categories)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) <= limit-1 {
		return ranked
	}

	var other int64
	for _, c := range ranked[limit-1:] {
		other += c.Value
	}
	return append(ranked[:limit-1:limit-1], domain.RankedCategory{
		Name:  OtherCategory,
		Value: other,
	})
}
