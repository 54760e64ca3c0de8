package analytics

// PercentageChange reports the relative change from previous to current as a
// percentage. The zero-previous case is defined, not an error: no activity to
// no activity is 0, anything from nothing is a full 100% swing. The function
// is deliberately discontinuous at previous == 0.
func PercentageChange(current, previous int64) float64 {
	if previous == 0 {
		if current == previous {
			return 0
		}
		return 100
	}
	return float64(current-previous) / float64(previous) * 100
}
