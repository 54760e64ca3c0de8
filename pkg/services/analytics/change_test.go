package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		previous int64
		expected float64
	}{
		{name: "doubling", current: 100, previous: 50, expected: 100},
		{name: "halving", current: 50, previous: 100, expected: -50},
		{name: "no change", current: 75, previous: 75, expected: 0},
		{name: "sign flip", current: -50, previous: 100, expected: -150},
		{name: "negative baseline", current: -150, previous: -100, expected: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PercentageChange(tt.current, tt.previous), 1e-9)
		})
	}
}

// The zero-previous case is a defined discontinuity, not a continuous limit:
// any activity after a silent period reads as a flat 100% swing.
func TestPercentageChange_ZeroPrevious(t *testing.T) {
	assert.Equal(t, float64(0), PercentageChange(0, 0))
	assert.Equal(t, float64(100), PercentageChange(1, 0))
	assert.Equal(t, float64(100), PercentageChange(500, 0))
	assert.Equal(t, float64(100), PercentageChange(-500, 0))
}
