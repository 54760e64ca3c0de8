// Package money converts between display-precision decimal amounts and the
// integer milli-unit representation used everywhere inside the engine.
//
// One display unit is 1000 milli-units. Parsing works on digit strings so no
// float64 touches the stored value.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// MilliUnit is the number of minor units per display unit.
const MilliUnit = 1000

var ErrInvalidAmount = errors.New("invalid amount")

// Parse converts a decimal string to signed milli-units. It accepts both dot
// (12.34) and comma (12,34) separators, an optional leading sign, and
// performs half-up rounding on the fourth decimal digit.
//
//	Parse("12.34")   -> 12340
//	Parse("-0,5")    -> -500
//	Parse("1.23456") -> 1235 (rounds up)
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if s == "" || s == "." {
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafe = math.MaxInt64/MilliUnit - 1
	if iv > maxSafe {
		return 0, ErrInvalidAmount
	}

	// First three fractional digits, then half-up rounding on the fourth.
	var frac int64
	scale := int64(100)
	for i := 0; i < len(fracPart) && i < 3; i++ {
		frac += int64(fracPart[i]-'0') * scale
		scale /= 10
	}
	if len(fracPart) > 3 && fracPart[3] >= '5' {
		frac++
	}

	v := iv*MilliUnit + frac
	if negative {
		v = -v
	}
	return v, nil
}

// FromMinorUnits returns the display value of v for formatting boundaries.
// Keep arithmetic in milli-units; this is lossy for very large values.
func FromMinorUnits(v int64) float64 {
	return float64(v) / MilliUnit
}

// ToMinorUnits converts a display value to milli-units with half-up rounding.
func ToMinorUnits(v float64) int64 {
	return int64(math.Round(v * MilliUnit))
}

// Format renders v as a fixed three-decimal string, e.g. -1234 -> "-1.234".
func Format(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%03d", sign, v/MilliUnit, v%MilliUnit)
}
