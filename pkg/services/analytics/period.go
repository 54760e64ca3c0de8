package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/fin-tools/finsight/pkg/models/domain"
)

// DateLayout is the only accepted wire format for period bounds.
const DateLayout = "2006-01-02"

// defaultPeriodDays is the trailing window used when no bounds are supplied.
const defaultPeriodDays = 30

// ErrInvalidDate marks a period bound that was present but unparseable.
// Absence triggers defaulting; malformedness never does.
var ErrInvalidDate = errors.New("invalid date")

// ResolvePeriod turns optional from/to strings into a concrete period.
// Missing bounds default to the trailing 30 days ending at now. Both
// endpoints are normalized to midnight UTC.
//
// No ordering check is performed: an inverted range flows through and
// produces empty results downstream.
func ResolvePeriod(now time.Time, from, to string) (domain.Period, error) {
	end := truncateDay(now)
	start := end.AddDate(0, 0, -defaultPeriodDays)

	if from != "" {
		t, err := time.ParseInLocation(DateLayout, from, time.UTC)
		if err != nil {
			return domain.Period{}, fmt.Errorf("%w: from=%q", ErrInvalidDate, from)
		}
		start = t
	}
	if to != "" {
		t, err := time.ParseInLocation(DateLayout, to, time.UTC)
		if err != nil {
			return domain.Period{}, fmt.Errorf("%w: to=%q", ErrInvalidDate, to)
		}
		end = t
	}

	return domain.Period{Start: start, End: end}, nil
}

// PreviousPeriod derives the immediately preceding period of identical
// inclusive length. For any period of length >= 1 the result ends strictly
// before the input starts.
func PreviousPeriod(p domain.Period) domain.Period {
	length := p.Days()
	return domain.Period{
		Start: p.Start.AddDate(0, 0, -length),
		End:   p.End.AddDate(0, 0, -length),
	}
}
