// Package reportwindow converts tenant-local report dates into the concrete
// UTC query windows the report server is parameterized with.
package reportwindow

import (
	"fmt"
	"time"

	"github.com/retailboard/store_reports_app/internal/apperrors"
	"github.com/retailboard/store_reports_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	dayLabelFormat   = "2006-01-02"
	monthLabelFormat = "2006-01"
)

// Range is an explicit caller-provided date range. Both dates are inclusive
// calendar days; Window widens End to the half-open boundary internally.
type Range struct {
	Start time.Time
	End   time.Time
}

// Window computes the UTC query window for the given kind and tenant-local
// reference date. utcOffsetHours is the tenant's whole-hour offset from UTC;
// both bounds are shifted by it so the tenant's local midnight lines up with
// the UTC timestamps the report server stores. custom is only consulted for
// WindowCustom.
func Window(kind domain.WindowKind, referenceDate time.Time, utcOffsetHours int, custom *Range) (domain.TimeWindow, error) {
	shift := -time.Duration(utcOffsetHours) * time.Hour

	switch kind {
	case domain.WindowDay:
		localStart := truncateToDay(referenceDate)
		return domain.TimeWindow{
			Start: localStart.Add(shift),
			End:   localStart.AddDate(0, 0, 1).Add(shift),
			Label: localStart.Format(dayLabelFormat),
		}, nil

	case domain.WindowWeek:
		// Trailing week: ends where the reference day's window ends.
		localEnd := truncateToDay(referenceDate).AddDate(0, 0, 1)
		return domain.TimeWindow{
			Start: localEnd.AddDate(0, 0, -7).Add(shift),
			End:   localEnd.Add(shift),
			Label: localEnd.AddDate(0, 0, -7).Format(dayLabelFormat) + ".." + truncateToDay(referenceDate).Format(dayLabelFormat),
		}, nil

	case domain.WindowMonth:
		firstOfMonth := time.Date(referenceDate.Year(), referenceDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		return domain.TimeWindow{
			Start: firstOfMonth.Add(shift),
			End:   firstOfMonth.AddDate(0, 1, 0).Add(shift),
			Label: firstOfMonth.Format(monthLabelFormat),
		}, nil

	case domain.WindowCustom:
		if custom == nil {
			return domain.TimeWindow{}, fmt.Errorf("%w: custom window requires an explicit range", apperrors.ErrValidation)
		}
		localStart := truncateToDay(custom.Start)
		localEnd := truncateToDay(custom.End).AddDate(0, 0, 1)
		if !localEnd.After(localStart) {
			return domain.TimeWindow{}, fmt.Errorf("%w: custom range end %s precedes start %s", apperrors.ErrValidation,
				custom.End.Format(dayLabelFormat), custom.Start.Format(dayLabelFormat))
		}
		return domain.TimeWindow{
			Start: localStart.Add(shift),
			End:   localEnd.Add(shift),
			Label: localStart.Format(dayLabelFormat) + ".." + truncateToDay(custom.End).Format(dayLabelFormat),
		}, nil

	default:
		return domain.TimeWindow{}, fmt.Errorf("%w: unknown window kind %q", apperrors.ErrValidation, kind)
	}
}

// AverageLine computes the reference average for a trailing turnover series.
// Buckets flagged Current (the still-incomplete day or month) are excluded
// from the average. The single resulting value is replicated across exactly
// len(buckets) points so the client can draw a flat reference line over the
// series.
//
// When every bucket is flagged current there is nothing to average and the
// result is zero, never a division fault.
func AverageLine(buckets []domain.TurnoverBucket) (decimal.Decimal, []decimal.Decimal) {
	sum := decimal.Zero
	counted := 0
	for _, b := range buckets {
		if b.Current {
			continue
		}
		sum = sum.Add(b.Value)
		counted++
	}

	avg := decimal.Zero
	if counted > 0 {
		avg = sum.Div(decimal.NewFromInt(int64(counted)))
	}

	line := make([]decimal.Decimal, len(buckets))
	for i := range line {
		line[i] = avg
	}
	return avg, line
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
