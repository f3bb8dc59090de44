package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WindowKind selects how a report date is widened into a query window.
type WindowKind string

const (
	// WindowDay covers one tenant-local calendar day.
	WindowDay WindowKind = "DAY"
	// WindowWeek covers the seven days trailing up to and including the
	// reference day.
	WindowWeek WindowKind = "WEEK"
	// WindowMonth covers the reference day's calendar month.
	WindowMonth WindowKind = "MONTH"
	// WindowCustom covers an explicit caller-provided inclusive date range.
	WindowCustom WindowKind = "CUSTOM"
)

// TimeWindow is a half-open UTC interval [Start, End): End is the first
// instant after the last included one, so the boundary instant belongs to the
// next window and midnight rows are never dropped or double-counted.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Duration returns the window's length.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// TurnoverBucket is one aggregated period of a turnover series. Current marks
// the still-incomplete period (today, or the running month); averaging skips
// it so a partial bucket cannot bias the reference line downward.
type TurnoverBucket struct {
	Label   string          `json:"label"`
	Value   decimal.Decimal `json:"value"`
	Current bool            `json:"current"`
}
