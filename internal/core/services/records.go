package services

import (
	"time"

	"github.com/retailboard/store_reports_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Remote date columns arrive as strings in one of these layouts.
var recordTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func firstRecord(records []domain.Record) domain.Record {
	if len(records) == 0 {
		return nil
	}
	return records[0]
}

func recordString(rec domain.Record, key string) string {
	if rec == nil {
		return ""
	}
	s, _ := rec[key].(string)
	return s
}

// recordDecimal reads a numeric column. The remote server is loose about
// number representation (JSON number vs. string), so both are accepted;
// anything else counts as zero.
func recordDecimal(rec domain.Record, key string) decimal.Decimal {
	if rec == nil {
		return decimal.Zero
	}
	switch v := rec[key].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// recordTime reads a date column. An absent or NULL column is a valid nil
// (ok true); a value that is present but matches no known layout reports ok
// false, because a nil from garbage must not read the same as a nil from
// NULL. The remote sentinel date is returned as-is so domain.NeverExpires can
// special-case it.
func recordTime(rec domain.Record, key string) (*time.Time, bool) {
	if rec == nil || rec[key] == nil {
		return nil, true
	}
	s, isString := rec[key].(string)
	if !isString {
		return nil, false
	}
	if s == "" {
		return nil, true
	}
	for _, layout := range recordTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, true
		}
	}
	return nil, false
}
