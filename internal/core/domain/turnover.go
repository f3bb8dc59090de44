package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayTypeShare is one payment type's share of a window's turnover.
type PayTypeShare struct {
	PayType string          `json:"payType"`
	Amount  decimal.Decimal `json:"amount"`
}

// TurnoverReport is the interpreted turnover dashboard for one window:
// current total, the matching previous window's total, and the payment
// type split.
type TurnoverReport struct {
	Window        TimeWindow      `json:"window"`
	Total         decimal.Decimal `json:"total"`
	PreviousTotal decimal.Decimal `json:"previousTotal"`
	PayTypes      []PayTypeShare  `json:"payTypes"`
}

// TurnoverSeries is a trailing per-day turnover series plus the flat average
// reference line (current bucket excluded from the average).
type TurnoverSeries struct {
	Window      TimeWindow        `json:"window"`
	Buckets     []TurnoverBucket  `json:"buckets"`
	Average     decimal.Decimal   `json:"average"`
	AverageLine []decimal.Decimal `json:"averageLine"`
}

// BillList is the bill listing for one window. Bill rows stay flat records;
// their column set belongs to the remote report definitions.
type BillList struct {
	Window TimeWindow `json:"window"`
	Bills  []Record   `json:"bills"`
}

// PromotionChange describes a promotion to create or update on the POS side.
type PromotionChange struct {
	PromotionID string
	ArticleID   string
	Description string
	Price       decimal.Decimal
	ValidFrom   time.Time
	ValidTo     time.Time
}
