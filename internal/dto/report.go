package dto

import (
	"github.com/retailboard/store_reports_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TurnoverResponse is the rendered turnover dashboard for one window.
type TurnoverResponse struct {
	Window        domain.TimeWindow     `json:"window"`
	Total         decimal.Decimal       `json:"total"`
	PreviousTotal decimal.Decimal       `json:"previousTotal"`
	PayTypes      []domain.PayTypeShare `json:"payTypes"`
}

// TurnoverSeriesResponse carries a trailing per-day series and the flat
// average reference line the chart draws over it.
type TurnoverSeriesResponse struct {
	Window      domain.TimeWindow       `json:"window"`
	Buckets     []domain.TurnoverBucket `json:"buckets"`
	Average     decimal.Decimal         `json:"average"`
	AverageLine []decimal.Decimal       `json:"averageLine"`
}

// BillsResponse lists the bills of one window as flat records.
type BillsResponse struct {
	Window domain.TimeWindow `json:"window"`
	Bills  []domain.Record   `json:"bills"`
}

// ArticlesResponse lists matching articles as flat records.
type ArticlesResponse struct {
	Articles []domain.Record `json:"articles"`
}

// PromotionsResponse lists the tenant's promotions as flat records.
type PromotionsResponse struct {
	Promotions []domain.Record `json:"promotions"`
}

// SavePromotionRequest creates or updates a promotion on the POS side. The
// operator credentials gate the write; PromotionID empty means create.
type SavePromotionRequest struct {
	Operator    OperatorLogin   `json:"operator" binding:"required"`
	PromotionID string          `json:"promotionID"`
	ArticleID   string          `json:"articleID" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ValidFrom   string          `json:"validFrom" binding:"required,datetime=2006-01-02"`
	ValidTo     string          `json:"validTo" binding:"required,datetime=2006-01-02"`
}

// DeletePromotionRequest removes a promotion on the POS side.
type DeletePromotionRequest struct {
	Operator OperatorLogin `json:"operator" binding:"required"`
}

// ReportErrorResponse is the error body for report-server domain errors.
type ReportErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
