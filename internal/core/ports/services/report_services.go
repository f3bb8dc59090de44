package services

import (
	"context"
	"time"

	"github.com/retailboard/store_reports_app/internal/core/domain"
	"github.com/retailboard/store_reports_app/internal/dto"
)

// ReportSvcFacade is the report gateway proper: it resolves the tenant,
// normalizes the requested window, builds the query envelope, dispatches it
// to the report server and interprets the response.
type ReportSvcFacade interface {
	// Turnover returns the turnover dashboard (current total, previous
	// window's total, pay type split) for the window of the given kind
	// around date.
	Turnover(ctx context.Context, tenantID string, date time.Time, kind domain.WindowKind) (*domain.TurnoverReport, error)

	// TurnoverSeries returns the per-day turnover for the trailing window of
	// the given length ending at date, plus the flat average line with the
	// still-running day excluded.
	TurnoverSeries(ctx context.Context, tenantID string, date time.Time, days int) (*domain.TurnoverSeries, error)

	// Bills lists the bills of date's day window.
	Bills(ctx context.Context, tenantID string, date time.Time) (*domain.BillList, error)

	// Articles looks articles up by free-text search.
	Articles(ctx context.Context, tenantID, search string) ([]domain.Record, error)

	// Promotions lists the tenant's promotions.
	Promotions(ctx context.Context, tenantID string) ([]domain.Record, error)

	// SavePromotion creates or updates a promotion on the POS side. The
	// operator must validate against the remote record first; a failed
	// validation surfaces as apperrors.ErrOperatorNotValidated and nothing is
	// dispatched.
	SavePromotion(ctx context.Context, tenantID string, operator dto.OperatorLogin, change domain.PromotionChange) error

	// DeletePromotion removes a promotion on the POS side, gated like
	// SavePromotion.
	DeletePromotion(ctx context.Context, tenantID string, operator dto.OperatorLogin, promotionID string) error
}
