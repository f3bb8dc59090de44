package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailboard/store_reports_app/internal/apperrors"
	"github.com/retailboard/store_reports_app/internal/core/domain"
	portsclients "github.com/retailboard/store_reports_app/internal/core/ports/clients"
	portsrepo "github.com/retailboard/store_reports_app/internal/core/ports/repositories"
	portssvc "github.com/retailboard/store_reports_app/internal/core/ports/services"
	"github.com/retailboard/store_reports_app/internal/dto"
	"github.com/retailboard/store_reports_app/internal/utils/envelope"
	"github.com/retailboard/store_reports_app/internal/utils/reportwindow"
)

const dayLabelFormat = "2006-01-02"

// reportService implements the ReportSvcFacade interface
type reportService struct {
	BaseService
	tenantRepo portsrepo.TenantRepository
	server     portsclients.ReportServer
	operators  portssvc.OperatorSvcFacade
	now        func() time.Time
}

// ReportServiceOption is a functional option for configuring the report service
type ReportServiceOption func(*reportService)

// WithOperatorValidator sets the credential bridge that gates mutating
// promotion operations.
func WithOperatorValidator(operators portssvc.OperatorSvcFacade) ReportServiceOption {
	return func(s *reportService) {
		s.operators = operators
	}
}

// WithReportClock overrides the service clock, used by tests to pin "today".
func WithReportClock(now func() time.Time) ReportServiceOption {
	return func(s *reportService) {
		s.now = now
	}
}

// NewReportService creates a new report service with the provided options
func NewReportService(tenantRepo portsrepo.TenantRepository, server portsclients.ReportServer, options ...ReportServiceOption) portssvc.ReportSvcFacade {
	svc := &reportService{
		tenantRepo: tenantRepo,
		server:     server,
		now:        time.Now,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportService implements the ReportSvcFacade interface
var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// tenant resolves the tenant and refuses expired ones before any remote call.
func (s *reportService) tenant(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("find tenant %s: %w", tenantID, err)
	}
	if tenant.Expired(s.now()) {
		return nil, fmt.Errorf("%w: tenant %s subscription expired", apperrors.ErrForbidden, tenantID)
	}
	return tenant, nil
}

// Turnover returns the turnover dashboard for the window of the given kind:
// current and previous totals plus the payment type split, fetched in one
// envelope so the page costs a single round trip.
func (s *reportService) Turnover(ctx context.Context, tenantID string, date time.Time, kind domain.WindowKind) (*domain.TurnoverReport, error) {
	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	win, err := reportwindow.Window(kind, date, tenant.UTCOffsetHours, nil)
	if err != nil {
		return nil, err
	}
	prevStart, prevEnd := previousWindow(win, kind)

	env, err := envelope.Build(tenant.TenantID, tenant.Password, map[string]string{
		blockCurrentTurnover: queryCurrentTurnover,
		blockLastTurnover:    queryLastTurnover,
		blockCurrentPayType:  queryCurrentPayType,
	}, envelope.Substitutions{
		"START_DATE":      envelope.Date(win.Start),
		"END_DATE":        envelope.Date(win.End),
		"LAST_START_DATE": envelope.Date(prevStart),
		"LAST_END_DATE":   envelope.Date(prevEnd),
	})
	if err != nil {
		return nil, err
	}

	result, err := s.server.Query(ctx, reportDashboard, tenant.TenantID, env)
	if err != nil {
		s.LogError(ctx, err, "Turnover report failed",
			slog.String("tenant_id", tenantID),
			slog.String("window", win.Label))
		return nil, err
	}

	report := &domain.TurnoverReport{
		Window:        win,
		Total:         recordDecimal(firstRecord(result.Block(blockCurrentTurnover)), "Total"),
		PreviousTotal: recordDecimal(firstRecord(result.Block(blockLastTurnover)), "Total"),
	}
	for _, rec := range result.Block(blockCurrentPayType) {
		report.PayTypes = append(report.PayTypes, domain.PayTypeShare{
			PayType: recordString(rec, "PayType"),
			Amount:  recordDecimal(rec, "Total"),
		})
	}

	s.LogInfo(ctx, "Turnover report generated",
		slog.String("tenant_id", tenantID),
		slog.String("window", win.Label),
		slog.Int("pay_types", len(report.PayTypes)))
	return report, nil
}

// TurnoverSeries returns the per-day turnover for the trailing window of the
// given length ending at date, plus the flat average reference line. The
// bucket matching the tenant-local "today" is flagged current and excluded
// from the average, because a half-finished day would drag it down.
func (s *reportService) TurnoverSeries(ctx context.Context, tenantID string, date time.Time, days int) (*domain.TurnoverSeries, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: series length must be positive, got %d", apperrors.ErrValidation, days)
	}

	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	dayWin, err := reportwindow.Window(domain.WindowDay, date, tenant.UTCOffsetHours, nil)
	if err != nil {
		return nil, err
	}
	win := domain.TimeWindow{
		Start: dayWin.End.AddDate(0, 0, -days),
		End:   dayWin.End,
		Label: fmt.Sprintf("%d days to %s", days, dayWin.Label),
	}

	env, err := envelope.Build(tenant.TenantID, tenant.Password, map[string]string{
		blockTurnoverByDay: queryTurnoverByDay,
	}, envelope.Substitutions{
		"START_DATE": envelope.Date(win.Start),
		"END_DATE":   envelope.Date(win.End),
		"TIMEOFFSET": envelope.Int(tenant.UTCOffsetHours),
	})
	if err != nil {
		return nil, err
	}

	result, err := s.server.Query(ctx, reportTurnoverSeries, tenant.TenantID, env)
	if err != nil {
		s.LogError(ctx, err, "Turnover series failed",
			slog.String("tenant_id", tenantID),
			slog.Int("days", days))
		return nil, err
	}

	// Index remote rows by day; days without bills stay zero-valued buckets.
	byDay := make(map[string]domain.Record, len(result.Block(blockTurnoverByDay)))
	for _, rec := range result.Block(blockTurnoverByDay) {
		byDay[dayKey(recordString(rec, "Day"))] = rec
	}

	localToday := s.now().UTC().Add(time.Duration(tenant.UTCOffsetHours) * time.Hour).Format(dayLabelFormat)
	refDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	buckets := make([]domain.TurnoverBucket, 0, days)
	for i := days - 1; i >= 0; i-- {
		label := refDay.AddDate(0, 0, -i).Format(dayLabelFormat)
		buckets = append(buckets, domain.TurnoverBucket{
			Label:   label,
			Value:   recordDecimal(byDay[label], "Total"),
			Current: label == localToday,
		})
	}

	avg, line := reportwindow.AverageLine(buckets)
	s.LogInfo(ctx, "Turnover series generated",
		slog.String("tenant_id", tenantID),
		slog.Int("buckets", len(buckets)),
		slog.String("average", avg.String()))
	return &domain.TurnoverSeries{
		Window:      win,
		Buckets:     buckets,
		Average:     avg,
		AverageLine: line,
	}, nil
}

// Bills lists the bills closed inside date's day window.
func (s *reportService) Bills(ctx context.Context, tenantID string, date time.Time) (*domain.BillList, error) {
	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	win, err := reportwindow.Window(domain.WindowDay, date, tenant.UTCOffsetHours, nil)
	if err != nil {
		return nil, err
	}

	env, err := envelope.Build(tenant.TenantID, tenant.Password, map[string]string{
		blockBills: queryBills,
	}, envelope.Substitutions{
		"START_DATE": envelope.Date(win.Start),
		"END_DATE":   envelope.Date(win.End),
	})
	if err != nil {
		return nil, err
	}

	result, err := s.server.Query(ctx, reportBills, tenant.TenantID, env)
	if err != nil {
		s.LogError(ctx, err, "Bill listing failed",
			slog.String("tenant_id", tenantID),
			slog.String("window", win.Label))
		return nil, err
	}

	return &domain.BillList{Window: win, Bills: result.Block(blockBills)}, nil
}

// Articles looks articles up by free-text search. The search term travels as
// a quoted literal, so the envelope builder's delimiter check is the line of
// defense here.
func (s *reportService) Articles(ctx context.Context, tenantID, search string) ([]domain.Record, error) {
	if strings.TrimSpace(search) == "" {
		return nil, fmt.Errorf("%w: search term required", apperrors.ErrValidation)
	}

	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	env, err := envelope.Build(tenant.TenantID, tenant.Password, map[string]string{
		blockArticles: queryArticles,
	}, envelope.Substitutions{
		"SEARCH_TEXT": envelope.Text(search),
	})
	if err != nil {
		return nil, err
	}

	result, err := s.server.Query(ctx, reportArticles, tenant.TenantID, env)
	if err != nil {
		s.LogError(ctx, err, "Article lookup failed", slog.String("tenant_id", tenantID))
		return nil, err
	}
	return result.Block(blockArticles), nil
}

// Promotions lists the tenant's promotions.
func (s *reportService) Promotions(ctx context.Context, tenantID string) ([]domain.Record, error) {
	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	env, err := envelope.Build(tenant.TenantID, tenant.Password, map[string]string{
		blockPromotions: queryPromotions,
	}, nil)
	if err != nil {
		return nil, err
	}

	result, err := s.server.Query(ctx, reportPromotions, tenant.TenantID, env)
	if err != nil {
		s.LogError(ctx, err, "Promotion listing failed", slog.String("tenant_id", tenantID))
		return nil, err
	}
	return result.Block(blockPromotions), nil
}

// SavePromotion creates or updates a promotion on the POS side. The write is
// dispatched over Execute (POST) only after the operator validated against
// the remote record.
func (s *reportService) SavePromotion(ctx context.Context, tenantID string, operator dto.OperatorLogin, change domain.PromotionChange) error {
	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return err
	}

	if err := s.gateOnOperator(ctx, tenantID, operator); err != nil {
		return err
	}

	sqlTemplate := execUpdatePromotion
	promoID := change.PromotionID
	if promoID == "" {
		sqlTemplate = execInsertPromotion
		promoID = uuid.NewString()
	}

	env, err := envelope.Build(tenant.TenantID, tenant.Password, map[string]string{
		blockSavePromotion: sqlTemplate,
	}, envelope.Substitutions{
		"PROMO_ID":    envelope.Raw(promoID),
		"ARTICLE_ID":  envelope.Raw(change.ArticleID),
		"DESCRIPTION": envelope.Text(change.Description),
		"PROMO_PRICE": envelope.Raw(change.Price.String()),
		"VALID_FROM":  envelope.Date(change.ValidFrom),
		"VALID_TO":    envelope.Date(change.ValidTo),
	})
	if err != nil {
		return err
	}

	if _, err := s.server.Execute(ctx, reportPromotionWrite, tenant.TenantID, env); err != nil {
		s.LogError(ctx, err, "Promotion write failed",
			slog.String("tenant_id", tenantID),
			slog.String("promo_id", promoID))
		return err
	}

	s.LogInfo(ctx, "Promotion saved",
		slog.String("tenant_id", tenantID),
		slog.String("promo_id", promoID),
		slog.String("operator", operator.Username))
	return nil
}

// DeletePromotion removes a promotion on the POS side, gated like SavePromotion.
func (s *reportService) DeletePromotion(ctx context.Context, tenantID string, operator dto.OperatorLogin, promotionID string) error {
	if promotionID == "" {
		return fmt.Errorf("%w: promotion id required", apperrors.ErrValidation)
	}

	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return err
	}

	if err := s.gateOnOperator(ctx, tenantID, operator); err != nil {
		return err
	}

	env, err := envelope.Build(tenant.TenantID, tenant.Password, map[string]string{
		blockDeletePromotion: execDeletePromotion,
	}, envelope.Substitutions{
		"PROMO_ID": envelope.Raw(promotionID),
	})
	if err != nil {
		return err
	}

	if _, err := s.server.Execute(ctx, reportPromotionWrite, tenant.TenantID, env); err != nil {
		s.LogError(ctx, err, "Promotion delete failed",
			slog.String("tenant_id", tenantID),
			slog.String("promo_id", promotionID))
		return err
	}

	s.LogInfo(ctx, "Promotion deleted",
		slog.String("tenant_id", tenantID),
		slog.String("promo_id", promotionID),
		slog.String("operator", operator.Username))
	return nil
}

// gateOnOperator runs the credential bridge before any mutating dispatch. A
// negative validation is not an infrastructure failure; it surfaces as
// ErrOperatorNotValidated so callers can deny the action with a warning.
func (s *reportService) gateOnOperator(ctx context.Context, tenantID string, operator dto.OperatorLogin) error {
	if s.operators == nil {
		return fmt.Errorf("%w: no operator validator configured", apperrors.ErrForbidden)
	}

	validated, err := s.operators.ValidateOperator(ctx, tenantID, operator.Username, operator.Password)
	if err != nil {
		return err
	}
	if !validated {
		s.LogWarn(ctx, "Operator validation rejected",
			slog.String("tenant_id", tenantID),
			slog.String("operator", operator.Username))
		return apperrors.ErrOperatorNotValidated
	}
	return nil
}

// previousWindow derives the comparison window preceding win. Months step by
// calendar month so a 31-day January compares to the full December, not to
// its last 31 days.
func previousWindow(win domain.TimeWindow, kind domain.WindowKind) (time.Time, time.Time) {
	if kind == domain.WindowMonth {
		return win.Start.AddDate(0, -1, 0), win.Start
	}
	return win.Start.Add(-win.Duration()), win.Start
}

// dayKey normalizes a remote Day column value to the bucket label format.
func dayKey(s string) string {
	if len(s) >= len(dayLabelFormat) {
		return s[:len(dayLabelFormat)]
	}
	return s
}
