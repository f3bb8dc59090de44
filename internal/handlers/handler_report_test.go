package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retailboard/store_reports_app/internal/apperrors"
	"github.com/retailboard/store_reports_app/internal/core/domain"
	portssvc "github.com/retailboard/store_reports_app/internal/core/ports/services"
	"github.com/retailboard/store_reports_app/internal/dto"
	"github.com/retailboard/store_reports_app/internal/handlers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportService ---
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Turnover(ctx context.Context, tenantID string, date time.Time, kind domain.WindowKind) (*domain.TurnoverReport, error) {
	args := m.Called(ctx, tenantID, date, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TurnoverReport), args.Error(1)
}
func (m *MockReportService) TurnoverSeries(ctx context.Context, tenantID string, date time.Time, days int) (*domain.TurnoverSeries, error) {
	args := m.Called(ctx, tenantID, date, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TurnoverSeries), args.Error(1)
}
func (m *MockReportService) Bills(ctx context.Context, tenantID string, date time.Time) (*domain.BillList, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillList), args.Error(1)
}
func (m *MockReportService) Articles(ctx context.Context, tenantID, search string) ([]domain.Record, error) {
	args := m.Called(ctx, tenantID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}
func (m *MockReportService) Promotions(ctx context.Context, tenantID string) ([]domain.Record, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}
func (m *MockReportService) SavePromotion(ctx context.Context, tenantID string, operator dto.OperatorLogin, change domain.PromotionChange) error {
	args := m.Called(ctx, tenantID, operator, change)
	return args.Error(0)
}
func (m *MockReportService) DeletePromotion(ctx context.Context, tenantID string, operator dto.OperatorLogin, promotionID string) error {
	args := m.Called(ctx, tenantID, operator, promotionID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.ReportSvcFacade = (*MockReportService)(nil)

// --- Test Suite ---
type ReportHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockReportService *MockReportService
}

func (suite *ReportHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockReportService = new(MockReportService)

	objectGroup := suite.router.Group("/api/v1/objects/:object_id") // Mimic grouping
	handlers.RegisterReportRoutes(objectGroup, suite.mockReportService, handlers.Localize)
}

// --- Test Cases ---

func (suite *ReportHandlerTestSuite) TestGetTurnover_Success() {
	expected := &domain.TurnoverReport{
		Window: domain.TimeWindow{
			Start: time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.May, 11, 0, 0, 0, 0, time.UTC),
			Label: "2024-05-10",
		},
		Total:         decimal.NewFromFloat(1250.50),
		PreviousTotal: decimal.NewFromFloat(990.00),
		PayTypes: []domain.PayTypeShare{
			{PayType: "cash", Amount: decimal.NewFromFloat(800.50)},
		},
	}

	suite.mockReportService.On("Turnover",
		mock.Anything,
		"shop-1",
		time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC),
		domain.WindowDay,
	).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/objects/shop-1/reports/turnover?date=2024-05-10&kind=day", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.TurnoverResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Total.Equal(expected.Total))
	suite.Len(body.PayTypes, 1)

	suite.mockReportService.AssertExpectations(suite.T())
}

func (suite *ReportHandlerTestSuite) TestGetTurnover_InvalidKind() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/objects/shop-1/reports/turnover?kind=year", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReportService.AssertNotCalled(suite.T(), "Turnover", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportHandlerTestSuite) TestGetTurnover_DomainErrorIsLocalized() {
	suite.mockReportService.On("Turnover", mock.Anything, "shop-1", mock.Anything, domain.WindowDay).
		Return(nil, apperrors.NewDomainError(205, "report.error.result_too_large")).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/objects/shop-1/reports/turnover?date=2024-05-10", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var body dto.ReportErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(205, body.Code)
	suite.NotEmpty(body.Message)
	suite.NotContains(body.Message, "report.error.") // rendered text, not the key
}

func (suite *ReportHandlerTestSuite) TestGetTurnover_TransportErrorIs502() {
	suite.mockReportService.On("Turnover", mock.Anything, "shop-1", mock.Anything, domain.WindowDay).
		Return(nil, fmt.Errorf("%w: connection refused", apperrors.ErrTransport)).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/objects/shop-1/reports/turnover?date=2024-05-10", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *ReportHandlerTestSuite) TestSavePromotion_OperatorRejectedIs403() {
	suite.mockReportService.On("SavePromotion", mock.Anything, "shop-1", mock.Anything, mock.Anything).
		Return(apperrors.ErrOperatorNotValidated).Once()

	payload := `{
		"operator": {"username": "anna", "password": "pw"},
		"articleID": "art-1",
		"price": "9.99",
		"validFrom": "2024-06-01",
		"validTo": "2024-06-30"
	}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/objects/shop-1/promotions", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ReportHandlerTestSuite) TestSavePromotion_MissingFieldsIs400() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/objects/shop-1/promotions", strings.NewReader(`{"description": "no operator"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReportService.AssertNotCalled(suite.T(), "SavePromotion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportHandlerTestSuite) TestDeletePromotion_Success() {
	suite.mockReportService.On("DeletePromotion",
		mock.Anything,
		"shop-1",
		dto.OperatorLogin{Username: "anna", Password: "pw"},
		"promo-7",
	).Return(nil).Once()

	payload := `{"operator": {"username": "anna", "password": "pw"}}`
	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/objects/shop-1/promotions/promo-7", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockReportService.AssertExpectations(suite.T())
}

func TestReportHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerTestSuite))
}
