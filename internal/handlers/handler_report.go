package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retailboard/store_reports_app/internal/core/domain"
	portssvc "github.com/retailboard/store_reports_app/internal/core/ports/services"
	"github.com/retailboard/store_reports_app/internal/dto"
	"github.com/retailboard/store_reports_app/internal/middleware"
)

const (
	dateQueryFormat   = "2006-01-02"
	defaultSeriesDays = 30
)

// reportHandler handles HTTP requests for per-object report pages
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
	localize      func(key string) string
}

// newReportHandler creates a new reportHandler
func newReportHandler(rs portssvc.ReportSvcFacade, localize func(key string) string) *reportHandler {
	return &reportHandler{
		reportService: rs,
		localize:      localize,
	}
}

// RegisterReportRoutes registers report routes under an object group
func RegisterReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade, localize func(key string) string) {
	h := newReportHandler(reportService, localize)

	reportsGroup := rg.Group("/reports")
	{
		reportsGroup.GET("/turnover", h.getTurnover)
		reportsGroup.GET("/turnover/series", h.getTurnoverSeries)
		reportsGroup.GET("/bills", h.getBills)
		reportsGroup.GET("/articles", h.getArticles)
	}

	promotionsGroup := rg.Group("/promotions")
	{
		promotionsGroup.GET("", h.getPromotions)
		promotionsGroup.POST("", h.savePromotion)
		promotionsGroup.DELETE("/:promo_id", h.deletePromotion)
	}
}

// getTurnover godoc
// @Summary Turnover dashboard for one window
// @Description Returns current and previous window turnover plus the payment type split
// @Tags reports
// @Produce json
// @Param object_id path string true "Object ID"
// @Param date query string false "Report date (YYYY-MM-DD)" default(current date)
// @Param kind query string false "Window kind: day, week or month" default(day)
// @Success 200 {object} dto.TurnoverResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Object not found"
// @Failure 422 {object} dto.ReportErrorResponse "Report server domain error"
// @Failure 502 {object} map[string]string "Report service unreachable"
// @Router /objects/{object_id}/reports/turnover [get]
func (h *reportHandler) getTurnover(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	objectID := c.Param("object_id")

	date, ok := h.parseDate(c)
	if !ok {
		return
	}
	kind, ok := parseWindowKind(c)
	if !ok {
		return
	}

	logger.Info("Received turnover report request",
		slog.String("object_id", objectID),
		slog.String("kind", string(kind)))

	report, err := h.reportService.Turnover(c.Request.Context(), objectID, date, kind)
	if err != nil {
		respondWithError(c, h.localize, err)
		return
	}

	c.JSON(http.StatusOK, dto.TurnoverResponse{
		Window:        report.Window,
		Total:         report.Total,
		PreviousTotal: report.PreviousTotal,
		PayTypes:      report.PayTypes,
	})
}

// getTurnoverSeries godoc
// @Summary Trailing per-day turnover series
// @Description Returns the per-day turnover and a flat average line with the running day excluded
// @Tags reports
// @Produce json
// @Param object_id path string true "Object ID"
// @Param date query string false "Last day of the series (YYYY-MM-DD)" default(current date)
// @Param days query int false "Series length in days" default(30)
// @Success 200 {object} dto.TurnoverSeriesResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} dto.ReportErrorResponse "Report server domain error"
// @Failure 502 {object} map[string]string "Report service unreachable"
// @Router /objects/{object_id}/reports/turnover/series [get]
func (h *reportHandler) getTurnoverSeries(c *gin.Context) {
	objectID := c.Param("object_id")

	date, ok := h.parseDate(c)
	if !ok {
		return
	}

	days := defaultSeriesDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := parsePositiveInt(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = parsed
	}

	series, err := h.reportService.TurnoverSeries(c.Request.Context(), objectID, date, days)
	if err != nil {
		respondWithError(c, h.localize, err)
		return
	}

	c.JSON(http.StatusOK, dto.TurnoverSeriesResponse{
		Window:      series.Window,
		Buckets:     series.Buckets,
		Average:     series.Average,
		AverageLine: series.AverageLine,
	})
}

// getBills godoc
// @Summary Bill listing for one day
// @Tags reports
// @Produce json
// @Param object_id path string true "Object ID"
// @Param date query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.BillsResponse
// @Failure 422 {object} dto.ReportErrorResponse "Report server domain error"
// @Failure 502 {object} map[string]string "Report service unreachable"
// @Router /objects/{object_id}/reports/bills [get]
func (h *reportHandler) getBills(c *gin.Context) {
	objectID := c.Param("object_id")

	date, ok := h.parseDate(c)
	if !ok {
		return
	}

	bills, err := h.reportService.Bills(c.Request.Context(), objectID, date)
	if err != nil {
		respondWithError(c, h.localize, err)
		return
	}

	c.JSON(http.StatusOK, dto.BillsResponse{Window: bills.Window, Bills: bills.Bills})
}

// getArticles godoc
// @Summary Article lookup by free-text search
// @Tags reports
// @Produce json
// @Param object_id path string true "Object ID"
// @Param search query string true "Search term"
// @Success 200 {object} dto.ArticlesResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 502 {object} map[string]string "Report service unreachable"
// @Router /objects/{object_id}/reports/articles [get]
func (h *reportHandler) getArticles(c *gin.Context) {
	objectID := c.Param("object_id")

	articles, err := h.reportService.Articles(c.Request.Context(), objectID, c.Query("search"))
	if err != nil {
		respondWithError(c, h.localize, err)
		return
	}

	c.JSON(http.StatusOK, dto.ArticlesResponse{Articles: articles})
}

// getPromotions godoc
// @Summary Promotion listing
// @Tags promotions
// @Produce json
// @Param object_id path string true "Object ID"
// @Success 200 {object} dto.PromotionsResponse
// @Failure 502 {object} map[string]string "Report service unreachable"
// @Router /objects/{object_id}/promotions [get]
func (h *reportHandler) getPromotions(c *gin.Context) {
	objectID := c.Param("object_id")

	promotions, err := h.reportService.Promotions(c.Request.Context(), objectID)
	if err != nil {
		respondWithError(c, h.localize, err)
		return
	}

	c.JSON(http.StatusOK, dto.PromotionsResponse{Promotions: promotions})
}

// savePromotion godoc
// @Summary Create or update a promotion
// @Description Dispatches a promotion write to the POS side after validating the operator
// @Tags promotions
// @Accept json
// @Produce json
// @Param object_id path string true "Object ID"
// @Param promotion body dto.SavePromotionRequest true "Promotion details with operator credentials"
// @Success 204 "Promotion saved"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Operator not validated"
// @Failure 422 {object} dto.ReportErrorResponse "Report server domain error"
// @Failure 502 {object} map[string]string "Report service unreachable"
// @Router /objects/{object_id}/promotions [post]
func (h *reportHandler) savePromotion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	objectID := c.Param("object_id")

	var req dto.SavePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid save promotion request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	validFrom, err := time.Parse(dateQueryFormat, req.ValidFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid validFrom date. Use YYYY-MM-DD"})
		return
	}
	validTo, err := time.Parse(dateQueryFormat, req.ValidTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid validTo date. Use YYYY-MM-DD"})
		return
	}

	change := domain.PromotionChange{
		PromotionID: req.PromotionID,
		ArticleID:   req.ArticleID,
		Description: req.Description,
		Price:       req.Price,
		ValidFrom:   validFrom,
		ValidTo:     validTo,
	}

	if err := h.reportService.SavePromotion(c.Request.Context(), objectID, req.Operator, change); err != nil {
		respondWithError(c, h.localize, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// deletePromotion godoc
// @Summary Delete a promotion
// @Tags promotions
// @Accept json
// @Produce json
// @Param object_id path string true "Object ID"
// @Param promo_id path string true "Promotion ID"
// @Param operator body dto.DeletePromotionRequest true "Operator credentials"
// @Success 204 "Promotion deleted"
// @Failure 403 {object} map[string]string "Operator not validated"
// @Failure 422 {object} dto.ReportErrorResponse "Report server domain error"
// @Failure 502 {object} map[string]string "Report service unreachable"
// @Router /objects/{object_id}/promotions/{promo_id} [delete]
func (h *reportHandler) deletePromotion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	objectID := c.Param("object_id")
	promoID := c.Param("promo_id")

	var req dto.DeletePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid delete promotion request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	if err := h.reportService.DeletePromotion(c.Request.Context(), objectID, req.Operator, promoID); err != nil {
		respondWithError(c, h.localize, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseDate reads the date query parameter, defaulting to today.
func (h *reportHandler) parseDate(c *gin.Context) (time.Time, bool) {
	dateStr := c.DefaultQuery("date", time.Now().UTC().Format(dateQueryFormat))
	date, err := time.Parse(dateQueryFormat, dateStr)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid date format", slog.String("date", dateStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

func parseWindowKind(c *gin.Context) (domain.WindowKind, bool) {
	switch c.DefaultQuery("kind", "day") {
	case "day":
		return domain.WindowDay, true
	case "week":
		return domain.WindowWeek, true
	case "month":
		return domain.WindowMonth, true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid window kind. Use day, week or month"})
		return "", false
	}
}

func parsePositiveInt(raw string) (int, error) {
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("value %d is not positive", parsed)
	}
	return parsed, nil
}
