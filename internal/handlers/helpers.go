package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/retailboard/store_reports_app/internal/apperrors"
	"github.com/retailboard/store_reports_app/internal/dto"
	"github.com/retailboard/store_reports_app/internal/middleware"
)

// bindingErrorMessage renders a request binding failure for the response
// body. Field validation failures list the offending fields; anything else
// (malformed JSON, wrong types) passes through as-is.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body: " + err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return "Invalid request body: " + strings.Join(fields, ", ")
}

// respondWithError maps gateway error tiers onto HTTP responses:
// transport and parse failures both read as "service unreachable" to the
// user (502), but parse failures are logged at error level because they mean
// the report server broke its contract; domain errors are expected and
// rendered through the localization lookup; a rejected operator validation is
// a 403 with its own message so callers can show the specific warning.
func respondWithError(c *gin.Context, localize func(key string) string, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if de, ok := apperrors.AsDomainError(err); ok {
		logger.Warn("Report server returned domain error", slog.Int("code", de.Code), slog.String("message_key", de.MessageKey))
		c.JSON(http.StatusUnprocessableEntity, dto.ReportErrorResponse{
			Code:    de.Code,
			Message: localize(de.MessageKey),
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrOperatorNotValidated):
		logger.Warn("Operator not validated for privileged action")
		c.JSON(http.StatusForbidden, gin.H{"error": "Operator not validated"})
	case errors.Is(err, apperrors.ErrParse):
		logger.Error("Report server response violated the wire contract", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Report service unreachable"})
	case errors.Is(err, apperrors.ErrTransport):
		logger.Warn("Report server unreachable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Report service unreachable"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Object not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Request forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled gateway error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
