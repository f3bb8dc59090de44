package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/retailboard/store_reports_app/internal/core/ports/services"
	"github.com/retailboard/store_reports_app/internal/dto"
	"github.com/retailboard/store_reports_app/internal/middleware"
)

// operatorHandler handles HTTP requests for the credential bridge
type operatorHandler struct {
	operatorService portssvc.OperatorSvcFacade
	localize        func(key string) string
}

// newOperatorHandler creates a new operatorHandler
func newOperatorHandler(os portssvc.OperatorSvcFacade, localize func(key string) string) *operatorHandler {
	return &operatorHandler{
		operatorService: os,
		localize:        localize,
	}
}

// RegisterOperatorRoutes registers credential bridge routes under an object group
func RegisterOperatorRoutes(rg *gin.RouterGroup, operatorService portssvc.OperatorSvcFacade, localize func(key string) string) {
	h := newOperatorHandler(operatorService, localize)

	operatorsGroup := rg.Group("/operators")
	{
		operatorsGroup.POST("/validate", h.validateOperator)
		operatorsGroup.PUT("/:username/password", h.storeDevicePassword)
	}
}

// validateOperator godoc
// @Summary Validate an operator against the remote POS record
// @Description Returns validated=false for a legitimate negative result; errors are reserved for infrastructure failures
// @Tags operators
// @Accept json
// @Produce json
// @Param object_id path string true "Object ID"
// @Param credentials body dto.ValidateOperatorRequest true "Submitted operator identity"
// @Success 200 {object} dto.ValidateOperatorResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Object not found"
// @Failure 502 {object} map[string]string "Report service unreachable"
// @Router /objects/{object_id}/operators/validate [post]
func (h *operatorHandler) validateOperator(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	objectID := c.Param("object_id")

	var req dto.ValidateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid operator validation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	validated, err := h.operatorService.ValidateOperator(c.Request.Context(), objectID, req.Username, req.Password)
	if err != nil {
		respondWithError(c, h.localize, err)
		return
	}

	c.JSON(http.StatusOK, dto.ValidateOperatorResponse{Validated: validated})
}

// storeDevicePassword godoc
// @Summary Store an operator's device password
// @Description Encrypts the password for at-rest storage; the blob is persisted per tenant and username
// @Tags operators
// @Accept json
// @Produce json
// @Param object_id path string true "Object ID"
// @Param username path string true "Operator username"
// @Param password body dto.StoreDevicePasswordRequest true "Plaintext device password"
// @Success 204 "Password stored"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Object not found"
// @Router /objects/{object_id}/operators/{username}/password [put]
func (h *operatorHandler) storeDevicePassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	objectID := c.Param("object_id")
	username := c.Param("username")

	var req dto.StoreDevicePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid device password request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	updatedBy := req.UpdatedBy
	if updatedBy == "" {
		updatedBy = username
	}

	if err := h.operatorService.StoreDevicePassword(c.Request.Context(), objectID, username, req.Password, updatedBy); err != nil {
		respondWithError(c, h.localize, err)
		return
	}

	c.Status(http.StatusNoContent)
}
