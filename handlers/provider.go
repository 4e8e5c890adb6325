package handlers

import (
	"net/http"
	"strconv"
	"time"

	"gobarber/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListProvidersHandler handles GET /providers.
func (h *HandlerBundle) ListProvidersHandler(c *gin.Context) {
	providers, err := h.UserService.ListProviders(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list providers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, providers)
}

// ProviderAvailableHandler handles GET /providers/:providerId/available.
// The day is selected by a "date" query parameter in Unix milliseconds.
func (h *HandlerBundle) ProviderAvailableHandler(c *gin.Context) {
	providerID := c.Param("providerId")

	ms, err := strconv.ParseInt(c.Query("date"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation fails"})
		return
	}
	day := time.UnixMilli(ms)

	grid, err := h.AppointmentService.AvailableHours(c.Request.Context(), providerID, day)
	if err != nil {
		utils.GetLogger().Error("Failed to compute available hours",
			zap.String("providerID", providerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, grid)
}
