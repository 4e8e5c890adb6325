package handlers

import (
	"net/http"
	"time"

	"gobarber/middleware"
	"gobarber/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler handles GET /schedule: a provider's own appointments for
// one day, selected by a "date" query parameter (YYYY-MM-DD).
func (h *HandlerBundle) ScheduleHandler(c *gin.Context) {
	userID := middleware.UserID(c)

	usr, err := h.UserService.GetByID(c.Request.Context(), userID)
	if err != nil {
		utils.GetLogger().Error("Failed to load user for schedule", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !usr.Provider {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User is not a provider"})
		return
	}

	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation fails"})
		return
	}

	appointments, err := h.AppointmentService.ProviderSchedule(c.Request.Context(), userID, day)
	if err != nil {
		utils.GetLogger().Error("Failed to load schedule", zap.String("providerID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}
