package handlers

import (
	"errors"
	"net/http"
	"time"

	appointmentRepo "gobarber/database/repository/appointment"
	"gobarber/middleware"
	"gobarber/services/booking"
	"gobarber/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// policyStatus maps a booking-policy rejection to its HTTP status.
// Availability and past-date failures are client errors; ownership and
// cutoff failures mirror the authentication layer.
func policyStatus(e *booking.PolicyError) int {
	switch e.Code {
	case booking.CodeUnauthorized, booking.CodeCancelTooLate, booking.CodeInvalidProvider:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// CreateAppointmentHandler handles POST /appointments.
func (h *HandlerBundle) CreateAppointmentHandler(c *gin.Context) {
	var input struct {
		ProviderID string    `json:"provider_id" binding:"required"`
		Date       time.Time `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation fails"})
		return
	}

	userID := middleware.UserID(c)

	appointment, err := h.AppointmentService.Book(c.Request.Context(), userID, input.ProviderID, input.Date)
	if err != nil {
		var policyErr *booking.PolicyError
		if errors.As(err, &policyErr) {
			c.JSON(policyStatus(policyErr), gin.H{"error": policyErr.Message})
			return
		}
		utils.GetLogger().Error("Failed to create appointment", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// ListAppointmentsHandler handles GET /appointments.
func (h *HandlerBundle) ListAppointmentsHandler(c *gin.Context) {
	userID := middleware.UserID(c)

	appointments, err := h.AppointmentService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		utils.GetLogger().Error("Failed to list appointments", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// CancelAppointmentHandler handles DELETE /appointments/:id.
func (h *HandlerBundle) CancelAppointmentHandler(c *gin.Context) {
	userID := middleware.UserID(c)
	appointmentID := c.Param("id")

	appointment, err := h.AppointmentService.Cancel(c.Request.Context(), userID, appointmentID)
	if err != nil {
		var policyErr *booking.PolicyError
		if errors.As(err, &policyErr) {
			c.JSON(policyStatus(policyErr), gin.H{"error": policyErr.Message})
			return
		}
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
			return
		}
		utils.GetLogger().Error("Failed to cancel appointment",
			zap.String("appointmentID", appointmentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, appointment)
}
