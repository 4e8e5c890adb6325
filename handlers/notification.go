package handlers

import (
	"errors"
	"net/http"

	notificationRepo "gobarber/database/repository/notification"
	"gobarber/middleware"
	"gobarber/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListNotificationsHandler handles GET /notifications: the provider's
// in-app notifications, newest first.
func (h *HandlerBundle) ListNotificationsHandler(c *gin.Context) {
	userID := middleware.UserID(c)

	usr, err := h.UserService.GetByID(c.Request.Context(), userID)
	if err != nil {
		utils.GetLogger().Error("Failed to load user for notifications", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !usr.Provider {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Only providers can load notifications"})
		return
	}

	notifications, err := h.NotificationService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		utils.GetLogger().Error("Failed to list notifications", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationReadHandler handles PUT /notifications/:id.
func (h *HandlerBundle) MarkNotificationReadHandler(c *gin.Context) {
	id := c.Param("id")

	notification, err := h.NotificationService.MarkRead(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, notificationRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		utils.GetLogger().Error("Failed to mark notification as read", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, notification)
}
