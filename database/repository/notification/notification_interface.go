package notificationRepo

import (
	"context"

	"gobarber/models"
)

// NotificationRepository defines methods for in-app notification data access.
type NotificationRepository interface {
	// Create inserts a new notification record.
	Create(ctx context.Context, notification *models.Notification) error
	// ListForUser retrieves a user's notifications, newest first.
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	// MarkRead flags a notification as read and returns the updated record.
	MarkRead(ctx context.Context, id string) (*models.Notification, error)
}
