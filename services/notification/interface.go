package notification

import (
	"context"

	notificationRepo "gobarber/database/repository/notification"
	userRepo "gobarber/database/repository/user"
	"gobarber/models"
)

// NotificationService stores in-app notifications and delivers best-effort
// FCM pushes for them.
type NotificationService interface {
	// Notify persists an in-app notification for userID and pushes it when
	// the user has a device token. Push failures never surface to the
	// caller's transaction.
	Notify(ctx context.Context, userID, content string) error
	// ListForUser retrieves a user's notifications, newest first.
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	// MarkRead flags a notification as read.
	MarkRead(ctx context.Context, id string) (*models.Notification, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo  notificationRepo.NotificationRepository
	Users userRepo.UserRepository
}
