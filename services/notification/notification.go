package notification

import (
	"context"
	"fmt"

	"gobarber/models"
	"gobarber/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notify persists the notification, then attempts an FCM push. Only the
// persistence failure is reported; a push failure is logged and swallowed.
func (s *DefaultNotificationService) Notify(ctx context.Context, userID, content string) error {
	n := &models.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Content: content,
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification for user %s: %w", userID, err)
	}

	s.push(ctx, userID, content)
	return nil
}

// push sends the notification through FCM when a client and device token
// are available.
func (s *DefaultNotificationService) push(ctx context.Context, userID, content string) {
	if utils.FCMClient == nil {
		return
	}
	logger := utils.GetLogger()

	usr, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("notification: could not load user for push", zap.String("userID", userID), zap.Error(err))
		return
	}
	if usr.FCMToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: usr.FCMToken,
		Notification: &messaging.Notification{
			Title: "GoBarber",
			Body:  content,
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		logger.Warn("notification: failed to send FCM push", zap.String("userID", userID), zap.Error(err))
	}
}

// ListForUser retrieves a user's notifications, newest first.
func (s *DefaultNotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.Repo.ListForUser(ctx, userID)
}

// MarkRead flags a notification as read.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, id string) (*models.Notification, error) {
	return s.Repo.MarkRead(ctx, id)
}
