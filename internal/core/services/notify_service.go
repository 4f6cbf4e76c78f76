package services

import (
	"context"
	"log"

	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/adapters/persistence/repositories"
)

// NotifyService creates and reads in-app notifications
type NotifyService struct {
	notificationRepo *repositories.NotificationRepository
}

// NewNotifyService creates a new notify service
func NewNotifyService(notificationRepo *repositories.NotificationRepository) *NotifyService {
	return &NotifyService{notificationRepo: notificationRepo}
}

// Push stores a notification. Notifications are informational, so a
// failed insert is logged and swallowed rather than failing the caller.
func (s *NotifyService) Push(ctx context.Context, n *models.Notification) {
	if n.Priority == "" {
		n.Priority = "normal"
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️ Failed to create notification for %s %d: %v", n.UserType, n.UserID, err)
	}
}

// ListForUser gets a user's notifications with the unread count
func (s *NotifyService) ListForUser(ctx context.Context, userID uint, userType string, offset, limit int) ([]*models.Notification, int64, int64, error) {
	notifications, total, err := s.notificationRepo.GetByUser(ctx, userID, userType, offset, limit)
	if err != nil {
		return nil, 0, 0, err
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID, userType)
	if err != nil {
		return nil, 0, 0, err
	}

	return notifications, total, unread, nil
}

// MarkRead marks one notification as read, scoped to the owner
func (s *NotifyService) MarkRead(ctx context.Context, id, userID uint, userType string) error {
	return s.notificationRepo.MarkRead(ctx, id, userID, userType)
}

// MarkAllRead marks all of a user's notifications as read
func (s *NotifyService) MarkAllRead(ctx context.Context, userID uint, userType string) error {
	return s.notificationRepo.MarkAllRead(ctx, userID, userType)
}
