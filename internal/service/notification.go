package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkraj/wholemart/internal/hub"
	"github.com/mkraj/wholemart/internal/models"
	"go.uber.org/zap"
)

// NotificationRepository is interface for interacting with
// notification-related data
type NotificationRepository interface {
	// CreateNotification inserts new notification
	CreateNotification(ctx context.Context, n *models.Notification) error
	// GetNotifications returns recent notifications and the unread count
	GetNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, int, error)
	// MarkRead marks one notification read
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	// MarkAllRead marks all user notifications read
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	// DeleteNotification removes a notification
	DeleteNotification(ctx context.Context, userID, id uuid.UUID) error
}

// NotificationService persists notifications and pushes them to the
// user's connected sessions. Persistence always happens, the live
// push only when someone is connected.
type NotificationService struct {
	repo   NotificationRepository
	hub    *hub.Hub
	logger *zap.Logger
}

// NewNotificationService creates new NotificationService instance
func NewNotificationService(repo NotificationRepository, h *hub.Hub, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		hub:    h,
		logger: logger,
	}
}

// Notify stores a notification and pushes it live
func (ns *NotificationService) Notify(ctx context.Context, n *models.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if n.Priority == "" {
		n.Priority = models.NotificationPriorityNormal
	}

	if err := ns.repo.CreateNotification(ctx, n); err != nil {
		return err
	}

	ns.hub.Publish(n.UserID, models.NotificationEvent{
		Type:         models.EventNewNotification,
		Notification: n,
	})
	return nil
}

// List returns the most recent notifications and the authoritative
// unread count
func (ns *NotificationService) List(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, int, error) {
	return ns.repo.GetNotifications(ctx, userID, limit)
}

// MarkRead marks one notification read and notifies the user's other
// sessions. Idempotent.
func (ns *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if err := ns.repo.MarkRead(ctx, userID, id); err != nil {
		return err
	}
	ns.hub.Publish(userID, models.NotificationEvent{
		Type:           models.EventNotificationRead,
		NotificationID: id,
	})
	return nil
}

// MarkAllRead marks everything read. Idempotent.
func (ns *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := ns.repo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	ns.hub.Publish(userID, models.NotificationEvent{Type: models.EventAllRead})
	return nil
}

// Delete removes a notification. Deleting an id that is already gone
// is success.
func (ns *NotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return ns.repo.DeleteNotification(ctx, userID, id)
}
