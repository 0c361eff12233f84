package models

import (
	"time"

	"github.com/google/uuid"
)

// notification type
const (
	NotificationTypePaymentConfirmation = "PAYMENT_CONFIRMATION"
	NotificationTypePaymentRejected     = "PAYMENT_REJECTED"
	NotificationTypeAccountApproved     = "ACCOUNT_APPROVED"
	NotificationTypeAccountRejected     = "ACCOUNT_REJECTED"
	NotificationTypeOrderStatusChange   = "ORDER_STATUS_CHANGE"
	NotificationTypeGeneric             = "GENERIC"
)

// notification priority
const (
	NotificationPriorityLow    = "LOW"
	NotificationPriorityNormal = "NORMAL"
	NotificationPriorityHigh   = "HIGH"
	NotificationPriorityUrgent = "URGENT"
)

// Notification is notification entity. Created server-side when a
// triggering event occurs, always persisted so a reconnecting session
// can fetch the backlog, pushed live only if a session is connected.
type Notification struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"userId"`
	Type      string            `json:"type"`
	Priority  string            `json:"priority"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	IsRead    bool              `json:"isRead"`
	CreatedAt time.Time         `json:"createdAt"`
	ReadAt    *time.Time        `json:"readAt,omitempty"`
}

// live stream event names
const (
	EventNewNotification  = "new_notification"
	EventNotificationRead = "notification_read"
	EventAllRead          = "all_notifications_read"
)

// NotificationEvent is the wire shape pushed over the live stream.
// Notification is set for new_notification, NotificationID for
// notification_read, neither for all_notifications_read.
type NotificationEvent struct {
	Type           string        `json:"type"`
	Notification   *Notification `json:"notification,omitempty"`
	NotificationID uuid.UUID     `json:"notificationId,omitempty"`
}
