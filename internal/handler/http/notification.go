package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mkraj/wholemart/internal/models"
)

// defaultBacklogLimit bounds the backlog fetch when the client does
// not ask for a specific page size
const defaultBacklogLimit = 20

type NotificationService interface {
	// List returns recent notifications and the unread count
	List(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, int, error)
	// MarkRead marks one notification read
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	// MarkAllRead marks all user notifications read
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	// Delete removes a notification
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// NotificationHandler represents HTTP handler for notification-related
// requests
type NotificationHandler struct {
	svc NotificationService
}

// NewNotificationHandler creates new NotificationHandler instance
func NewNotificationHandler(svc NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type notificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

// ListNotifications returns the user's recent notifications, newest
// first, with the authoritative unread count
// 200 — success;
// 401 — user is not authenticated;
// 500 — internal server error.
func (nh *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		limit := defaultBacklogLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				http.Error(w, "bad limit", http.StatusBadRequest)
				return
			}
			limit = n
		}

		notifications, unread, err := nh.svc.List(r.Context(), payload.UserID, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if notifications == nil {
			notifications = []models.Notification{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(notificationListResponse{
			Notifications: notifications,
			UnreadCount:   unread,
		})
	}
}

// MarkRead marks one notification read. Marking an already read or
// missing notification succeeds.
// 204 — success;
// 400 — malformed notification id;
// 401 — user is not authenticated;
// 500 — internal server error.
func (nh *NotificationHandler) MarkRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "notificationID"))
		if err != nil {
			http.Error(w, "bad notification id", http.StatusBadRequest)
			return
		}

		if err := nh.svc.MarkRead(r.Context(), payload.UserID, id); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// MarkAllRead marks every notification of the user read
// 204 — success;
// 401 — user is not authenticated;
// 500 — internal server error.
func (nh *NotificationHandler) MarkAllRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if err := nh.svc.MarkAllRead(r.Context(), payload.UserID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteNotification removes a notification. Deleting an id that is
// already gone succeeds.
// 204 — success;
// 400 — malformed notification id;
// 401 — user is not authenticated;
// 500 — internal server error.
func (nh *NotificationHandler) DeleteNotification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "notificationID"))
		if err != nil {
			http.Error(w, "bad notification id", http.StatusBadRequest)
			return
		}

		if err := nh.svc.Delete(r.Context(), payload.UserID, id); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
