package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkraj/wholemart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_List(t *testing.T) {
	userID := uuid.New()
	stored := []models.Notification{
		{
			ID:        uuid.New(),
			UserID:    userID,
			Type:      models.NotificationTypePaymentConfirmation,
			Priority:  models.NotificationPriorityHigh,
			Title:     "Payment Confirmed",
			CreatedAt: time.Date(2026, 1, 16, 9, 0, 0, 0, time.UTC),
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/notifications", r.URL.Path)
		require.Equal(t, "7", r.URL.Query().Get("limit"))

		cookie, err := r.Cookie("auth_token")
		require.NoError(t, err)
		require.Equal(t, "token123", cookie.Value)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(listResponse{Notifications: stored, UnreadCount: 1})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token123")

	got, unread, err := c.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
	require.Len(t, got, 1)
	assert.Equal(t, stored[0].ID, got[0].ID)
}

func TestClient_ListServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token123")

	_, _, err := c.List(context.Background(), 20)
	assert.Error(t, err)
}

func TestClient_IdempotentOperations(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		statusCode int
		call       func(c *Client) error
		wantErr    bool
	}{
		{
			name:       "mark_read_204",
			statusCode: http.StatusNoContent,
			call:       func(c *Client) error { return c.MarkRead(context.Background(), id) },
		},
		{
			// the record being gone already is still success
			name:       "delete_404",
			statusCode: http.StatusNotFound,
			call:       func(c *Client) error { return c.Delete(context.Background(), id) },
		},
		{
			name:       "mark_all_read_204",
			statusCode: http.StatusNoContent,
			call:       func(c *Client) error { return c.MarkAllRead(context.Background()) },
		},
		{
			name:       "mark_read_500",
			statusCode: http.StatusInternalServerError,
			call:       func(c *Client) error { return c.MarkRead(context.Background(), id) },
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer srv.Close()

			err := tt.call(NewClient(srv.URL, "token123"))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClient_Open(t *testing.T) {
	notification := models.Notification{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		Type:    models.NotificationTypeOrderStatusChange,
		Title:   "Order Dispatched",
		Message: "Order WM-20260115-0042 is on its way",
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/notifications/stream", r.URL.Path)

		flusher, ok := w.(http.Flusher)
		require.True(t, ok)

		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)

		data, err := json.Marshal(models.NotificationEvent{
			Type:         models.EventNewNotification,
			Notification: &notification,
		})
		require.NoError(t, err)
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", models.EventNewNotification, data)
		flusher.Flush()

		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewClient(srv.URL, "token123")

	events, err := c.Open(ctx, "token123")
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, models.EventNewNotification, ev.Type)
		require.NotNil(t, ev.Notification)
		assert.Equal(t, notification.ID, ev.Notification.ID)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}

	cancel()
	select {
	case _, open := <-events:
		assert.False(t, open, "events channel must close on disconnect")
	case <-time.After(time.Second):
		t.Fatal("events channel did not close")
	}
}
