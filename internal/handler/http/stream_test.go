package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkraj/wholemart/internal/hub"
	"github.com/mkraj/wholemart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStreamHandler_Stream(t *testing.T) {
	h := hub.New(zap.NewNop())
	sh := NewStreamHandler(h, zap.NewNop())

	userID := uuid.New()

	// auth middleware is exercised separately, inject the payload here
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), authPayloadKey, &models.TokenPayload{UserID: userID})
		sh.Stream().ServeHTTP(w, r.WithContext(ctx))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/notifications/stream", nil)
	require.NoError(t, err)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	require.Eventually(t, func() bool {
		return h.Connected(userID) == 1
	}, time.Second, 5*time.Millisecond)

	h.Publish(userID, models.NotificationEvent{
		Type: models.EventNewNotification,
		Notification: &models.Notification{
			ID:      uuid.New(),
			UserID:  userID,
			Type:    models.NotificationTypeOrderStatusChange,
			Title:   "Order Dispatched",
			Message: "Order WM-20260115-0042 is on its way",
		},
	})

	scanner := bufio.NewScanner(res.Body)
	var eventLine, dataLine string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event:") {
			eventLine = line
		}
		if strings.HasPrefix(line, "data:") {
			dataLine = line
			break
		}
	}

	assert.Equal(t, "event: new_notification", eventLine)
	assert.Contains(t, dataLine, "Order Dispatched")

	cancel()
	require.Eventually(t, func() bool {
		return h.Connected(userID) == 0
	}, time.Second, 5*time.Millisecond, "subscription must be released")
}
