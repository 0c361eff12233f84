package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkraj/wholemart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAPI is an in-memory notification REST surface with injectable
// failures.
type fakeAPI struct {
	mu       sync.Mutex
	items    []models.Notification
	unread   int
	lists    int
	listErr  error
	reqErr   error
	markedID []uuid.UUID
	allRead  int
	deleted  []uuid.UUID
}

func (f *fakeAPI) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func (f *fakeAPI) List(ctx context.Context, limit int) ([]models.Notification, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	items := make([]models.Notification, len(f.items))
	copy(items, f.items)
	return items, f.unread, nil
}

func (f *fakeAPI) MarkRead(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reqErr != nil {
		return f.reqErr
	}
	f.markedID = append(f.markedID, id)
	return nil
}

func (f *fakeAPI) MarkAllRead(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reqErr != nil {
		return f.reqErr
	}
	f.allRead++
	return nil
}

func (f *fakeAPI) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reqErr != nil {
		return f.reqErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeTransport hands out a controllable event channel.
type fakeTransport struct {
	mu      sync.Mutex
	openErr error
	opens   int
	events  chan models.NotificationEvent
}

func (f *fakeTransport) Open(ctx context.Context, token string) (<-chan models.NotificationEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens++
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.events = make(chan models.NotificationEvent)
	ch := f.events
	go func() {
		<-ctx.Done()
		f.mu.Lock()
		if f.events == ch {
			close(ch)
			f.events = nil
		}
		f.mu.Unlock()
	}()
	return ch, nil
}

func (f *fakeTransport) push(ev models.NotificationEvent) {
	f.mu.Lock()
	ch := f.events
	f.mu.Unlock()
	ch <- ev
}

func (f *fakeTransport) openCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}

func newTestChannel(t *testing.T, api API, tr Transport, opts Options) *Channel {
	t.Helper()
	c := New(api, tr, zap.NewNop(), opts)
	t.Cleanup(c.Close)
	return c
}

func notif(priority string) models.Notification {
	return models.Notification{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Type:      models.NotificationTypeOrderStatusChange,
		Priority:  priority,
		Title:     "Order dispatched",
		Message:   "Your order is on its way",
		CreatedAt: time.Now(),
	}
}

func waitConnected(t *testing.T, c *Channel) {
	t.Helper()
	require.Eventually(t, func() bool {
		return c.ConnectionState() == StateConnected
	}, 2*time.Second, 5*time.Millisecond)
}

// waitSynced waits until the channel is connected and the initial
// backlog reconciliation has landed, so pushed events aren't raced by
// the wholesale cache replacement.
func waitSynced(t *testing.T, c *Channel, api *fakeAPI) {
	t.Helper()
	waitConnected(t, c)
	require.Eventually(t, func() bool { return api.listCalls() >= 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
}

// the §3 cache invariant: unread always equals the recount
func assertInvariant(t *testing.T, c *Channel) {
	t.Helper()
	unread := 0
	for _, n := range c.Notifications() {
		if !n.IsRead {
			unread++
		}
	}
	assert.Equal(t, unread, c.UnreadCount())
}

func TestChannel_ConnectWithoutTokenIsNoop(t *testing.T) {
	tr := &fakeTransport{}
	c := newTestChannel(t, &fakeAPI{}, tr, Options{})

	c.Connect("")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StateDisconnected, c.ConnectionState())
	assert.Equal(t, 0, tr.openCount())
}

func TestChannel_ConnectIsIdempotent(t *testing.T) {
	tr := &fakeTransport{}
	c := newTestChannel(t, &fakeAPI{}, tr, Options{})

	c.Connect("token")
	waitConnected(t, c)
	c.Connect("token")
	c.Connect("token")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, tr.openCount())
}

func TestChannel_NewNotificationEvent(t *testing.T) {
	api := &fakeAPI{}
	tr := &fakeTransport{}
	var alerts []Alert
	var alertMu sync.Mutex
	c := newTestChannel(t, api, tr, Options{
		OnAlert: func(a Alert) {
			alertMu.Lock()
			alerts = append(alerts, a)
			alertMu.Unlock()
		},
	})
	c.Connect("token")
	waitSynced(t, c, api)

	n := notif(models.NotificationPriorityUrgent)
	tr.push(models.NotificationEvent{Type: models.EventNewNotification, Notification: &n})

	require.Eventually(t, func() bool { return c.UnreadCount() == 1 }, time.Second, 5*time.Millisecond)
	got := c.Notifications()
	require.Len(t, got, 1)
	assert.Equal(t, n.ID, got[0].ID)
	assertInvariant(t, c)

	alertMu.Lock()
	defer alertMu.Unlock()
	require.Len(t, alerts, 1)
	assert.Equal(t, "success", alerts[0].Kind)
	assert.Equal(t, 6*time.Second, alerts[0].Duration)
}

func TestChannel_DuplicatePushCountsOnce(t *testing.T) {
	api := &fakeAPI{}
	tr := &fakeTransport{}
	c := newTestChannel(t, api, tr, Options{})
	c.Connect("token")
	waitSynced(t, c, api)

	n := notif(models.NotificationPriorityNormal)
	tr.push(models.NotificationEvent{Type: models.EventNewNotification, Notification: &n})
	tr.push(models.NotificationEvent{Type: models.EventNewNotification, Notification: &n})

	require.Eventually(t, func() bool { return len(c.Notifications()) > 0 }, time.Second, 5*time.Millisecond)
	// give the duplicate time to be (not) applied
	time.Sleep(20 * time.Millisecond)

	assert.Len(t, c.Notifications(), 1)
	assert.Equal(t, 1, c.UnreadCount())
	assertInvariant(t, c)
}

func TestChannel_ReadEventsRecountNotDecrement(t *testing.T) {
	api := &fakeAPI{}
	tr := &fakeTransport{}
	c := newTestChannel(t, api, tr, Options{})
	c.Connect("token")
	waitSynced(t, c, api)

	a := notif(models.NotificationPriorityNormal)
	b := notif(models.NotificationPriorityNormal)
	tr.push(models.NotificationEvent{Type: models.EventNewNotification, Notification: &a})
	tr.push(models.NotificationEvent{Type: models.EventNewNotification, Notification: &b})
	require.Eventually(t, func() bool { return c.UnreadCount() == 2 }, time.Second, 5*time.Millisecond)

	// the same read event delivered twice must not drive the counter
	// below the recount
	tr.push(models.NotificationEvent{Type: models.EventNotificationRead, NotificationID: a.ID})
	tr.push(models.NotificationEvent{Type: models.EventNotificationRead, NotificationID: a.ID})
	require.Eventually(t, func() bool { return c.UnreadCount() == 1 }, time.Second, 5*time.Millisecond)
	assertInvariant(t, c)

	tr.push(models.NotificationEvent{Type: models.EventAllRead})
	require.Eventually(t, func() bool { return c.UnreadCount() == 0 }, time.Second, 5*time.Millisecond)
	for _, n := range c.Notifications() {
		assert.True(t, n.IsRead)
		assert.NotNil(t, n.ReadAt)
	}
}

func TestChannel_PushThenMarkAllAsRead(t *testing.T) {
	api := &fakeAPI{}
	tr := &fakeTransport{}
	c := newTestChannel(t, api, tr, Options{})
	c.Connect("token")
	waitSynced(t, c, api)

	n := notif(models.NotificationPriorityHigh)
	tr.push(models.NotificationEvent{Type: models.EventNewNotification, Notification: &n})

	// mark-all issued right behind the push: it is serialized after
	// the event, so the final state is fully read
	require.NoError(t, c.MarkAllAsRead(context.Background()))

	assert.Equal(t, 0, c.UnreadCount())
	for _, got := range c.Notifications() {
		assert.True(t, got.IsRead)
	}
	assertInvariant(t, c)
}

func TestChannel_MarkAsReadOptimisticWithoutRollback(t *testing.T) {
	api := &fakeAPI{reqErr: errors.New("boom")}
	tr := &fakeTransport{}
	c := newTestChannel(t, api, tr, Options{})
	c.Connect("token")
	waitSynced(t, c, api)

	n := notif(models.NotificationPriorityNormal)
	tr.push(models.NotificationEvent{Type: models.EventNewNotification, Notification: &n})
	require.Eventually(t, func() bool { return c.UnreadCount() == 1 }, time.Second, 5*time.Millisecond)

	err := c.MarkAsRead(context.Background(), n.ID)
	assert.Error(t, err)

	// the optimistic flip stays: accepted drift, reconciled by the
	// next backlog fetch
	assert.Equal(t, 0, c.UnreadCount())
	got := c.Notifications()
	require.Len(t, got, 1)
	assert.True(t, got[0].IsRead)
	assertInvariant(t, c)
}

func TestChannel_DeleteUnreadAdjustsCount(t *testing.T) {
	api := &fakeAPI{}
	tr := &fakeTransport{}
	c := newTestChannel(t, api, tr, Options{})
	c.Connect("token")
	waitSynced(t, c, api)

	a := notif(models.NotificationPriorityNormal)
	b := notif(models.NotificationPriorityNormal)
	tr.push(models.NotificationEvent{Type: models.EventNewNotification, Notification: &a})
	tr.push(models.NotificationEvent{Type: models.EventNewNotification, Notification: &b})
	require.Eventually(t, func() bool { return c.UnreadCount() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, c.MarkAsRead(context.Background(), a.ID))
	require.NoError(t, c.DeleteNotification(context.Background(), b.ID))

	assert.Len(t, c.Notifications(), 1)
	assert.Equal(t, 0, c.UnreadCount())
	assertInvariant(t, c)

	// deleting an id that is already gone is safe
	require.NoError(t, c.DeleteNotification(context.Background(), b.ID))
	assert.Len(t, c.Notifications(), 1)
	assertInvariant(t, c)
}

func TestChannel_FetchBacklogReplacesWholesale(t *testing.T) {
	api := &fakeAPI{
		items: []models.Notification{
			{ID: uuid.New(), Title: "old but unread"},
			{ID: uuid.New(), Title: "read one", IsRead: true},
		},
		unread: 1,
	}
	tr := &fakeTransport{}
	c := newTestChannel(t, api, tr, Options{})
	c.Connect("token")
	waitConnected(t, c)

	require.Eventually(t, func() bool { return len(c.Notifications()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, c.UnreadCount())
}

func TestChannel_FetchBacklogFailureLeavesCacheUntouched(t *testing.T) {
	api := &fakeAPI{}
	tr := &fakeTransport{}
	c := newTestChannel(t, api, tr, Options{})
	c.Connect("token")
	waitSynced(t, c, api)

	n := notif(models.NotificationPriorityNormal)
	tr.push(models.NotificationEvent{Type: models.EventNewNotification, Notification: &n})
	require.Eventually(t, func() bool { return c.UnreadCount() == 1 }, time.Second, 5*time.Millisecond)
	before := c.Notifications()

	api.mu.Lock()
	api.listErr = errors.New("network down")
	api.mu.Unlock()

	err := c.FetchBacklog(context.Background())
	assert.Error(t, err)

	// no partial or empty replacement
	assert.Equal(t, before, c.Notifications())
	assert.Equal(t, 1, c.UnreadCount())
}

func TestChannel_RetryBudgetExhaustedStaysDisconnected(t *testing.T) {
	tr := &fakeTransport{openErr: errors.New("refused")}
	c := newTestChannel(t, &fakeAPI{}, tr, Options{
		ReconnectAttempts: 2,
		ReconnectDelay:    time.Millisecond,
		ReconnectDelayMax: 2 * time.Millisecond,
	})
	c.Connect("token")

	require.Eventually(t, func() bool {
		return c.ConnectionState() == StateDisconnected && tr.openCount() >= 2
	}, 2*time.Second, 5*time.Millisecond)

	opens := tr.openCount()
	time.Sleep(30 * time.Millisecond)
	// no further attempts until an explicit reconnect
	assert.Equal(t, opens, tr.openCount())

	// a fresh Connect after the budget was spent starts over
	tr.mu.Lock()
	tr.openErr = nil
	tr.mu.Unlock()
	c.Connect("token")
	waitConnected(t, c)
}

func TestChannel_CloseCancelsPendingReconnect(t *testing.T) {
	tr := &fakeTransport{openErr: errors.New("refused")}
	c := New(&fakeAPI{}, tr, zap.NewNop(), Options{
		ReconnectAttempts: 5,
		ReconnectDelay:    time.Hour, // would block forever if not cancelled
	})
	c.Connect("token")

	require.Eventually(t, func() bool { return tr.openCount() == 1 }, time.Second, 5*time.Millisecond)
	c.Close()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, tr.openCount())

	// operations after teardown fail fast instead of hanging
	assert.ErrorIs(t, c.MarkAllAsRead(context.Background()), ErrClosed)
	c.Close() // idempotent
}

func TestAlertFor(t *testing.T) {
	tests := []struct {
		name         string
		ntype        string
		priority     string
		wantKind     string
		wantDuration time.Duration
	}{
		{"payment_confirmed_success", models.NotificationTypePaymentConfirmation, models.NotificationPriorityNormal, "success", 4 * time.Second},
		{"payment_rejected_error", models.NotificationTypePaymentRejected, models.NotificationPriorityHigh, "error", 6 * time.Second},
		{"generic_info", models.NotificationTypeGeneric, models.NotificationPriorityLow, "info", 4 * time.Second},
		{"urgent_shows_longer", models.NotificationTypeGeneric, models.NotificationPriorityUrgent, "info", 6 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := alertFor(models.Notification{Type: tt.ntype, Priority: tt.priority})
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantDuration, got.Duration)
		})
	}
}
