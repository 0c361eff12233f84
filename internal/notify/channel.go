// Package notify maintains a live, reconnecting subscription to the
// notification stream together with a local mirror of the user's
// notifications and an unread counter.
//
// All cache mutations are applied on a single dispatcher goroutine fed
// by an internal command queue: inbound stream events and user-initiated
// operations are serialized in arrival order, and the unread counter is
// always recomputed from the cache contents rather than tracked with
// deltas, so out-of-order completion of network calls cannot corrupt it.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mkraj/wholemart/internal/models"
	"go.uber.org/zap"
)

// connection state
const (
	StateDisconnected = "disconnected"
	StateConnecting   = "connecting"
	StateConnected    = "connected"
)

var ErrClosed = errors.New("notification channel is closed")

// Transport opens the live event stream for an authenticated session.
// The returned channel is closed on transport-level disconnect.
type Transport interface {
	Open(ctx context.Context, token string) (<-chan models.NotificationEvent, error)
}

// API is the notification REST surface of the server.
type API interface {
	List(ctx context.Context, limit int) ([]models.Notification, int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Alert is a transient user-facing popup derived from a pushed
// notification.
type Alert struct {
	Kind     string // success, error or info
	Title    string
	Message  string
	Duration time.Duration
}

// Options tunes a Channel. Zero values fall back to defaults that
// mirror the production client: five reconnect attempts, one second
// starting delay capped at five seconds, backlog of twenty.
type Options struct {
	BacklogLimit      int
	ReconnectAttempts int
	ReconnectDelay    time.Duration
	ReconnectDelayMax time.Duration
	// OnAlert is invoked on the dispatcher goroutine for every newly
	// pushed notification. Keep it fast.
	OnAlert func(Alert)
}

func (o Options) withDefaults() Options {
	if o.BacklogLimit <= 0 {
		o.BacklogLimit = 20
	}
	if o.ReconnectAttempts <= 0 {
		o.ReconnectAttempts = 5
	}
	if o.ReconnectDelay <= 0 {
		o.ReconnectDelay = time.Second
	}
	if o.ReconnectDelayMax <= 0 {
		o.ReconnectDelayMax = 5 * time.Second
	}
	return o
}

type command struct {
	apply func()
	done  chan struct{}
}

// streamReg hands a live event stream over to the dispatcher. The
// dispatcher closes done once the stream ends, which is the reconnect
// loop's cue.
type streamReg struct {
	events <-chan models.NotificationEvent
	done   chan struct{}
}

// Channel owns the per-session notification cache. Construct one per
// authenticated session and tear it down with Close on logout.
type Channel struct {
	api       API
	transport Transport
	opts      Options
	logger    *zap.Logger

	cmds    chan command
	streams chan streamReg
	closed  chan struct{}
	once    sync.Once

	mu     sync.Mutex // guards cancel
	cancel context.CancelFunc

	// dispatcher-owned state, never touched off the dispatcher goroutine
	notifications []models.Notification
	unread        int
	connState     string
}

// New creates a Channel and starts its dispatcher. The channel stays
// disconnected until Connect is called.
func New(api API, transport Transport, logger *zap.Logger, opts Options) *Channel {
	c := &Channel{
		api:       api,
		transport: transport,
		opts:      opts.withDefaults(),
		logger:    logger,
		cmds:      make(chan command, 64),
		streams:   make(chan streamReg),
		closed:    make(chan struct{}),
		connState: StateDisconnected,
	}
	go c.dispatch()
	return c
}

// dispatch is the single goroutine owning the cache. It consumes the
// live stream directly, so an event handed over by the transport is
// applied before any command issued after it.
func (c *Channel) dispatch() {
	var (
		events     <-chan models.NotificationEvent
		streamDone chan struct{}
	)
	endStream := func() {
		if streamDone != nil {
			close(streamDone)
		}
		events, streamDone = nil, nil
	}
	defer endStream()

	for {
		select {
		case <-c.closed:
			return
		case reg := <-c.streams:
			endStream()
			events, streamDone = reg.events, reg.done
		case ev, ok := <-events:
			if !ok {
				endStream()
				continue
			}
			c.handleEvent(ev)
		case cmd := <-c.cmds:
			cmd.apply()
			if cmd.done != nil {
				close(cmd.done)
			}
		}
	}
}

// post enqueues a mutation without waiting for it.
func (c *Channel) post(fn func()) {
	select {
	case c.cmds <- command{apply: fn}:
	case <-c.closed:
	}
}

// do enqueues a mutation and waits until the dispatcher applied it.
func (c *Channel) do(fn func()) error {
	done := make(chan struct{})
	select {
	case c.cmds <- command{apply: fn, done: done}:
	case <-c.closed:
		return ErrClosed
	}
	select {
	case <-done:
		return nil
	case <-c.closed:
		return ErrClosed
	}
}

// recount restores the cache invariant: the unread counter is always
// the count of unread cache entries, never an incrementally tracked
// parallel value.
func (c *Channel) recount() {
	n := 0
	for i := range c.notifications {
		if !c.notifications[i].IsRead {
			n++
		}
	}
	c.unread = n
}

// Connect opens the live stream for the session. A missing token
// means no live notifications: the channel stays disconnected.
// Calling Connect while already running is a no-op.
func (c *Channel) Connect(token string) {
	if token == "" {
		c.logger.Debug("no session token, notification stream not opened")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go c.run(ctx, token)
}

// Close tears the channel down: cancels any pending reconnect, closes
// the transport and stops the dispatcher. Idempotent.
func (c *Channel) Close() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
	c.once.Do(func() { close(c.closed) })
}

// run is the reconnect loop. Bounded attempts with capped exponential
// backoff; exhausting the budget leaves the channel disconnected until
// Connect is called again after a fresh login.
func (c *Channel) run(ctx context.Context, token string) {
	defer func() {
		c.post(func() { c.connState = StateDisconnected })
		c.mu.Lock()
		c.cancel = nil
		c.mu.Unlock()
	}()

	attempt := 0
	for {
		if ctx.Err() != nil {
			return
		}

		c.post(func() { c.connState = StateConnecting })

		events, err := c.transport.Open(ctx, token)
		if err != nil {
			attempt++
			c.logger.Warn("notification stream connect failed",
				zap.Int("attempt", attempt), zap.Error(err))
			if !c.waitRetry(ctx, attempt) {
				return
			}
			continue
		}

		attempt = 0
		c.post(func() { c.connState = StateConnected })
		c.logger.Debug("notification stream connected")

		reg := streamReg{events: events, done: make(chan struct{})}
		select {
		case c.streams <- reg:
		case <-c.closed:
			return
		}

		// reconciliation point: correct any drift accumulated while
		// disconnected
		if err := c.FetchBacklog(ctx); err != nil {
			c.logger.Error("fetch notification backlog", zap.Error(err))
		}

		select {
		case <-reg.done:
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}

		if ctx.Err() != nil {
			return
		}
		c.logger.Warn("notification stream dropped, reconnecting")
		attempt++
		if !c.waitRetry(ctx, attempt) {
			return
		}
	}
}

// waitRetry sleeps the backoff delay for the given attempt. Returns
// false when the retry budget is spent or the context was cancelled.
func (c *Channel) waitRetry(ctx context.Context, attempt int) bool {
	if attempt > c.opts.ReconnectAttempts {
		c.logger.Warn("notification stream reconnect attempts exhausted")
		return false
	}

	delay := c.opts.ReconnectDelay << (attempt - 1)
	if delay > c.opts.ReconnectDelayMax {
		delay = c.opts.ReconnectDelayMax
	}

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// handleEvent applies one pushed event to the cache. Runs on the
// dispatcher goroutine.
func (c *Channel) handleEvent(ev models.NotificationEvent) {
	switch ev.Type {
	case models.EventNewNotification:
		if ev.Notification == nil {
			return
		}
		// duplicate delivery must not double-count
		for i := range c.notifications {
			if c.notifications[i].ID == ev.Notification.ID {
				return
			}
		}
		c.notifications = append([]models.Notification{*ev.Notification}, c.notifications...)
		c.recount()
		if c.opts.OnAlert != nil {
			c.opts.OnAlert(alertFor(*ev.Notification))
		}

	case models.EventNotificationRead:
		now := time.Now()
		for i := range c.notifications {
			if c.notifications[i].ID == ev.NotificationID && !c.notifications[i].IsRead {
				c.notifications[i].IsRead = true
				c.notifications[i].ReadAt = &now
			}
		}
		c.recount()

	case models.EventAllRead:
		now := time.Now()
		for i := range c.notifications {
			if !c.notifications[i].IsRead {
				c.notifications[i].IsRead = true
				c.notifications[i].ReadAt = &now
			}
		}
		c.recount()

	default:
		c.logger.Debug("ignoring unknown stream event", zap.String("type", ev.Type))
	}
}

// FetchBacklog replaces the local cache wholesale with the most
// recent notifications and the authoritative unread count. A failed
// fetch leaves the previous cache untouched.
func (c *Channel) FetchBacklog(ctx context.Context) error {
	items, unread, err := c.api.List(ctx, c.opts.BacklogLimit)
	if err != nil {
		return err
	}
	return c.do(func() {
		c.notifications = items
		// the server count is authoritative here: unread entries older
		// than the backlog window are not in the cache
		c.unread = unread
	})
}

// MarkAsRead optimistically flips the local entry and then tells the
// server. A failed server call leaves the optimistic state in place:
// responsiveness is favoured over strict consistency, the next
// backlog fetch reconciles.
func (c *Channel) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	if err := c.do(func() {
		now := time.Now()
		for i := range c.notifications {
			if c.notifications[i].ID == id && !c.notifications[i].IsRead {
				c.notifications[i].IsRead = true
				c.notifications[i].ReadAt = &now
			}
		}
		c.recount()
	}); err != nil {
		return err
	}

	if err := c.api.MarkRead(ctx, id); err != nil {
		c.logger.Error("mark notification read", zap.String("id", id.String()), zap.Error(err))
		return err
	}
	return nil
}

// MarkAllAsRead is the bulk version of MarkAsRead.
func (c *Channel) MarkAllAsRead(ctx context.Context) error {
	if err := c.do(func() {
		now := time.Now()
		for i := range c.notifications {
			if !c.notifications[i].IsRead {
				c.notifications[i].IsRead = true
				c.notifications[i].ReadAt = &now
			}
		}
		c.recount()
	}); err != nil {
		return err
	}

	if err := c.api.MarkAllRead(ctx); err != nil {
		c.logger.Error("mark all notifications read", zap.Error(err))
		return err
	}
	return nil
}

// DeleteNotification removes the entry from the cache and tells the
// server. Deleting an id the server no longer knows is still success.
func (c *Channel) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	if err := c.do(func() {
		kept := c.notifications[:0]
		for _, n := range c.notifications {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		c.notifications = kept
		c.recount()
	}); err != nil {
		return err
	}

	if err := c.api.Delete(ctx, id); err != nil {
		c.logger.Error("delete notification", zap.String("id", id.String()), zap.Error(err))
		return err
	}
	return nil
}

// Notifications returns a snapshot of the cached notifications,
// newest first.
func (c *Channel) Notifications() []models.Notification {
	var snapshot []models.Notification
	if err := c.do(func() {
		snapshot = make([]models.Notification, len(c.notifications))
		copy(snapshot, c.notifications)
	}); err != nil {
		return nil
	}
	return snapshot
}

// UnreadCount returns the current unread counter.
func (c *Channel) UnreadCount() int {
	var n int
	if err := c.do(func() { n = c.unread }); err != nil {
		return 0
	}
	return n
}

// ConnectionState returns disconnected, connecting or connected.
func (c *Channel) ConnectionState() string {
	state := StateDisconnected
	if err := c.do(func() { state = c.connState }); err != nil {
		return StateDisconnected
	}
	return state
}

// alertFor derives the popup kind and display duration from the
// notification type and priority. Urgent and high priority stay on
// screen longer.
func alertFor(n models.Notification) Alert {
	duration := 4 * time.Second
	if n.Priority == models.NotificationPriorityUrgent || n.Priority == models.NotificationPriorityHigh {
		duration = 6 * time.Second
	}

	kind := "info"
	switch n.Type {
	case models.NotificationTypePaymentConfirmation,
		models.NotificationTypeAccountApproved,
		models.NotificationTypeOrderStatusChange:
		kind = "success"
	case models.NotificationTypePaymentRejected,
		models.NotificationTypeAccountRejected:
		kind = "error"
	}

	return Alert{Kind: kind, Title: n.Title, Message: n.Message, Duration: duration}
}
