// Package hub fans notification events out to the connected sessions
// of a user. Notifications are persisted regardless of whether anyone
// is connected; the hub only covers the live path.
package hub

import (
	"sync"

	"github.com/google/uuid"
	"github.com/mkraj/wholemart/internal/models"
	"go.uber.org/zap"
)

// subscriber buffer size; a session falling this far behind is
// considered dead and is dropped rather than blocking publishers
const subscriberBuffer = 16

// Subscriber is one connected session of a user.
type Subscriber struct {
	C      chan models.NotificationEvent
	userID uuid.UUID
}

// Hub is the per-user event fanout registry.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]map[*Subscriber]struct{}
	logger *zap.Logger
}

// New creates new Hub instance
func New(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[uuid.UUID]map[*Subscriber]struct{}),
		logger: logger,
	}
}

// Subscribe registers a session for a user's events. The caller must
// Unsubscribe when the session ends.
func (h *Hub) Subscribe(userID uuid.UUID) *Subscriber {
	sub := &Subscriber{
		C:      make(chan models.NotificationEvent, subscriberBuffer),
		userID: userID,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*Subscriber]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	return sub
}

// Unsubscribe removes a session. Safe to call twice.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[sub.userID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.userID)
	}
	close(sub.C)
}

// Publish delivers an event to every connected session of the user.
// Never blocks: a subscriber with a full buffer misses the event and
// reconciles from the backlog on its next fetch.
func (h *Hub) Publish(userID uuid.UUID, ev models.NotificationEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[userID] {
		select {
		case sub.C <- ev:
		default:
			h.logger.Warn("dropping event for slow subscriber",
				zap.String("user_id", userID.String()),
				zap.String("event", ev.Type))
		}
	}
}

// Connected reports how many sessions a user has open.
func (h *Hub) Connected(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
