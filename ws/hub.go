package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHubClosed          = errors.New("notification hub is shut down")
	ErrSubscriptionClosed = errors.New("subscription closed")
	ErrMailboxFull        = errors.New("subscriber mailbox full")
)

// Event is the envelope pushed to a subscriber.
type Event struct {
	ID      string          `json:"id"`
	Name    string          `json:"event"`
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
	At      time.Time       `json:"at"`
}

// Hub maps a channel key to at most one live subscription.
// Nothing is buffered for absent subscribers and nothing is replayed.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]*Subscription
	closed bool

	buffer int
	log    *slog.Logger
	now    func() time.Time
}

func NewHub(log *slog.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		subs:   make(map[string]*Subscription),
		buffer: buffer,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Subscribe attaches a new subscription to key. A previous subscriber on the
// same key is replaced and closed.
func (h *Hub) Subscribe(key string) (*Subscription, error) {
	sub := newSubscription(h, key, h.buffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHubClosed
	}
	prev := h.subs[key]
	h.subs[key] = sub
	h.mu.Unlock()

	if prev != nil {
		prev.close()
		h.log.Debug("subscriber replaced", slog.String("channel", key))
	}
	h.log.Debug("subscriber attached", slog.String("channel", key))
	return sub, nil
}

// Publish hands the event to the current subscriber of key, if any. A failed
// hand-off drops the event and evicts the subscriber.
func (h *Hub) Publish(key, event string, payload any) {
	h.mu.RLock()
	sub := h.subs[key]
	h.mu.RUnlock()
	if sub == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("encode event payload", slog.String("channel", key), slog.String("event", event), slog.Any("err", err))
		return
	}

	evt := Event{
		ID:      uuid.NewString(),
		Name:    event,
		Channel: key,
		Data:    data,
		At:      h.now(),
	}
	if err := sub.deliver(evt); err != nil {
		h.log.Warn("event dropped, evicting subscriber",
			slog.String("channel", key), slog.String("event", event), slog.Any("err", err))
		h.remove(sub)
	}
}

// PublishToMany publishes to each key in order; there is no atomicity across keys.
func (h *Hub) PublishToMany(keys []string, event string, payload any) {
	for _, k := range keys {
		h.Publish(k, event, payload)
	}
}

// Subscribed reports whether key currently has a live subscriber.
func (h *Hub) Subscribed(key string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.subs[key]
	return ok
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// remove detaches sub only if it is still the current subscriber of its key.
func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	if cur, ok := h.subs[sub.key]; ok && cur == sub {
		delete(h.subs, sub.key)
	}
	h.mu.Unlock()
	sub.close()
}

// Shutdown closes every subscription and rejects new ones.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	subs := h.subs
	h.subs = make(map[string]*Subscription)
	h.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
	h.log.Info("notification hub stopped", slog.Int("subscribers", len(subs)))
	return ctx.Err()
}
