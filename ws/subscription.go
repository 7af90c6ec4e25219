package ws

import "sync"

// Subscription is one live sink for a channel key. Transports drain Events()
// until Done() is closed.
type Subscription struct {
	key    string
	hub    *Hub
	events chan Event
	done   chan struct{}
	once   sync.Once
}

func newSubscription(h *Hub, key string, buffer int) *Subscription {
	return &Subscription{
		key:    key,
		hub:    h,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

func (s *Subscription) Key() string { return s.key }

func (s *Subscription) Events() <-chan Event { return s.events }

func (s *Subscription) Done() <-chan struct{} { return s.done }

// Close detaches the subscription from the hub. Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.remove(s)
}

func (s *Subscription) close() {
	s.once.Do(func() { close(s.done) })
}

// deliver never blocks; a full mailbox means the remote side is not keeping up.
func (s *Subscription) deliver(evt Event) error {
	select {
	case <-s.done:
		return ErrSubscriptionClosed
	default:
	}
	select {
	case s.events <- evt:
		return nil
	default:
		return ErrMailboxFull
	}
}
