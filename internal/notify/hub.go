package notify

import (
	"context"
	"log/slog"
	"sync"
)

const subscriberBuffer = 16

// Hub broadcasts envelopes to in-process subscribers (the SSE endpoint).
// Delivery is at-most-once: a slow subscriber's events are dropped rather
// than blocking the emitter, and subscribers connecting after an event fires
// never see it. Dashboards refetch on load, so there is no backlog.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Envelope]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[chan Envelope]struct{}),
	}
}

// Subscribe registers a new subscriber. The returned cancel function must be
// called when the subscriber disconnects.
func (h *Hub) Subscribe() (<-chan Envelope, func()) {
	ch := make(chan Envelope, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}

	return ch, cancel
}

// Emit implements NotificationSink.
func (h *Hub) Emit(_ context.Context, event string, payload any) {
	env, err := NewEnvelope(event, payload)
	if err != nil {
		slog.Error("Failed to build notification envelope", "event", event, "error", err)

		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- env:
		default:
			// Subscriber buffer full, drop rather than block.
		}
	}
}

// SubscriberCount returns the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}
