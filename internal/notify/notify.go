// Package notify fans lifecycle events out to connected dashboards and to
// the message broker. Emission is an explicit capability handed to services
// at construction time; nothing here is resolved from request state.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event names forming the observable side-channel contract.
const (
	EventNewOrder       = "new_order"
	EventOrderUpdated   = "order_updated"
	EventOrderCancelled = "order_cancelled"
	EventStatsUpdate    = "stats_update"
)

// Envelope wraps every broadcast payload.
type Envelope struct {
	ID        string          `json:"id"`
	Event     string          `json:"event"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewEnvelope marshals payload into a broadcast envelope.
func NewEnvelope(event string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		ID:        uuid.NewString(),
		Event:     event,
		Timestamp: time.Now(),
		Payload:   raw,
	}, nil
}

// NotificationSink receives one call per committed order mutation. Delivery
// is best-effort; implementations must not block the caller indefinitely.
type NotificationSink interface {
	Emit(ctx context.Context, event string, payload any)
}

// MultiSink fans a single Emit out to several sinks.
type MultiSink []NotificationSink

func (m MultiSink) Emit(ctx context.Context, event string, payload any) {
	for _, s := range m {
		s.Emit(ctx, event, payload)
	}
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Emit(context.Context, string, any) {}
