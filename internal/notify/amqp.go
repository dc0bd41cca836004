package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/easyorganic/order-svc/internal/dal/interfaces/ioutboxrepo"
	"github.com/easyorganic/order-svc/internal/dal/rabbitmq"
	"github.com/easyorganic/order-svc/internal/service/models/outbox"
)

const contentTypeJSON = "application/json"

// AMQPSink publishes envelopes to a fanout exchange so dashboards connected
// through other gateway instances receive the same events. A publish that
// fails is parked in the outbox and retried by the worker; the caller is
// never blocked or failed by broker trouble.
type AMQPSink struct {
	client     *rabbitmq.Client
	outboxRepo ioutboxrepo.IOutboxRepository
	exchange   string
	maxRetries int
}

// NewAMQPSink declares the fanout exchange and returns the sink.
func NewAMQPSink(
	client *rabbitmq.Client,
	outboxRepo ioutboxrepo.IOutboxRepository,
	exchange string,
	maxRetries int,
) (*AMQPSink, error) {
	err := client.DeclareExchange(rabbitmq.DeclareExchangeConfig{
		Name:    exchange,
		Kind:    "fanout",
		Durable: true,
	})
	if err != nil {
		return nil, err
	}

	return &AMQPSink{
		client:     client,
		outboxRepo: outboxRepo,
		exchange:   exchange,
		maxRetries: maxRetries,
	}, nil
}

// Emit implements NotificationSink.
func (s *AMQPSink) Emit(ctx context.Context, event string, payload any) {
	env, err := NewEnvelope(event, payload)
	if err != nil {
		slog.Error("Failed to build notification envelope", "event", event, "error", err)

		return
	}

	body, err := json.Marshal(env)
	if err != nil {
		slog.Error("Failed to marshal notification envelope", "event", event, "error", err)

		return
	}

	err = s.client.Channel().Publish(
		s.exchange,
		event,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        body,
		},
	)
	if err == nil {
		return
	}

	slog.Warn("Failed to publish notification, parking in outbox", "event", event, "error", err)

	now := time.Now()
	msg := outbox.Message{
		Event:        event,
		ExchangeName: s.exchange,
		RoutingKey:   event,
		Payload:      body,
		ContentType:  contentTypeJSON,
		MaxRetries:   s.maxRetries,
		LastError:    err.Error(),
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	}
	if err := s.outboxRepo.Insert(ctx, msg); err != nil {
		slog.Error("Failed to park notification in outbox", "event", event, "error", err)
	}
}
