// Package kafka adapts the shared Kafka plumbing to the ledger's event
// publishing and customer-event consumption.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/pkg/events"
	"github.com/bancacore/cuenta-ledger/pkg/kafka"
)

// EventPublisher publishes domain events to Kafka. It honors the
// fire-and-forget contract of port.EventPublisher: a broker failure is
// logged and swallowed so the originating ledger operation is unaffected.
type EventPublisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

var _ port.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher creates the publisher.
func NewEventPublisher(producer *kafka.Producer, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, logger: logger}
}

// Publish serializes and sends the events, keyed by aggregate id so events
// of one account stay ordered within a partition.
func (p *EventPublisher) Publish(ctx context.Context, topic string, evts ...events.DomainEvent) {
	if len(evts) == 0 {
		return
	}

	messages := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		payload, err := json.Marshal(evt)
		if err != nil {
			p.logger.Error("marshal domain event",
				"event_type", evt.EventType(),
				"aggregate_id", evt.AggregateID(),
				"error", err,
			)
			continue
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
			},
		})
	}

	if len(messages) == 0 {
		return
	}

	if err := p.producer.Publish(ctx, topic, messages...); err != nil {
		p.logger.Error("publish domain events",
			"topic", topic,
			"count", len(messages),
			"error", err,
		)
	}
}
