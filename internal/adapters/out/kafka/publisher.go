// Package kafka publishes domain events to a single topic. Messages are
// keyed by aggregate id so every event of one shipment lands on the same
// partition in order.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"courierops/internal/adapters/out/eventlog"
	"courierops/internal/core/domain/model/kernel"

	kafkago "github.com/segmentio/kafka-go"
)

const DefaultTopic = "courierops.shipment-events"

// Writer is implemented by *kafkago.Writer.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type Publisher struct {
	writer Writer
	logger *slog.Logger
}

// NewPublisher writes to topic on the comma separated brokers.
func NewPublisher(brokers, topic string, logger *slog.Logger) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}

	return NewPublisherWithWriter(&kafkago.Writer{
		Addr:                   kafkago.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}, logger)
}

func NewPublisherWithWriter(writer Writer, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{writer: writer, logger: logger.With("component", "kafka_publisher")}
}

// Publish writes all events in one batch.
func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, len(events))
	for _, event := range events {
		value, err := eventlog.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", event.EventName(), err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(event.AggregateID().String()),
			Value: value,
			Time:  event.OccurredAt(),
			Headers: []kafkago.Header{
				{Key: "event", Value: []byte(event.EventName())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d events to kafka: %w", len(msgs), err)
	}

	p.logger.DebugContext(ctx, "Events published", "count", len(msgs))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
