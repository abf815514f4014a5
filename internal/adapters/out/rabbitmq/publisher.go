// Package rabbitmq publishes domain events to a topic exchange. The routing
// key is the event name, so consumers bind to "shipment.#" or
// "handoff.approved" as they need.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"courierops/internal/adapters/out/eventlog"
	"courierops/internal/core/domain/model/kernel"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultExchange = "courierops.events"

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Publisher struct {
	channel  Channel
	exchange string
	logger   *slog.Logger
	closers  []func() error
}

func NewPublisher(channel Channel, exchange string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	if exchange == "" {
		exchange = DefaultExchange
	}

	return &Publisher{
		channel:  channel,
		exchange: exchange,
		logger:   logger.With("component", "rabbitmq_publisher"),
	}
}

// Dial connects to the broker, declares a durable topic exchange and
// returns a publisher on a dedicated channel. Close releases both.
func Dial(url, exchange string, logger *slog.Logger) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	p := NewPublisher(ch, exchange, logger)
	p.closers = []func() error{ch.Close, conn.Close}
	return p, nil
}

// Publish sends the events in order and stops at the first failure.
func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	for _, event := range events {
		body, err := eventlog.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", event.EventName(), err)
		}

		err = p.channel.PublishWithContext(
			ctx,
			p.exchange,
			event.EventName(),
			false, // mandatory
			false, // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Type:         event.EventName(),
				Timestamp:    event.OccurredAt(),
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish %s for %s: %w", event.EventName(), event.AggregateID(), err)
		}

		p.logger.DebugContext(ctx, "Event published",
			"event", event.EventName(),
			"aggregate_id", event.AggregateID().String(),
		)
	}
	return nil
}

func (p *Publisher) Close() error {
	var errs []error
	for _, closeFn := range p.closers {
		if err := closeFn(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
