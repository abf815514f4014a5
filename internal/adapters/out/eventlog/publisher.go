package eventlog

import (
	"context"
	"log/slog"

	"courierops/internal/core/domain/model/kernel"
)

// Publisher writes every event to the logger. It is the publisher used when
// no broker is configured.
type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{logger: logger.With("component", "event_log")}
}

func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	for _, event := range events {
		env := NewEnvelope(event)
		p.logger.InfoContext(ctx, "Domain event",
			"event", env.Event,
			"aggregate_id", env.AggregateID,
			"occurred_at", env.OccurredAt,
			"payload", env.Payload,
		)
	}
	return nil
}
