package kernel

import "time"

// DomainEvent is raised by an aggregate and dispatched by the unit of work
// once the surrounding transaction has committed.
type DomainEvent interface {
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventSource is implemented by aggregates that buffer domain events.
type EventSource interface {
	PullEvents() []DomainEvent
}
