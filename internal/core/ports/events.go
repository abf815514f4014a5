package ports

import (
	"context"
	"time"

	"courierops/internal/core/domain/model/kernel"
)

// EventPublisher delivers domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}

// Lease is a held run lock.
type Lease interface {
	Release(ctx context.Context) error
}

// RunLock guards jobs that must not overlap across processes. A lock held
// elsewhere is reported as acquired == false with a nil error.
type RunLock interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (lease Lease, acquired bool, err error)
}
