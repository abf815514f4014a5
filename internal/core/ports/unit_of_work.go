package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one business transaction. Repositories it hands out run in
// the transaction opened by Begin. Domain events buffered by aggregates
// written through it are published after a successful Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	ShipmentRepository() ShipmentRepository
	JournalRepository() JournalRepository
	HandoffRepository() HandoffRepository
	AlertRepository() AlertRepository
	WorkforceDirectory() WorkforceDirectory
}
