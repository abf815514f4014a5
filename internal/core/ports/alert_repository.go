package ports

import (
	"context"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/kernel"
)

type AlertRepository interface {
	// AddIfAbsent inserts an OPEN alert unless one already exists for the
	// same branch, type and dedupe key. It reports whether a row was written.
	AddIfAbsent(ctx context.Context, aggregate *alert.Alert) (bool, error)

	Update(ctx context.Context, aggregate *alert.Alert) error

	Get(ctx context.Context, id kernel.UUID) (*alert.Alert, error)

	// FindOpen fails with errs.ErrObjectNotFound when there is no match.
	FindOpen(ctx context.Context, branchID kernel.UUID, alertType alert.Type, dedupeKey string) (*alert.Alert, error)

	ListOpenByBranch(ctx context.Context, branchID kernel.UUID, alertType alert.Type) ([]*alert.Alert, error)
}
