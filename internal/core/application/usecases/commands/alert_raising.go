package commands

import (
	"context"
	"errors"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/ports"
	"courierops/internal/pkg/errs"
)

// RaiseResult identifies the open alert a raise resolved to. Created is false
// when an open alert for the same subject already existed.
type RaiseResult struct {
	AlertID kernel.UUID
	Created bool
}

// raiseOnce stores a unless an OPEN alert with the same branch, type and
// dedupe key exists. The lookup keeps the common path free of constraint
// violations; AddIfAbsent settles races with a concurrent raiser.
func raiseOnce(ctx context.Context, repo ports.AlertRepository, a *alert.Alert) (RaiseResult, error) {
	existing, err := repo.FindOpen(ctx, a.BranchID(), a.Type(), a.DedupeKey())
	switch {
	case err == nil:
		return RaiseResult{AlertID: existing.ID()}, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return RaiseResult{}, err
	}

	created, err := repo.AddIfAbsent(ctx, a)
	if err != nil {
		return RaiseResult{}, err
	}
	if created {
		return RaiseResult{AlertID: a.ID(), Created: true}, nil
	}

	existing, err = repo.FindOpen(ctx, a.BranchID(), a.Type(), a.DedupeKey())
	if err != nil {
		return RaiseResult{}, err
	}
	return RaiseResult{AlertID: existing.ID()}, nil
}
