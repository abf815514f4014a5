package commands

import (
	"context"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/ports"
)

// ResolveAlertCommandHandler closes an alert of the actor's branch.
// Resolving an already resolved alert succeeds without writing.
type ResolveAlertCommandHandler struct {
	uowFactory AlertUoWFactory
	branches   ports.BranchDirectory
}

func NewResolveAlertCommandHandler(
	uowFactory AlertUoWFactory,
	branches ports.BranchDirectory,
) ResolveAlertCommandHandler {
	return ResolveAlertCommandHandler{uowFactory: uowFactory, branches: branches}
}

// Handle reports whether this call resolved the alert.
func (h ResolveAlertCommandHandler) Handle(ctx context.Context, cmd ResolveAlertCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AlertRepository()
	a, err := repo.Get(ctx, cmd.AlertID())
	if err != nil {
		return false, err
	}

	changed, err := a.Resolve(cmd.Actor(), cmd.ResolvedAt())
	if err != nil || !changed {
		return false, err
	}

	if err = repo.Update(ctx, a); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
