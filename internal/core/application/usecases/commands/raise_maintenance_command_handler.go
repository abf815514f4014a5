package commands

import (
	"context"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/ports"
)

// RaiseMaintenanceCommandHandler stores maintenance windows as MAINTENANCE
// alerts, deduplicated by start time. A window that stops assignment is
// raised as a warning, a partial one as info.
type RaiseMaintenanceCommandHandler struct {
	uowFactory AlertUoWFactory
	branches   ports.BranchDirectory
}

func NewRaiseMaintenanceCommandHandler(
	uowFactory AlertUoWFactory,
	branches ports.BranchDirectory,
) RaiseMaintenanceCommandHandler {
	return RaiseMaintenanceCommandHandler{uowFactory: uowFactory, branches: branches}
}

func (h RaiseMaintenanceCommandHandler) Handle(ctx context.Context, cmd RaiseMaintenanceCommand) (RaiseResult, error) {
	if err := cmd.Validate(); err != nil {
		return RaiseResult{}, err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return RaiseResult{}, err
	}

	severity := alert.SeverityInfo
	if cmd.Window().BlocksAssignment() {
		severity = alert.SeverityWarning
	}
	actorID := cmd.Actor().ID()
	a, err := alert.NewAlert(
		cmd.Actor().BranchID(),
		alert.TypeMaintenance,
		severity,
		cmd.Window().Context(),
		cmd.Message(),
		&actorID,
		cmd.RaisedAt(),
	)
	if err != nil {
		return RaiseResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return RaiseResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	res, err := raiseOnce(ctx, uow.AlertRepository(), a)
	if err != nil {
		return RaiseResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RaiseResult{}, err
	}

	return res, nil
}
