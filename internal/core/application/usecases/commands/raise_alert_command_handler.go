package commands

import (
	"context"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/ports"
)

// RaiseAlertCommandHandler raises MANUAL alerts. Raising twice about the same
// shipment at the same branch while the first alert is open returns the
// existing alert.
type RaiseAlertCommandHandler struct {
	uowFactory AlertUoWFactory
	branches   ports.BranchDirectory
}

func NewRaiseAlertCommandHandler(
	uowFactory AlertUoWFactory,
	branches ports.BranchDirectory,
) RaiseAlertCommandHandler {
	return RaiseAlertCommandHandler{uowFactory: uowFactory, branches: branches}
}

func (h RaiseAlertCommandHandler) Handle(ctx context.Context, cmd RaiseAlertCommand) (RaiseResult, error) {
	if err := cmd.Validate(); err != nil {
		return RaiseResult{}, err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return RaiseResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RaiseResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return RaiseResult{}, err
	}

	a, err := alert.NewManualAlert(s, cmd.Severity(), cmd.Message(), cmd.Actor(), cmd.RaisedAt())
	if err != nil {
		return RaiseResult{}, err
	}

	res, err := raiseOnce(ctx, uow.AlertRepository(), a)
	if err != nil {
		return RaiseResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RaiseResult{}, err
	}

	return res, nil
}
