package commands

import (
	"context"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/ports"
)

type CancelShipmentCommandHandler struct {
	uowFactory TransitionUoWFactory
	branches   ports.BranchDirectory
}

func NewCancelShipmentCommandHandler(
	uowFactory TransitionUoWFactory,
	branches ports.BranchDirectory,
) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{uowFactory: uowFactory, branches: branches}
}

func (h CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) (shipment.Status, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.Unknown, err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return shipment.Unknown, err
	}

	return transitionShipment(ctx, h.uowFactory, cmd.ShipmentID(), func(s *shipment.Shipment) (*shipment.Transition, error) {
		return s.Cancel(cmd.Actor(), cmd.CancelledAt())
	})
}
