package commands

import (
	"context"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/ports"
)

// HoldShipmentCommandHandler flags a shipment as held. The status does not
// change and no transition is written.
type HoldShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	branches   ports.BranchDirectory
}

func NewHoldShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	branches ports.BranchDirectory,
) HoldShipmentCommandHandler {
	return HoldShipmentCommandHandler{uowFactory: uowFactory, branches: branches}
}

func (h HoldShipmentCommandHandler) Handle(ctx context.Context, cmd HoldShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return err
	}

	return mutateShipment(ctx, h.uowFactory, cmd.ShipmentID(), func(s *shipment.Shipment) error {
		return s.Hold(cmd.Reason(), cmd.Actor(), cmd.HeldAt())
	})
}
