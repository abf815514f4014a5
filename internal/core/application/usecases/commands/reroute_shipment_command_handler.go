package commands

import (
	"context"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/ports"
)

// RerouteShipmentCommandHandler changes a shipment's destination. Only the
// origin branch may reroute; the previous destination and the rerouting actor
// are kept on the shipment.
type RerouteShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	branches   ports.BranchDirectory
}

func NewRerouteShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	branches ports.BranchDirectory,
) RerouteShipmentCommandHandler {
	return RerouteShipmentCommandHandler{uowFactory: uowFactory, branches: branches}
}

func (h RerouteShipmentCommandHandler) Handle(ctx context.Context, cmd RerouteShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return err
	}

	return mutateShipment(ctx, h.uowFactory, cmd.ShipmentID(), func(s *shipment.Shipment) error {
		return s.Reroute(cmd.NewDestBranchID(), cmd.Reason(), cmd.Actor(), cmd.NewDeadline())
	})
}
