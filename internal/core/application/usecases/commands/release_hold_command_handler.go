package commands

import (
	"context"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/ports"
)

type ReleaseHoldCommandHandler struct {
	uowFactory ShipmentUoWFactory
	branches   ports.BranchDirectory
}

func NewReleaseHoldCommandHandler(
	uowFactory ShipmentUoWFactory,
	branches ports.BranchDirectory,
) ReleaseHoldCommandHandler {
	return ReleaseHoldCommandHandler{uowFactory: uowFactory, branches: branches}
}

// Handle clears the hold. Releasing a shipment that is not held fails with
// errs.ErrValueIsInvalid.
func (h ReleaseHoldCommandHandler) Handle(ctx context.Context, cmd ReleaseHoldCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return err
	}

	return mutateShipment(ctx, h.uowFactory, cmd.ShipmentID(), func(s *shipment.Shipment) error {
		return s.ReleaseHold(cmd.Actor())
	})
}
