package commands

import (
	"context"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/ports"
)

// BookShipmentCommandHandler creates shipments in BOOKED. Booking records no
// transition row; the first one is written when the shipment is assigned.
type BookShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	branches   ports.BranchDirectory
}

func NewBookShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	branches ports.BranchDirectory,
) BookShipmentCommandHandler {
	return BookShipmentCommandHandler{
		uowFactory: uowFactory,
		branches:   branches,
	}
}

func (h BookShipmentCommandHandler) Handle(ctx context.Context, cmd BookShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return err
	}

	s, err := shipment.NewShipment(
		cmd.ShipmentID(),
		cmd.TrackingNumber(),
		cmd.Actor().BranchID(),
		cmd.DestBranchID(),
		cmd.ExpectedDeliveryDate(),
		cmd.CODAmount(),
		cmd.BookedAt(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
