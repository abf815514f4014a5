package commands

import (
	"context"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/ports"
)

// ScanShipmentCommandHandler applies a scan to a shipment.
//
// The status change, the scan record and the transition row are written in
// one transaction. A rejected scan (misrouted, illegal, unknown shipment)
// writes nothing. When a concurrent writer moves the shipment first, the scan
// is re-applied against the fresh state; if that state no longer accepts the
// scan the caller gets shipment.ErrIllegalTransition.
//
// Example:
//
//	cmd, _ := NewScanShipmentCommand(actor, "TRK-1042", shipment.ScanUnload, time.Now(), nil, "")
//	status, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, shipment.ErrMisroutedScan):
//	    // parcel is at the wrong branch
//	case err != nil:
//	    return err
//	}
//	fmt.Println("now", status)
type ScanShipmentCommandHandler struct {
	uowFactory TransitionUoWFactory
	branches   ports.BranchDirectory
}

func NewScanShipmentCommandHandler(
	uowFactory TransitionUoWFactory,
	branches ports.BranchDirectory,
) ScanShipmentCommandHandler {
	return ScanShipmentCommandHandler{
		uowFactory: uowFactory,
		branches:   branches,
	}
}

// Handle returns the shipment's status after the scan.
func (h ScanShipmentCommandHandler) Handle(ctx context.Context, cmd ScanShipmentCommand) (shipment.Status, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.Unknown, err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return shipment.Unknown, err
	}

	status := shipment.Unknown
	err := retryOnConflict(ctx, func(ctx context.Context) error {
		var err error
		status, err = h.scan(ctx, cmd)
		return err
	})
	if err != nil {
		return shipment.Unknown, err
	}

	return status, nil
}

func (h ScanShipmentCommandHandler) scan(ctx context.Context, cmd ScanShipmentCommand) (shipment.Status, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return shipment.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	s, err := shipmentRepo.GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return shipment.Unknown, err
	}

	tr, err := s.ApplyScan(cmd.Mode(), cmd.Actor(), cmd.ScannedAt())
	if err != nil {
		return shipment.Unknown, err
	}

	scan, err := shipment.NewScanEvent(s, cmd.Mode(), cmd.Actor(), cmd.ScannedAt(), cmd.Geo(), cmd.Notes())
	if err != nil {
		return shipment.Unknown, err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return shipment.Unknown, err
	}

	journal := uow.JournalRepository()
	if err = journal.AppendScan(ctx, scan); err != nil {
		return shipment.Unknown, err
	}
	if err = journal.AppendTransition(ctx, tr); err != nil {
		return shipment.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return shipment.Unknown, err
	}

	return s.Status(), nil
}
