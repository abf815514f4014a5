package commands

import (
	"context"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/ports"
)

// ReportExceptionCommandHandler parks a shipment in EXCEPTION and flags it for
// follow-up on the operational alerts board.
type ReportExceptionCommandHandler struct {
	uowFactory TransitionUoWFactory
	branches   ports.BranchDirectory
}

func NewReportExceptionCommandHandler(
	uowFactory TransitionUoWFactory,
	branches ports.BranchDirectory,
) ReportExceptionCommandHandler {
	return ReportExceptionCommandHandler{uowFactory: uowFactory, branches: branches}
}

func (h ReportExceptionCommandHandler) Handle(ctx context.Context, cmd ReportExceptionCommand) (shipment.Status, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.Unknown, err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return shipment.Unknown, err
	}

	return transitionShipment(ctx, h.uowFactory, cmd.ShipmentID(), func(s *shipment.Shipment) (*shipment.Transition, error) {
		return s.ReportException(cmd.Actor(), cmd.ReportedAt())
	})
}
