package commands

import (
	"context"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/ports"
)

// RequestHandoffCommandHandler opens a PENDING handoff.
//
// A shipment has at most one open (PENDING or APPROVED) handoff. The check
// here gives a clean error in the common case; the partial unique index on
// branch_handoffs catches the race, and the repository reports it with the
// same handoff.ErrDuplicateHandoffRequest.
type RequestHandoffCommandHandler struct {
	uowFactory HandoffUoWFactory
	branches   ports.BranchDirectory
}

func NewRequestHandoffCommandHandler(
	uowFactory HandoffUoWFactory,
	branches ports.BranchDirectory,
) RequestHandoffCommandHandler {
	return RequestHandoffCommandHandler{uowFactory: uowFactory, branches: branches}
}

// Handle returns the id of the new handoff.
func (h RequestHandoffCommandHandler) Handle(ctx context.Context, cmd RequestHandoffCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return kernel.UUID{}, err
	}

	handoffRepo := uow.HandoffRepository()
	open, err := handoffRepo.HasOpenForShipment(ctx, s.ID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if open {
		return kernel.UUID{}, handoff.ErrDuplicateHandoffRequest
	}

	request, err := handoff.Request(s, cmd.DestBranchID(), cmd.ExpectedHandOffAt(), cmd.Actor(), cmd.RequestedAt())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = handoffRepo.Add(ctx, request); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return request.ID(), nil
}
