package commands

import (
	"context"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/ports"
)

// ApproveHandoffCommandHandler accepts a PENDING handoff on behalf of the
// destination branch. Any other branch gets branch.ErrUnauthorizedBranchActor
// and the handoff stays PENDING.
type ApproveHandoffCommandHandler struct {
	uowFactory HandoffUoWFactory
	branches   ports.BranchDirectory
}

func NewApproveHandoffCommandHandler(
	uowFactory HandoffUoWFactory,
	branches ports.BranchDirectory,
) ApproveHandoffCommandHandler {
	return ApproveHandoffCommandHandler{uowFactory: uowFactory, branches: branches}
}

func (h ApproveHandoffCommandHandler) Handle(ctx context.Context, cmd ApproveHandoffCommand) (handoff.Status, error) {
	if err := cmd.Validate(); err != nil {
		return handoff.Unknown, err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return handoff.Unknown, err
	}

	return mutateHandoff(ctx, h.uowFactory, cmd.HandoffID(), func(ho *handoff.Handoff) error {
		return ho.Approve(cmd.Actor(), cmd.ApprovedAt())
	})
}
