package commands

import (
	"context"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/ports"
)

type RejectHandoffCommandHandler struct {
	uowFactory HandoffUoWFactory
	branches   ports.BranchDirectory
}

func NewRejectHandoffCommandHandler(
	uowFactory HandoffUoWFactory,
	branches ports.BranchDirectory,
) RejectHandoffCommandHandler {
	return RejectHandoffCommandHandler{uowFactory: uowFactory, branches: branches}
}

// Handle is reserved to the destination branch. A rejected handoff is
// terminal; the origin may request a new one.
func (h RejectHandoffCommandHandler) Handle(ctx context.Context, cmd RejectHandoffCommand) (handoff.Status, error) {
	if err := cmd.Validate(); err != nil {
		return handoff.Unknown, err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return handoff.Unknown, err
	}

	return mutateHandoff(ctx, h.uowFactory, cmd.HandoffID(), func(ho *handoff.Handoff) error {
		return ho.Reject(cmd.Reason(), cmd.Actor(), cmd.RejectedAt())
	})
}
