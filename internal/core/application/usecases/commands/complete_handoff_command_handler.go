package commands

import (
	"context"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/ports"
)

// CompleteHandoffCommandHandler closes an APPROVED handoff.
type CompleteHandoffCommandHandler struct {
	uowFactory HandoffUoWFactory
	branches   ports.BranchDirectory
}

func NewCompleteHandoffCommandHandler(
	uowFactory HandoffUoWFactory,
	branches ports.BranchDirectory,
) CompleteHandoffCommandHandler {
	return CompleteHandoffCommandHandler{uowFactory: uowFactory, branches: branches}
}

func (h CompleteHandoffCommandHandler) Handle(ctx context.Context, cmd CompleteHandoffCommand) (handoff.Status, error) {
	if err := cmd.Validate(); err != nil {
		return handoff.Unknown, err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return handoff.Unknown, err
	}

	return mutateHandoff(ctx, h.uowFactory, cmd.HandoffID(), func(ho *handoff.Handoff) error {
		return ho.Complete(cmd.Actor(), cmd.CompletedAt())
	})
}
