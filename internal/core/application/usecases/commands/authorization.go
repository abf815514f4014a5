package commands

import (
	"context"
	"fmt"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/ports"
)

// authorize asks the branch directory whether the actor holds capability at
// the branch it acts for. Which branch an operation concerns is checked by
// the aggregates themselves.
func authorize(
	ctx context.Context,
	branches ports.BranchDirectory,
	actor branch.Actor,
	capability branch.Capability,
) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	ok, err := branches.HasCapability(ctx, actor.ID(), actor.BranchID(), capability)
	if err != nil {
		return fmt.Errorf("check %s membership: %w", capability, err)
	}
	if !ok {
		return branch.ErrUnauthorizedBranchActor
	}
	return nil
}
