package queries

import (
	"context"
	"fmt"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/ports"

	"github.com/lib/pq"
)

// authorizeRead requires the actor to act for branchID and to hold at least
// branch_read there.
func authorizeRead(
	ctx context.Context,
	branches ports.BranchDirectory,
	actor branch.Actor,
	branchID kernel.UUID,
) error {
	if err := actor.RequireBranch(branchID); err != nil {
		return err
	}

	ok, err := branches.HasCapability(ctx, actor.ID(), branchID, branch.CapabilityRead)
	if err != nil {
		return fmt.Errorf("check %s membership: %w", branch.CapabilityRead, err)
	}
	if !ok {
		return branch.ErrUnauthorizedBranchActor
	}
	return nil
}

func codes[T fmt.Stringer](values []T) any {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	return pq.Array(out)
}
