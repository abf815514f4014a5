package ports

import (
	"context"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/workforce"
)

// BranchDirectory answers "does actor X belong to branch Y with capability
// Z". Membership is owned by another system.
type BranchDirectory interface {
	HasCapability(ctx context.Context, actorID, branchID kernel.UUID, capability branch.Capability) (bool, error)
}

// WorkforceDirectory exposes worker availability and current workload.
type WorkforceDirectory interface {
	GetWorker(ctx context.Context, id kernel.UUID) (*workforce.Worker, error)
	ListAvailableByBranch(ctx context.Context, branchID kernel.UUID) ([]*workforce.Worker, error)
}
