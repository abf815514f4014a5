package branch

import (
	"errors"

	"courierops/internal/core/domain/model/kernel"
)

var (
	ErrUnauthorizedBranchActor = errors.New("actor does not belong to the branch for this operation")

	ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")
)

// Actor is a staff member, device or scheduler acting for exactly one branch.
type Actor struct {
	id       kernel.UUID
	branchID kernel.UUID

	isConstructed bool
}

func NewActor(id, branchID kernel.UUID) (Actor, error) {
	if err := errors.Join(id.Validate(), branchID.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, branchID: branchID, isConstructed: true}, nil
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) BranchID() kernel.UUID {
	return a.branchID
}

func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// BelongsTo reports whether the actor acts for branchID.
func (a Actor) BelongsTo(branchID kernel.UUID) bool {
	return a.isConstructed && a.branchID.IsEqual(branchID)
}

// RequireBranch fails with ErrUnauthorizedBranchActor unless the actor acts
// for branchID.
func (a Actor) RequireBranch(branchID kernel.UUID) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.BelongsTo(branchID) {
		return ErrUnauthorizedBranchActor
	}
	return nil
}
