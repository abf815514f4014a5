package commands

import (
	"errors"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"
	"courierops/internal/pkg/guard"
)

var ErrApproveHandoffCommandIsNotConstructed = errors.New(
	"ApproveHandoffCommand must be created via NewApproveHandoffCommand constructor",
)

type ApproveHandoffCommand struct { //nolint:recvcheck //using for validation
	actor      branch.Actor
	handoffID  kernel.UUID
	approvedAt time.Time

	guard guard.ConstructorGuard
}

func NewApproveHandoffCommand(actor branch.Actor, handoffID kernel.UUID, approvedAt time.Time) (ApproveHandoffCommand, error) {
	var atErr error
	if approvedAt.IsZero() {
		atErr = errs.NewValueIsRequiredError("approved at")
	}
	if err := errors.Join(actor.Validate(), handoffID.Validate(), atErr); err != nil {
		return ApproveHandoffCommand{}, err
	}

	return ApproveHandoffCommand{
		actor:      actor,
		handoffID:  handoffID,
		approvedAt: approvedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveHandoffCommand) Validate() error {
	return c.guard.Validate(ErrApproveHandoffCommandIsNotConstructed)
}

func (c ApproveHandoffCommand) Actor() branch.Actor    { return c.actor }
func (c ApproveHandoffCommand) HandoffID() kernel.UUID { return c.handoffID }
func (c ApproveHandoffCommand) ApprovedAt() time.Time  { return c.approvedAt }
