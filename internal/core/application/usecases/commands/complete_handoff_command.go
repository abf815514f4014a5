package commands

import (
	"errors"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"
	"courierops/internal/pkg/guard"
)

var ErrCompleteHandoffCommandIsNotConstructed = errors.New(
	"CompleteHandoffCommand must be created via NewCompleteHandoffCommand constructor",
)

// CompleteHandoffCommand records that the destination branch physically took
// custody of the shipment.
type CompleteHandoffCommand struct { //nolint:recvcheck //using for validation
	actor       branch.Actor
	handoffID   kernel.UUID
	completedAt time.Time

	guard guard.ConstructorGuard
}

func NewCompleteHandoffCommand(actor branch.Actor, handoffID kernel.UUID, completedAt time.Time) (CompleteHandoffCommand, error) {
	var atErr error
	if completedAt.IsZero() {
		atErr = errs.NewValueIsRequiredError("completed at")
	}
	if err := errors.Join(actor.Validate(), handoffID.Validate(), atErr); err != nil {
		return CompleteHandoffCommand{}, err
	}

	return CompleteHandoffCommand{
		actor:       actor,
		handoffID:   handoffID,
		completedAt: completedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteHandoffCommand) Validate() error {
	return c.guard.Validate(ErrCompleteHandoffCommandIsNotConstructed)
}

func (c CompleteHandoffCommand) Actor() branch.Actor    { return c.actor }
func (c CompleteHandoffCommand) HandoffID() kernel.UUID { return c.handoffID }
func (c CompleteHandoffCommand) CompletedAt() time.Time { return c.completedAt }
