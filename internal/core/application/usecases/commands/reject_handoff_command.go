package commands

import (
	"errors"
	"strings"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"
	"courierops/internal/pkg/guard"
)

var ErrRejectHandoffCommandIsNotConstructed = errors.New(
	"RejectHandoffCommand must be created via NewRejectHandoffCommand constructor",
)

// RejectHandoffCommand declines a PENDING handoff. The reason is optional.
type RejectHandoffCommand struct { //nolint:recvcheck //using for validation
	actor      branch.Actor
	handoffID  kernel.UUID
	reason     string
	rejectedAt time.Time

	guard guard.ConstructorGuard
}

func NewRejectHandoffCommand(
	actor branch.Actor,
	handoffID kernel.UUID,
	reason string,
	rejectedAt time.Time,
) (RejectHandoffCommand, error) {
	var atErr error
	if rejectedAt.IsZero() {
		atErr = errs.NewValueIsRequiredError("rejected at")
	}
	if err := errors.Join(actor.Validate(), handoffID.Validate(), atErr); err != nil {
		return RejectHandoffCommand{}, err
	}

	return RejectHandoffCommand{
		actor:      actor,
		handoffID:  handoffID,
		reason:     strings.TrimSpace(reason),
		rejectedAt: rejectedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RejectHandoffCommand) Validate() error {
	return c.guard.Validate(ErrRejectHandoffCommandIsNotConstructed)
}

func (c RejectHandoffCommand) Actor() branch.Actor    { return c.actor }
func (c RejectHandoffCommand) HandoffID() kernel.UUID { return c.handoffID }
func (c RejectHandoffCommand) Reason() string         { return c.reason }
func (c RejectHandoffCommand) RejectedAt() time.Time  { return c.rejectedAt }
