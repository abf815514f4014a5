package commands

import (
	"errors"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"
	"courierops/internal/pkg/guard"
)

var ErrResolveAlertCommandIsNotConstructed = errors.New(
	"ResolveAlertCommand must be created via NewResolveAlertCommand constructor",
)

type ResolveAlertCommand struct { //nolint:recvcheck //using for validation
	actor      branch.Actor
	alertID    kernel.UUID
	resolvedAt time.Time

	guard guard.ConstructorGuard
}

func NewResolveAlertCommand(actor branch.Actor, alertID kernel.UUID, resolvedAt time.Time) (ResolveAlertCommand, error) {
	var atErr error
	if resolvedAt.IsZero() {
		atErr = errs.NewValueIsRequiredError("resolved at")
	}
	if err := errors.Join(actor.Validate(), alertID.Validate(), atErr); err != nil {
		return ResolveAlertCommand{}, err
	}

	return ResolveAlertCommand{
		actor:      actor,
		alertID:    alertID,
		resolvedAt: resolvedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveAlertCommand) Validate() error {
	return c.guard.Validate(ErrResolveAlertCommandIsNotConstructed)
}

func (c ResolveAlertCommand) Actor() branch.Actor   { return c.actor }
func (c ResolveAlertCommand) AlertID() kernel.UUID  { return c.alertID }
func (c ResolveAlertCommand) ResolvedAt() time.Time { return c.resolvedAt }
