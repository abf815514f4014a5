package commands

import (
	"errors"
	"strings"
	"time"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/pkg/errs"
	"courierops/internal/pkg/guard"
)

var ErrRaiseMaintenanceCommandIsNotConstructed = errors.New(
	"RaiseMaintenanceCommand must be created via NewRaiseMaintenanceCommand constructor",
)

// RaiseMaintenanceCommand announces a maintenance window at the actor's
// branch. While the window is open, automatic assignment scales each worker's
// maximum load by the capacity factor; a factor of 0 stops assignment.
type RaiseMaintenanceCommand struct { //nolint:recvcheck //using for validation
	actor    branch.Actor
	window   alert.MaintenanceWindow
	message  string
	raisedAt time.Time

	guard guard.ConstructorGuard
}

func NewRaiseMaintenanceCommand(
	actor branch.Actor,
	startsAt, endsAt time.Time,
	capacityFactor float64,
	message string,
	raisedAt time.Time,
) (RaiseMaintenanceCommand, error) {
	window, err := alert.NewMaintenanceWindow(startsAt, endsAt, capacityFactor)
	if raisedAt.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("raised at"))
	}
	if err = errors.Join(err, actor.Validate()); err != nil {
		return RaiseMaintenanceCommand{}, err
	}

	return RaiseMaintenanceCommand{
		actor:    actor,
		window:   window,
		message:  strings.TrimSpace(message),
		raisedAt: raisedAt,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RaiseMaintenanceCommand) Validate() error {
	return c.guard.Validate(ErrRaiseMaintenanceCommandIsNotConstructed)
}

func (c RaiseMaintenanceCommand) Actor() branch.Actor             { return c.actor }
func (c RaiseMaintenanceCommand) Window() alert.MaintenanceWindow { return c.window }
func (c RaiseMaintenanceCommand) Message() string                 { return c.message }
func (c RaiseMaintenanceCommand) RaisedAt() time.Time             { return c.raisedAt }
