package commands

import (
	"errors"
	"time"

	"courierops/internal/pkg/errs"
	"courierops/internal/pkg/guard"
)

var ErrRunSLAMonitorCommandIsNotConstructed = errors.New(
	"RunSLAMonitorCommand must be created via NewRunSLAMonitorCommand constructor",
)

// RunSLAMonitorCommand is one sweep of the SLA monitor evaluated at now.
type RunSLAMonitorCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

func NewRunSLAMonitorCommand(now time.Time) (RunSLAMonitorCommand, error) {
	if now.IsZero() {
		return RunSLAMonitorCommand{}, errs.NewValueIsRequiredError("now")
	}

	return RunSLAMonitorCommand{now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c RunSLAMonitorCommand) Validate() error {
	return c.guard.Validate(ErrRunSLAMonitorCommandIsNotConstructed)
}

func (c RunSLAMonitorCommand) Now() time.Time {
	return c.now
}
