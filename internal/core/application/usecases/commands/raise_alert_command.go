package commands

import (
	"errors"
	"strings"
	"time"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"
	"courierops/internal/pkg/guard"
)

var ErrRaiseAlertCommandIsNotConstructed = errors.New(
	"RaiseAlertCommand must be created via NewRaiseAlertCommand constructor",
)

// RaiseAlertCommand is a MANUAL alert about a shipment, raised at the actor's
// branch.
type RaiseAlertCommand struct { //nolint:recvcheck //using for validation
	actor      branch.Actor
	shipmentID kernel.UUID
	severity   alert.Severity
	message    string
	raisedAt   time.Time

	guard guard.ConstructorGuard
}

func NewRaiseAlertCommand(
	actor branch.Actor,
	shipmentID kernel.UUID,
	severity alert.Severity,
	message string,
	raisedAt time.Time,
) (RaiseAlertCommand, error) {
	cmd := RaiseAlertCommand{
		actor:      actor,
		shipmentID: shipmentID,
		raisedAt:   raisedAt,
		guard:      guard.NewConstructorGuard(),
	}

	var err error
	cmd.severity, err = alert.ParseSeverity(string(severity))
	cmd.message = strings.TrimSpace(message)
	if cmd.message == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("message"))
	}
	if raisedAt.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("raised at"))
	}
	if err = errors.Join(err, actor.Validate(), shipmentID.Validate()); err != nil {
		return RaiseAlertCommand{}, err
	}

	return cmd, nil
}

func (c RaiseAlertCommand) Validate() error {
	return c.guard.Validate(ErrRaiseAlertCommandIsNotConstructed)
}

func (c RaiseAlertCommand) Actor() branch.Actor      { return c.actor }
func (c RaiseAlertCommand) ShipmentID() kernel.UUID  { return c.shipmentID }
func (c RaiseAlertCommand) Severity() alert.Severity { return c.severity }
func (c RaiseAlertCommand) Message() string          { return c.message }
func (c RaiseAlertCommand) RaisedAt() time.Time      { return c.raisedAt }
