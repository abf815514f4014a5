package commands

import (
	"errors"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"
	"courierops/internal/pkg/guard"
)

var ErrCancelShipmentCommandIsNotConstructed = errors.New(
	"CancelShipmentCommand must be created via NewCancelShipmentCommand constructor",
)

// CancelShipmentCommand withdraws a shipment before pickup. Only the origin
// branch may cancel.
type CancelShipmentCommand struct { //nolint:recvcheck //using for validation
	actor       branch.Actor
	shipmentID  kernel.UUID
	cancelledAt time.Time

	guard guard.ConstructorGuard
}

func NewCancelShipmentCommand(actor branch.Actor, shipmentID kernel.UUID, cancelledAt time.Time) (CancelShipmentCommand, error) {
	var atErr error
	if cancelledAt.IsZero() {
		atErr = errs.NewValueIsRequiredError("cancelled at")
	}
	if err := errors.Join(actor.Validate(), shipmentID.Validate(), atErr); err != nil {
		return CancelShipmentCommand{}, err
	}

	return CancelShipmentCommand{
		actor:       actor,
		shipmentID:  shipmentID,
		cancelledAt: cancelledAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CancelShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
}

func (c CancelShipmentCommand) Actor() branch.Actor     { return c.actor }
func (c CancelShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c CancelShipmentCommand) CancelledAt() time.Time  { return c.cancelledAt }
