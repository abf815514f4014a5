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

var ErrHoldShipmentCommandIsNotConstructed = errors.New(
	"HoldShipmentCommand must be created via NewHoldShipmentCommand constructor",
)

type HoldShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      branch.Actor
	shipmentID kernel.UUID
	reason     string
	heldAt     time.Time

	guard guard.ConstructorGuard
}

func NewHoldShipmentCommand(
	actor branch.Actor,
	shipmentID kernel.UUID,
	reason string,
	heldAt time.Time,
) (HoldShipmentCommand, error) {
	cmd := HoldShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		shipmentID.Validate(),
		cmd.setReason(reason),
		cmd.setHeldAt(heldAt),
	); err != nil {
		return HoldShipmentCommand{}, err
	}
	cmd.actor = actor
	cmd.shipmentID = shipmentID

	return cmd, nil
}

func (c HoldShipmentCommand) Validate() error {
	return c.guard.Validate(ErrHoldShipmentCommandIsNotConstructed)
}

func (c HoldShipmentCommand) Actor() branch.Actor     { return c.actor }
func (c HoldShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c HoldShipmentCommand) Reason() string          { return c.reason }
func (c HoldShipmentCommand) HeldAt() time.Time       { return c.heldAt }

func (c *HoldShipmentCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("hold reason")
	}

	c.reason = reason
	return nil
}

func (c *HoldShipmentCommand) setHeldAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("held at")
	}

	c.heldAt = at
	return nil
}
