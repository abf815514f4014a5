package commands

import (
	"errors"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/guard"
)

var ErrReleaseHoldCommandIsNotConstructed = errors.New(
	"ReleaseHoldCommand must be created via NewReleaseHoldCommand constructor",
)

type ReleaseHoldCommand struct { //nolint:recvcheck //using for validation
	actor      branch.Actor
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReleaseHoldCommand(actor branch.Actor, shipmentID kernel.UUID) (ReleaseHoldCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate()); err != nil {
		return ReleaseHoldCommand{}, err
	}

	return ReleaseHoldCommand{
		actor:      actor,
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReleaseHoldCommand) Validate() error {
	return c.guard.Validate(ErrReleaseHoldCommandIsNotConstructed)
}

func (c ReleaseHoldCommand) Actor() branch.Actor     { return c.actor }
func (c ReleaseHoldCommand) ShipmentID() kernel.UUID { return c.shipmentID }
