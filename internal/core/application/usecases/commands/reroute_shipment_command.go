package commands

import (
	"errors"
	"strings"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/guard"
)

var ErrRerouteShipmentCommandIsNotConstructed = errors.New(
	"RerouteShipmentCommand must be created via NewRerouteShipmentCommand constructor",
)

// RerouteShipmentCommand sends a shipment to another destination branch.
// newDeadline replaces the expected delivery date when set; otherwise the
// current deadline is kept.
type RerouteShipmentCommand struct { //nolint:recvcheck //using for validation
	actor           branch.Actor
	shipmentID      kernel.UUID
	newDestBranchID kernel.UUID
	reason          string
	newDeadline     *time.Time

	guard guard.ConstructorGuard
}

func NewRerouteShipmentCommand(
	actor branch.Actor,
	shipmentID, newDestBranchID kernel.UUID,
	reason string,
	newDeadline *time.Time,
) (RerouteShipmentCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		shipmentID.Validate(),
		newDestBranchID.Validate(),
	); err != nil {
		return RerouteShipmentCommand{}, err
	}

	return RerouteShipmentCommand{
		actor:           actor,
		shipmentID:      shipmentID,
		newDestBranchID: newDestBranchID,
		reason:          strings.TrimSpace(reason),
		newDeadline:     newDeadline,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c RerouteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrRerouteShipmentCommandIsNotConstructed)
}

func (c RerouteShipmentCommand) Actor() branch.Actor          { return c.actor }
func (c RerouteShipmentCommand) ShipmentID() kernel.UUID      { return c.shipmentID }
func (c RerouteShipmentCommand) NewDestBranchID() kernel.UUID { return c.newDestBranchID }
func (c RerouteShipmentCommand) Reason() string               { return c.reason }
func (c RerouteShipmentCommand) NewDeadline() *time.Time      { return c.newDeadline }
