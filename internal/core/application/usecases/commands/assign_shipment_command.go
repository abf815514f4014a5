package commands

import (
	"errors"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"
	"courierops/internal/pkg/guard"
)

var ErrAssignShipmentCommandIsNotConstructed = errors.New(
	"AssignShipmentCommand must be created via NewAssignShipmentCommand constructor",
)

// AssignShipmentCommand binds a shipment to a worker. Without a worker id the
// least loaded available worker of the origin branch is chosen.
type AssignShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      branch.Actor
	shipmentID kernel.UUID
	workerID   *kernel.UUID
	assignedAt time.Time

	guard guard.ConstructorGuard
}

func NewAssignShipmentCommand(
	actor branch.Actor,
	shipmentID kernel.UUID,
	workerID *kernel.UUID,
	assignedAt time.Time,
) (AssignShipmentCommand, error) {
	cmd := AssignShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setShipmentID(shipmentID),
		cmd.setWorkerID(workerID),
		cmd.setAssignedAt(assignedAt),
	); err != nil {
		return AssignShipmentCommand{}, err
	}

	return cmd, nil
}

func (c AssignShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAssignShipmentCommandIsNotConstructed)
}

func (c AssignShipmentCommand) Actor() branch.Actor     { return c.actor }
func (c AssignShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c AssignShipmentCommand) AssignedAt() time.Time   { return c.assignedAt }

// WorkerID is nil for automatic assignment.
func (c AssignShipmentCommand) WorkerID() *kernel.UUID {
	return c.workerID
}

func (c *AssignShipmentCommand) setActor(actor branch.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AssignShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.shipmentID = id
	return nil
}

func (c *AssignShipmentCommand) setWorkerID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}

	c.workerID = id
	return nil
}

func (c *AssignShipmentCommand) setAssignedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("assigned at")
	}

	c.assignedAt = at
	return nil
}
