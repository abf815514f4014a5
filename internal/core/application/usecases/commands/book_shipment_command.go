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

var ErrBookShipmentCommandIsNotConstructed = errors.New(
	"BookShipmentCommand must be created via NewBookShipmentCommand constructor",
)

// BookShipmentCommand registers a new shipment at the actor's branch, which
// becomes its origin.
//
// Example:
//
//	cmd, err := NewBookShipmentCommand(actor, kernel.NewUUID(), "TRK-1042", destID, &deadline, 0, time.Now())
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type BookShipmentCommand struct { //nolint:recvcheck //using for validation
	actor                branch.Actor
	shipmentID           kernel.UUID
	trackingNumber       string
	destBranchID         kernel.UUID
	expectedDeliveryDate *time.Time
	codAmount            int64
	bookedAt             time.Time

	guard guard.ConstructorGuard
}

func NewBookShipmentCommand(
	actor branch.Actor,
	shipmentID kernel.UUID,
	trackingNumber string,
	destBranchID kernel.UUID,
	expectedDeliveryDate *time.Time,
	codAmount int64,
	bookedAt time.Time,
) (BookShipmentCommand, error) {
	cmd := BookShipmentCommand{
		expectedDeliveryDate: expectedDeliveryDate,
		codAmount:            codAmount,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setShipmentID(shipmentID),
		cmd.setTrackingNumber(trackingNumber),
		cmd.setDestBranchID(destBranchID),
		cmd.setBookedAt(bookedAt),
	); err != nil {
		return BookShipmentCommand{}, err
	}

	return cmd, nil
}

func (c BookShipmentCommand) Validate() error {
	return c.guard.Validate(ErrBookShipmentCommandIsNotConstructed)
}

func (c BookShipmentCommand) Actor() branch.Actor              { return c.actor }
func (c BookShipmentCommand) ShipmentID() kernel.UUID          { return c.shipmentID }
func (c BookShipmentCommand) TrackingNumber() string           { return c.trackingNumber }
func (c BookShipmentCommand) DestBranchID() kernel.UUID        { return c.destBranchID }
func (c BookShipmentCommand) ExpectedDeliveryDate() *time.Time { return c.expectedDeliveryDate }
func (c BookShipmentCommand) CODAmount() int64                 { return c.codAmount }
func (c BookShipmentCommand) BookedAt() time.Time              { return c.bookedAt }

func (c *BookShipmentCommand) setActor(actor branch.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *BookShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.shipmentID = id
	return nil
}

func (c *BookShipmentCommand) setTrackingNumber(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}

	c.trackingNumber = trackingNumber
	return nil
}

func (c *BookShipmentCommand) setDestBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.destBranchID = id
	return nil
}

func (c *BookShipmentCommand) setBookedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("booked at")
	}

	c.bookedAt = at
	return nil
}
