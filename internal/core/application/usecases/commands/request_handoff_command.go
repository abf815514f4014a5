package commands

import (
	"errors"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"
	"courierops/internal/pkg/guard"
)

var ErrRequestHandoffCommandIsNotConstructed = errors.New(
	"RequestHandoffCommand must be created via NewRequestHandoffCommand constructor",
)

// RequestHandoffCommand asks destBranchID to take custody of a shipment by
// expectedHandOffAt. The actor's branch is the handoff origin.
type RequestHandoffCommand struct { //nolint:recvcheck //using for validation
	actor             branch.Actor
	shipmentID        kernel.UUID
	destBranchID      kernel.UUID
	expectedHandOffAt time.Time
	requestedAt       time.Time

	guard guard.ConstructorGuard
}

func NewRequestHandoffCommand(
	actor branch.Actor,
	shipmentID, destBranchID kernel.UUID,
	expectedHandOffAt, requestedAt time.Time,
) (RequestHandoffCommand, error) {
	var timeErr error
	if expectedHandOffAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("expected hand-off time")
	}
	if requestedAt.IsZero() {
		timeErr = errors.Join(timeErr, errs.NewValueIsRequiredError("requested at"))
	}

	if err := errors.Join(
		actor.Validate(),
		shipmentID.Validate(),
		destBranchID.Validate(),
		timeErr,
	); err != nil {
		return RequestHandoffCommand{}, err
	}

	return RequestHandoffCommand{
		actor:             actor,
		shipmentID:        shipmentID,
		destBranchID:      destBranchID,
		expectedHandOffAt: expectedHandOffAt,
		requestedAt:       requestedAt,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c RequestHandoffCommand) Validate() error {
	return c.guard.Validate(ErrRequestHandoffCommandIsNotConstructed)
}

func (c RequestHandoffCommand) Actor() branch.Actor          { return c.actor }
func (c RequestHandoffCommand) ShipmentID() kernel.UUID      { return c.shipmentID }
func (c RequestHandoffCommand) DestBranchID() kernel.UUID    { return c.destBranchID }
func (c RequestHandoffCommand) ExpectedHandOffAt() time.Time { return c.expectedHandOffAt }
func (c RequestHandoffCommand) RequestedAt() time.Time       { return c.requestedAt }
