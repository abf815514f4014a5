package commands

import (
	"errors"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"
	"courierops/internal/pkg/guard"
)

var ErrReportExceptionCommandIsNotConstructed = errors.New(
	"ReportExceptionCommand must be created via NewReportExceptionCommand constructor",
)

// ReportExceptionCommand moves a shipment to EXCEPTION. Either branch on the
// shipment may report it.
type ReportExceptionCommand struct { //nolint:recvcheck //using for validation
	actor      branch.Actor
	shipmentID kernel.UUID
	reportedAt time.Time

	guard guard.ConstructorGuard
}

func NewReportExceptionCommand(actor branch.Actor, shipmentID kernel.UUID, reportedAt time.Time) (ReportExceptionCommand, error) {
	var atErr error
	if reportedAt.IsZero() {
		atErr = errs.NewValueIsRequiredError("reported at")
	}
	if err := errors.Join(actor.Validate(), shipmentID.Validate(), atErr); err != nil {
		return ReportExceptionCommand{}, err
	}

	return ReportExceptionCommand{
		actor:      actor,
		shipmentID: shipmentID,
		reportedAt: reportedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReportExceptionCommand) Validate() error {
	return c.guard.Validate(ErrReportExceptionCommandIsNotConstructed)
}

func (c ReportExceptionCommand) Actor() branch.Actor     { return c.actor }
func (c ReportExceptionCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c ReportExceptionCommand) ReportedAt() time.Time   { return c.reportedAt }
