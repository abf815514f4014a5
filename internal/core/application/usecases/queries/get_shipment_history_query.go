package queries

import (
	"errors"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/pkg/guard"
)

var ErrGetShipmentHistoryQueryIsNotConstructed = errors.New(
	"GetShipmentHistoryQuery must be created via NewGetShipmentHistoryQuery constructor",
)

// GetShipmentHistoryQuery reads a shipment's scan and transition journals.
// Either party branch may read it.
type GetShipmentHistoryQuery struct {
	actor      branch.Actor
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShipmentHistoryQuery(actor branch.Actor, shipmentID kernel.UUID) (GetShipmentHistoryQuery, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate()); err != nil {
		return GetShipmentHistoryQuery{}, err
	}

	return GetShipmentHistoryQuery{
		actor:      actor,
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetShipmentHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentHistoryQueryIsNotConstructed)
}

type ShipmentHistory struct {
	ShipmentID     kernel.UUID
	TrackingNumber string
	OriginBranchID kernel.UUID
	DestBranchID   kernel.UUID
	Status         shipment.Status
	Scans          []ScanRecord
	Transitions    []TransitionRecord
}

type ScanRecord struct {
	ID        kernel.UUID
	Mode      shipment.ScanMode
	BranchID  kernel.UUID
	ActorID   kernel.UUID
	ScannedAt time.Time
	Latitude  *float64
	Longitude *float64
	Notes     string
}

type TransitionRecord struct {
	ID         kernel.UUID
	From       shipment.Status
	To         shipment.Status
	ActorID    kernel.UUID
	Trigger    shipment.Trigger
	OccurredAt time.Time
}
