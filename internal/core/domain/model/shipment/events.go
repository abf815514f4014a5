package shipment

import (
	"time"

	"courierops/internal/core/domain/model/kernel"
)

const (
	EventShipmentScanned       = "shipment.scanned"
	EventShipmentStatusChanged = "shipment.status_changed"
)

// StatusChanged is raised for every accepted status change and handed to
// the event publisher after commit.
type StatusChanged struct {
	ShipmentID     kernel.UUID
	TrackingNumber string
	From           Status
	To             Status
	ActorID        kernel.UUID
	BranchID       kernel.UUID
	Trigger        Trigger
	ScanMode       ScanMode
	At             time.Time
}

func (e StatusChanged) EventName() string {
	if e.Trigger == TriggerScan {
		return EventShipmentScanned
	}
	return EventShipmentStatusChanged
}

func (e StatusChanged) AggregateID() kernel.UUID {
	return e.ShipmentID
}

func (e StatusChanged) OccurredAt() time.Time {
	return e.At
}
