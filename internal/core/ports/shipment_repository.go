// Package ports declares what the core needs from the outside world:
// repositories bound to a unit of work, the branch and workforce directories
// owned by other systems, an event publisher and a cross-process run lock.
package ports

import (
	"context"

	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
)

// ShipmentRepository persists Shipment aggregates.
type ShipmentRepository interface {
	// Add stores a newly booked shipment. A duplicate tracking number fails
	// with errs.ErrValueIsInvalid.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update writes the shipment only if the stored row still has the
	// version and status observed when it was read. Otherwise it fails with
	// errs.ErrConcurrencyConflict and writes nothing. Read and update in
	// the same unit of work.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get fails with shipment.ErrShipmentNotFound.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByTrackingNumber fails with shipment.ErrShipmentNotFound.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error)

	// ListOpenWithDeadline returns every non-terminal shipment that has an
	// expected delivery date, oldest deadline first. Rows that cannot be
	// restored are returned as per-row errors next to the rest; the last
	// result is reserved for failures of the query itself.
	ListOpenWithDeadline(ctx context.Context) ([]*shipment.Shipment, []error, error)
}

// JournalRepository appends to the scan and transition logs. Rows are never
// updated or deleted.
type JournalRepository interface {
	AppendScan(ctx context.Context, scan *shipment.ScanEvent) error
	AppendTransition(ctx context.Context, transition *shipment.Transition) error

	ListScans(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.ScanEvent, error)
	ListTransitions(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.Transition, error)
}
