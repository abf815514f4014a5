package ports

import (
	"context"
	"time"

	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/kernel"
)

type HandoffRepository interface {
	// Add fails with handoff.ErrDuplicateHandoffRequest when the shipment
	// already has a PENDING or APPROVED handoff.
	Add(ctx context.Context, aggregate *handoff.Handoff) error

	// Update is conditioned on the status observed at read time and fails
	// with errs.ErrConcurrencyConflict otherwise.
	Update(ctx context.Context, aggregate *handoff.Handoff) error

	Get(ctx context.Context, id kernel.UUID) (*handoff.Handoff, error)

	HasOpenForShipment(ctx context.Context, shipmentID kernel.UUID) (bool, error)

	// ListOverdueApproved returns APPROVED handoffs whose expected hand-off
	// time is before now. Unrestorable rows are reported per row, as in
	// ShipmentRepository.ListOpenWithDeadline.
	ListOverdueApproved(ctx context.Context, now time.Time) ([]*handoff.Handoff, []error, error)
}
