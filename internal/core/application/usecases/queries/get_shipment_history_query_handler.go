package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetShipmentHistoryQueryHandler struct {
	db       *gorm.DB
	branches ports.BranchDirectory
}

func NewGetShipmentHistoryQueryHandler(db *gorm.DB, branches ports.BranchDirectory) GetShipmentHistoryQueryHandler {
	return GetShipmentHistoryQueryHandler{db: db, branches: branches}
}

// Handle returns both journals oldest first. It fails with
// shipment.ErrShipmentNotFound for an unknown id and with
// branch.ErrUnauthorizedBranchActor when the actor's branch is not a party.
func (h GetShipmentHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentHistoryQuery,
) (*ShipmentHistory, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history, err := h.header(ctx, query.shipmentID)
	if err != nil {
		return nil, err
	}
	if !query.actor.BelongsTo(history.OriginBranchID) && !query.actor.BelongsTo(history.DestBranchID) {
		return nil, branch.ErrUnauthorizedBranchActor
	}
	if err = authorizeRead(ctx, h.branches, query.actor, query.actor.BranchID()); err != nil {
		return nil, err
	}

	if history.Scans, err = h.scans(ctx, query.shipmentID); err != nil {
		return nil, err
	}
	if history.Transitions, err = h.transitions(ctx, query.shipmentID); err != nil {
		return nil, err
	}
	return history, nil
}

func (h GetShipmentHistoryQueryHandler) header(ctx context.Context, shipmentID kernel.UUID) (*ShipmentHistory, error) {
	var origin, dest uuid.UUID
	var status string
	history := &ShipmentHistory{ShipmentID: shipmentID}

	err := h.db.WithContext(ctx).Raw(`
		SELECT tracking_number, origin_branch_id, dest_branch_id, current_status
		FROM shipments
		WHERE id = ?
	`, shipmentID.Bytes()).Row().Scan(&history.TrackingNumber, &origin, &dest, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shipment.ErrShipmentNotFound, shipmentID)
	}
	if err != nil {
		return nil, err
	}

	if history.Status, err = shipment.ParseStatus(status); err != nil {
		return nil, err
	}
	if history.OriginBranchID, err = kernel.UUIDFromBytes(origin[:]); err != nil {
		return nil, err
	}
	if history.DestBranchID, err = kernel.UUIDFromBytes(dest[:]); err != nil {
		return nil, err
	}
	return history, nil
}

func (h GetShipmentHistoryQueryHandler) scans(ctx context.Context, shipmentID kernel.UUID) ([]ScanRecord, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, scan_mode, branch_id, actor_id, scanned_at, latitude, longitude, notes
		FROM scan_events
		WHERE shipment_id = ?
		ORDER BY scanned_at, id
	`, shipmentID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]ScanRecord, 0)
	for rows.Next() {
		var rec ScanRecord
		var id, branchID, actorID uuid.UUID
		var mode string

		err = rows.Scan(&id, &mode, &branchID, &actorID, &rec.ScannedAt, &rec.Latitude, &rec.Longitude, &rec.Notes)
		if err != nil {
			return nil, err
		}

		if rec.Mode, err = shipment.ParseScanMode(mode); err != nil {
			return nil, err
		}
		if rec.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if rec.BranchID, err = kernel.UUIDFromBytes(branchID[:]); err != nil {
			return nil, err
		}
		if rec.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (h GetShipmentHistoryQueryHandler) transitions(ctx context.Context, shipmentID kernel.UUID) ([]TransitionRecord, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, from_status, to_status, actor_id, "trigger", occurred_at
		FROM shipment_transitions
		WHERE shipment_id = ?
		ORDER BY occurred_at, id
	`, shipmentID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]TransitionRecord, 0)
	for rows.Next() {
		var rec TransitionRecord
		var id, actorID uuid.UUID
		var from, to, trigger string

		if err = rows.Scan(&id, &from, &to, &actorID, &trigger, &rec.OccurredAt); err != nil {
			return nil, err
		}

		if rec.From, err = shipment.ParseStatus(from); err != nil {
			return nil, err
		}
		if rec.To, err = shipment.ParseStatus(to); err != nil {
			return nil, err
		}
		if rec.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if rec.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}
		rec.Trigger = shipment.Trigger(trigger)
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
