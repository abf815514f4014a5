package queries

import (
	"context"
	"strings"

	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListBranchHandoffsQueryHandler reads branch_handoffs joined with the
// shipment's tracking number.
type ListBranchHandoffsQueryHandler struct {
	db       *gorm.DB
	branches ports.BranchDirectory
}

func NewListBranchHandoffsQueryHandler(db *gorm.DB, branches ports.BranchDirectory) ListBranchHandoffsQueryHandler {
	return ListBranchHandoffsQueryHandler{db: db, branches: branches}
}

// Handle returns lines ordered by expected hand-off time, then id.
func (h ListBranchHandoffsQueryHandler) Handle(
	ctx context.Context,
	query ListBranchHandoffsQuery,
) ([]HandoffManifestLine, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeRead(ctx, h.branches, query.actor, query.branchID); err != nil {
		return nil, err
	}

	branchID := query.branchID.Bytes()
	where := make([]string, 0, 2)
	args := make([]any, 0, 3)

	switch query.direction {
	case handoff.DirectionInbound:
		where = append(where, "h.dest_branch_id = ?")
		args = append(args, branchID)
	case handoff.DirectionOutbound:
		where = append(where, "h.origin_branch_id = ?")
		args = append(args, branchID)
	default:
		where = append(where, "(h.origin_branch_id = ? OR h.dest_branch_id = ?)")
		args = append(args, branchID, branchID)
	}
	if query.status != nil {
		where = append(where, "h.status = ?")
		args = append(args, query.status.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			h.id,
			h.shipment_id,
			s.tracking_number,
			h.origin_branch_id,
			h.dest_branch_id,
			h.status,
			h.requested_by,
			h.approved_by,
			h.expected_hand_off_at
		FROM branch_handoffs h
		JOIN shipments s ON s.id = h.shipment_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY h.expected_hand_off_at, h.id
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]HandoffManifestLine, 0)
	for rows.Next() {
		var line HandoffManifestLine
		var id, shipmentID, origin, dest, requestedBy uuid.UUID
		var approvedBy uuid.NullUUID
		var status string

		err = rows.Scan(
			&id,
			&shipmentID,
			&line.TrackingNumber,
			&origin,
			&dest,
			&status,
			&requestedBy,
			&approvedBy,
			&line.ExpectedHandOffAt,
		)
		if err != nil {
			return nil, err
		}

		if line.Status, err = handoff.ParseStatus(status); err != nil {
			return nil, err
		}
		ids := []*kernel.UUID{&line.ID, &line.ShipmentID, &line.OriginBranchID, &line.DestBranchID, &line.RequestedBy}
		for i, raw := range []uuid.UUID{id, shipmentID, origin, dest, requestedBy} {
			if *ids[i], err = kernel.UUIDFromBytes(raw[:]); err != nil {
				return nil, err
			}
		}
		if approvedBy.Valid {
			approver, idErr := kernel.UUIDFromBytes(approvedBy.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			line.ApprovedBy = &approver
		}

		line.Direction = handoff.DirectionOutbound
		if line.DestBranchID.IsEqual(query.branchID) {
			line.Direction = handoff.DirectionInbound
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
