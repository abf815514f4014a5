// Package handoffrepo persists BranchHandoff aggregates. A partial unique
// index on shipment_id over PENDING and APPROVED rows keeps at most one open
// handoff per shipment.
package handoffrepo

import (
	"time"

	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// OpenHandoffIndex is the partial unique index created by the migrations.
const OpenHandoffIndex = "ux_branch_handoffs_open_shipment"

type HandoffDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShipmentID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	OriginBranchID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	DestBranchID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status            string     `gorm:"size:16;not null;index"`
	RequestedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	RequestedAt       time.Time  `gorm:"not null"`
	ExpectedHandOffAt time.Time  `gorm:"column:expected_hand_off_at;not null;index"`
	ApprovedBy        *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt        *time.Time
	RejectedBy        *uuid.UUID `gorm:"type:uuid"`
	RejectedAt        *time.Time
	RejectionReason   string `gorm:"size:500"`
	CompletedAt       *time.Time
}

func (HandoffDTO) TableName() string {
	return "branch_handoffs"
}

func fromDomain(h *handoff.Handoff) HandoffDTO {
	snap := h.Snapshot()
	return HandoffDTO{
		ID:                snap.ID.Bytes(),
		ShipmentID:        snap.ShipmentID.Bytes(),
		OriginBranchID:    snap.OriginBranchID.Bytes(),
		DestBranchID:      snap.DestBranchID.Bytes(),
		Status:            snap.Status.String(),
		RequestedBy:       snap.RequestedBy.Bytes(),
		RequestedAt:       snap.RequestedAt.UTC(),
		ExpectedHandOffAt: snap.ExpectedHandOffAt.UTC(),
		ApprovedBy:        optionalID(snap.ApprovedBy),
		ApprovedAt:        snap.ApprovedAt,
		RejectedBy:        optionalID(snap.RejectedBy),
		RejectedAt:        snap.RejectedAt,
		RejectionReason:   snap.RejectionReason,
		CompletedAt:       snap.CompletedAt,
	}
}

func toDomain(dto HandoffDTO) (*handoff.Handoff, error) {
	status, err := handoff.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var ids [5]kernel.UUID
	for i, raw := range []uuid.UUID{dto.ID, dto.ShipmentID, dto.OriginBranchID, dto.DestBranchID, dto.RequestedBy} {
		if ids[i], err = kernel.UUIDFromBytes(raw[:]); err != nil {
			return nil, err
		}
	}
	approvedBy, err := restoreID(dto.ApprovedBy)
	if err != nil {
		return nil, err
	}
	rejectedBy, err := restoreID(dto.RejectedBy)
	if err != nil {
		return nil, err
	}

	return handoff.RestoreHandoff(handoff.Snapshot{
		ID:                ids[0],
		ShipmentID:        ids[1],
		OriginBranchID:    ids[2],
		DestBranchID:      ids[3],
		Status:            status,
		RequestedBy:       ids[4],
		RequestedAt:       dto.RequestedAt,
		ExpectedHandOffAt: dto.ExpectedHandOffAt,
		ApprovedBy:        approvedBy,
		ApprovedAt:        dto.ApprovedAt,
		RejectedBy:        rejectedBy,
		RejectedAt:        dto.RejectedAt,
		RejectionReason:   dto.RejectionReason,
		CompletedAt:       dto.CompletedAt,
	})
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
