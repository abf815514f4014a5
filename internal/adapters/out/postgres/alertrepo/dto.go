// Package alertrepo persists BranchAlert aggregates. At most one OPEN alert
// exists per (branch_id, alert_type, dedupe_key); a partial unique index
// enforces it and AddIfAbsent relies on it.
package alertrepo

import (
	"time"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OpenAlertIndex is the partial unique index created by the migrations.
const OpenAlertIndex = "ux_branch_alerts_open_subject"

type AlertDTO struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	BranchID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_branch_alerts_branch_status,priority:1"`
	AlertType   string            `gorm:"size:32;not null"`
	Severity    string            `gorm:"size:16;not null"`
	Status      string            `gorm:"size:16;not null;index:idx_branch_alerts_branch_status,priority:2"`
	Context     datatypes.JSONMap `gorm:"type:jsonb;not null"`
	DedupeKey   string            `gorm:"size:128;not null"`
	Message     string            `gorm:"size:500"`
	RaisedBy    *uuid.UUID        `gorm:"type:uuid"`
	TriggeredAt time.Time         `gorm:"not null"`
	ResolvedAt  *time.Time
	ResolvedBy  *uuid.UUID `gorm:"type:uuid"`
}

func (AlertDTO) TableName() string {
	return "branch_alerts"
}

func fromDomain(a *alert.Alert) AlertDTO {
	snap := a.Snapshot()
	return AlertDTO{
		ID:          snap.ID.Bytes(),
		BranchID:    snap.BranchID.Bytes(),
		AlertType:   string(snap.Type),
		Severity:    string(snap.Severity),
		Status:      string(snap.Status),
		Context:     datatypes.JSONMap(snap.Context),
		DedupeKey:   snap.DedupeKey,
		Message:     snap.Message,
		RaisedBy:    optionalID(snap.RaisedBy),
		TriggeredAt: snap.TriggeredAt.UTC(),
		ResolvedAt:  snap.ResolvedAt,
		ResolvedBy:  optionalID(snap.ResolvedBy),
	}
}

func toDomain(dto AlertDTO) (*alert.Alert, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}
	raisedBy, err := restoreID(dto.RaisedBy)
	if err != nil {
		return nil, err
	}
	resolvedBy, err := restoreID(dto.ResolvedBy)
	if err != nil {
		return nil, err
	}

	return alert.RestoreAlert(alert.Snapshot{
		ID:          id,
		BranchID:    branchID,
		Type:        alert.Type(dto.AlertType),
		Severity:    alert.Severity(dto.Severity),
		Status:      alert.Status(dto.Status),
		Context:     alert.Context(dto.Context),
		DedupeKey:   dto.DedupeKey,
		Message:     dto.Message,
		RaisedBy:    raisedBy,
		TriggeredAt: dto.TriggeredAt,
		ResolvedAt:  dto.ResolvedAt,
		ResolvedBy:  resolvedBy,
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
