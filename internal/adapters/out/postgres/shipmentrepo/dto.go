// Package shipmentrepo persists Shipment aggregates in the shipments table.
// Updates are conditioned on the version and status read with the aggregate.
package shipmentrepo

import (
	"time"

	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ShipmentDTO is a row of the shipments table. Stage times are stored as a
// JSON object keyed by status code.
type ShipmentDTO struct {
	ID                   uuid.UUID                                `gorm:"type:uuid;primaryKey"`
	TrackingNumber       string                                   `gorm:"size:64;not null;uniqueIndex"`
	OriginBranchID       uuid.UUID                                `gorm:"type:uuid;not null;index"`
	DestBranchID         uuid.UUID                                `gorm:"type:uuid;not null;index"`
	CurrentStatus        string                                   `gorm:"size:32;not null;index"`
	StageTimes           datatypes.JSONType[map[string]time.Time] `gorm:"type:jsonb;not null"`
	StatusChangedAt      time.Time                                `gorm:"not null"`
	AssignedWorkerID     *uuid.UUID                               `gorm:"type:uuid;index"`
	ExpectedDeliveryDate *time.Time                               `gorm:"index"`
	HeldAt               *time.Time
	HoldReason           string     `gorm:"size:500"`
	ReroutedFromBranchID *uuid.UUID `gorm:"type:uuid"`
	ReroutedBy           *uuid.UUID `gorm:"type:uuid"`
	RerouteReason        string     `gorm:"size:500"`
	HasException         bool       `gorm:"not null;default:false"`
	CODAmount            int64      `gorm:"column:cod_amount;not null;default:0"`
	CODCollected         bool       `gorm:"column:cod_collected;not null;default:false"`
	Version              int64      `gorm:"not null;default:1"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	snap := s.Snapshot()

	stages := make(map[string]time.Time, len(snap.StageTimes))
	for st, at := range snap.StageTimes {
		stages[st.String()] = at.UTC()
	}

	return ShipmentDTO{
		ID:                   snap.ID.Bytes(),
		TrackingNumber:       snap.TrackingNumber,
		OriginBranchID:       snap.OriginBranchID.Bytes(),
		DestBranchID:         snap.DestBranchID.Bytes(),
		CurrentStatus:        snap.Status.String(),
		StageTimes:           datatypes.NewJSONType(stages),
		StatusChangedAt:      snap.StatusChangedAt.UTC(),
		AssignedWorkerID:     optionalID(snap.AssignedWorkerID),
		ExpectedDeliveryDate: snap.ExpectedDeliveryDate,
		HeldAt:               snap.HeldAt,
		HoldReason:           snap.HoldReason,
		ReroutedFromBranchID: optionalID(snap.ReroutedFromBranchID),
		ReroutedBy:           optionalID(snap.ReroutedBy),
		RerouteReason:        snap.RerouteReason,
		HasException:         snap.HasException,
		CODAmount:            snap.CODAmount,
		CODCollected:         snap.CODCollected,
		Version:              snap.Version,
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	status, err := shipment.ParseStatus(dto.CurrentStatus)
	if err != nil {
		return nil, err
	}

	stages := make(map[shipment.Status]time.Time, len(dto.StageTimes.Data()))
	for code, at := range dto.StageTimes.Data() {
		st, parseErr := shipment.ParseStatus(code)
		if parseErr != nil {
			return nil, parseErr
		}
		stages[st] = at
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	origin, err := kernel.UUIDFromBytes(dto.OriginBranchID[:])
	if err != nil {
		return nil, err
	}
	dest, err := kernel.UUIDFromBytes(dto.DestBranchID[:])
	if err != nil {
		return nil, err
	}
	workerID, err := restoreID(dto.AssignedWorkerID)
	if err != nil {
		return nil, err
	}
	reroutedFrom, err := restoreID(dto.ReroutedFromBranchID)
	if err != nil {
		return nil, err
	}
	reroutedBy, err := restoreID(dto.ReroutedBy)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(shipment.Snapshot{
		ID:                   id,
		TrackingNumber:       dto.TrackingNumber,
		OriginBranchID:       origin,
		DestBranchID:         dest,
		Status:               status,
		StageTimes:           stages,
		StatusChangedAt:      dto.StatusChangedAt,
		AssignedWorkerID:     workerID,
		ExpectedDeliveryDate: dto.ExpectedDeliveryDate,
		HeldAt:               dto.HeldAt,
		HoldReason:           dto.HoldReason,
		ReroutedFromBranchID: reroutedFrom,
		ReroutedBy:           reroutedBy,
		RerouteReason:        dto.RerouteReason,
		HasException:         dto.HasException,
		CODAmount:            dto.CODAmount,
		CODCollected:         dto.CODCollected,
		Version:              dto.Version,
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
