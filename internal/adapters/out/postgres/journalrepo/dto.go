// Package journalrepo appends to scan_events and shipment_transitions. Both
// tables are insert-only.
package journalrepo

import (
	"time"

	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

type ScanEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index:idx_scan_events_shipment,priority:1"`
	ScanMode   string    `gorm:"size:16;not null"`
	BranchID   uuid.UUID `gorm:"type:uuid;not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	ScannedAt  time.Time `gorm:"not null;index:idx_scan_events_shipment,priority:2"`
	Latitude   *float64
	Longitude  *float64
	Notes      string `gorm:"size:1000"`
}

func (ScanEventDTO) TableName() string {
	return "scan_events"
}

type TransitionDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index:idx_shipment_transitions_shipment,priority:1"`
	FromStatus string    `gorm:"size:32;not null"`
	ToStatus   string    `gorm:"size:32;not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	Trigger    string    `gorm:"size:16;not null"`
	OccurredAt time.Time `gorm:"not null;index:idx_shipment_transitions_shipment,priority:2"`
}

func (TransitionDTO) TableName() string {
	return "shipment_transitions"
}

func scanFromDomain(e *shipment.ScanEvent) ScanEventDTO {
	dto := ScanEventDTO{
		ID:         e.ID().Bytes(),
		ShipmentID: e.ShipmentID().Bytes(),
		ScanMode:   e.Mode().String(),
		BranchID:   e.BranchID().Bytes(),
		ActorID:    e.ActorID().Bytes(),
		ScannedAt:  e.ScannedAt().UTC(),
		Notes:      e.Notes(),
	}
	if geo := e.Geo(); geo != nil {
		lat, lon := geo.Latitude(), geo.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}
	return dto
}

func scanToDomain(dto ScanEventDTO) (*shipment.ScanEvent, error) {
	mode, err := shipment.ParseScanMode(dto.ScanMode)
	if err != nil {
		return nil, err
	}
	ids, err := restoreIDs(dto.ID, dto.ShipmentID, dto.BranchID, dto.ActorID)
	if err != nil {
		return nil, err
	}

	var geo *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, geoErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if geoErr != nil {
			return nil, geoErr
		}
		geo = &point
	}

	return shipment.RestoreScanEvent(ids[0], ids[1], mode, ids[2], ids[3], dto.ScannedAt, geo, dto.Notes), nil
}

func transitionFromDomain(t *shipment.Transition) TransitionDTO {
	return TransitionDTO{
		ID:         t.ID().Bytes(),
		ShipmentID: t.ShipmentID().Bytes(),
		FromStatus: t.From().String(),
		ToStatus:   t.To().String(),
		ActorID:    t.ActorID().Bytes(),
		Trigger:    string(t.Trigger()),
		OccurredAt: t.OccurredAt().UTC(),
	}
}

func transitionToDomain(dto TransitionDTO) (*shipment.Transition, error) {
	from, err := shipment.ParseStatus(dto.FromStatus)
	if err != nil {
		return nil, err
	}
	to, err := shipment.ParseStatus(dto.ToStatus)
	if err != nil {
		return nil, err
	}
	ids, err := restoreIDs(dto.ID, dto.ShipmentID, dto.ActorID)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreTransition(ids[0], ids[1], from, to, ids[2], shipment.Trigger(dto.Trigger), dto.OccurredAt), nil
}

func restoreIDs(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
