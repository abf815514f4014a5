package journalrepo

import (
	"context"

	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// GormJournalRepository implements ports.JournalRepository using GORM.
type GormJournalRepository struct {
	db *gorm.DB
}

func NewGormJournalRepository(db *gorm.DB) *GormJournalRepository {
	return &GormJournalRepository{db: db}
}

func (r *GormJournalRepository) AppendScan(ctx context.Context, scan *shipment.ScanEvent) error {
	dto := scanFromDomain(scan)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormJournalRepository) AppendTransition(ctx context.Context, transition *shipment.Transition) error {
	dto := transitionFromDomain(transition)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListScans returns the shipment's scans oldest first.
func (r *GormJournalRepository) ListScans(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.ScanEvent, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ScanEventDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("scanned_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	scans := make([]*shipment.ScanEvent, 0, len(dtos))
	for _, dto := range dtos {
		scan, err := scanToDomain(dto)
		if err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}
	return scans, nil
}

// ListTransitions returns the shipment's transitions oldest first.
func (r *GormJournalRepository) ListTransitions(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.Transition, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransitionDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("occurred_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	transitions := make([]*shipment.Transition, 0, len(dtos))
	for _, dto := range dtos {
		tr, err := transitionToDomain(dto)
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, tr)
	}
	return transitions, nil
}
