package shipmentrepo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
//
// Rows written before the status vocabulary was unified may still hold a
// legacy token such as "pending". The raw value read for each row is kept so
// that Update compares against what is actually stored; the write itself
// always stores the canonical code.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker

	mu       sync.Mutex
	observed map[uuid.UUID]string
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:       db,
		tracker:  tracker,
		observed: make(map[uuid.UUID]string),
	}
}

func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if dto.Version == 0 {
		dto.Version = 1
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("tracking number", fmt.Errorf("%q is already booked", dto.TrackingNumber))
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update bumps the version. Nothing is written unless the stored version and
// status still equal the ones observed when the aggregate was read.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ? AND version = ? AND current_status = ?", dto.ID, aggregate.Version(), r.storedStatus(aggregate)).
		Updates(map[string]any{
			"dest_branch_id":          dto.DestBranchID,
			"current_status":          dto.CurrentStatus,
			"stage_times":             dto.StageTimes,
			"status_changed_at":       dto.StatusChangedAt,
			"assigned_worker_id":      dto.AssignedWorkerID,
			"expected_delivery_date":  dto.ExpectedDeliveryDate,
			"held_at":                 dto.HeldAt,
			"hold_reason":             dto.HoldReason,
			"rerouted_from_branch_id": dto.ReroutedFromBranchID,
			"rerouted_by":             dto.ReroutedBy,
			"reroute_reason":          dto.RerouteReason,
			"has_exception":           dto.HasException,
			"cod_collected":           dto.CODCollected,
			"version":                 gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: %s", shipment.ErrShipmentNotFound, aggregate.ID())
		}
		return errs.NewConcurrencyConflictError("shipment", aggregate.ID().String())
	}

	r.mu.Lock()
	r.observed[dto.ID] = dto.CurrentStatus
	r.mu.Unlock()

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

func (r *GormShipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	if trackingNumber == "" {
		return nil, errs.NewValueIsRequiredError("tracking number")
	}

	return r.first(ctx, trackingNumber, "tracking_number = ?", trackingNumber)
}

// ListOpenWithDeadline loads every row with a deadline whose status is not a
// terminal code. Legacy tokens are mapped before the terminal check, so rows
// are filtered in Go. A row that cannot be restored is reported in the
// second result and does not hide the others.
func (r *GormShipmentRepository) ListOpenWithDeadline(ctx context.Context) ([]*shipment.Shipment, []error, error) {
	terminal := make([]string, 0, len(shipment.TerminalStatuses()))
	for _, st := range shipment.TerminalStatuses() {
		terminal = append(terminal, st.String())
	}

	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Where("current_status <> ALL(?) AND expected_delivery_date IS NOT NULL", pq.Array(terminal)).
		Order("expected_delivery_date, id").
		Find(&dtos).Error
	if err != nil {
		return nil, nil, err
	}

	var (
		shipments = make([]*shipment.Shipment, 0, len(dtos))
		failures  []error
	)
	for _, dto := range dtos {
		s, err := r.restore(dto)
		if err != nil {
			failures = append(failures, fmt.Errorf("shipment %s: %w", dto.ID, err))
			continue
		}
		if s.Status().IsTerminal() {
			continue
		}
		shipments = append(shipments, s)
	}

	return shipments, failures, nil
}

func (r *GormShipmentRepository) first(ctx context.Context, key string, query string, args ...any) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", shipment.ErrShipmentNotFound, key)
		}
		return nil, err
	}

	return r.restore(dto)
}

func (r *GormShipmentRepository) restore(dto ShipmentDTO) (*shipment.Shipment, error) {
	s, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.observed[dto.ID] = dto.CurrentStatus
	r.mu.Unlock()
	return s, nil
}

// storedStatus is the raw status read with the aggregate, or its canonical
// code when the aggregate was not read through this repository.
func (r *GormShipmentRepository) storedStatus(aggregate *shipment.Shipment) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, ok := r.observed[aggregate.ID().Bytes()]
	if !ok {
		return aggregate.ObservedStatus().String()
	}
	if st, err := shipment.ParseStatus(raw); err != nil || st != aggregate.ObservedStatus() {
		return aggregate.ObservedStatus().String()
	}
	return raw
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
