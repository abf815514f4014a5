package handoffrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormHandoffRepository implements ports.HandoffRepository using GORM.
type GormHandoffRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormHandoffRepository(db *gorm.DB, tracker aggregateTracker) *GormHandoffRepository {
	return &GormHandoffRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add maps a violation of the open-handoff index to
// handoff.ErrDuplicateHandoffRequest, which covers two requests racing past
// HasOpenForShipment.
func (r *GormHandoffRepository) Add(ctx context.Context, aggregate *handoff.Handoff) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == OpenHandoffIndex {
			return fmt.Errorf("%w: shipment %s", handoff.ErrDuplicateHandoffRequest, aggregate.ShipmentID())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormHandoffRepository) Update(ctx context.Context, aggregate *handoff.Handoff) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&HandoffDTO{}).
		Where("id = ? AND status = ?", dto.ID, aggregate.ObservedStatus().String()).
		Updates(map[string]any{
			"status":           dto.Status,
			"approved_by":      dto.ApprovedBy,
			"approved_at":      dto.ApprovedAt,
			"rejected_by":      dto.RejectedBy,
			"rejected_at":      dto.RejectedAt,
			"rejection_reason": dto.RejectionReason,
			"completed_at":     dto.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, aggregate.ID()); err != nil {
			return err
		}
		return errs.NewConcurrencyConflictError("handoff", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormHandoffRepository) Get(ctx context.Context, id kernel.UUID) (*handoff.Handoff, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HandoffDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("handoff", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormHandoffRepository) HasOpenForShipment(ctx context.Context, shipmentID kernel.UUID) (bool, error) {
	if err := shipmentID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&HandoffDTO{}).
		Where("shipment_id = ? AND status = ANY(?)", shipmentID.Bytes(), pq.Array(openStatuses())).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormHandoffRepository) ListOverdueApproved(ctx context.Context, now time.Time) ([]*handoff.Handoff, []error, error) {
	var dtos []HandoffDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND expected_hand_off_at < ?", handoff.Approved.String(), now.UTC()).
		Order("expected_hand_off_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, nil, err
	}

	var (
		handoffs = make([]*handoff.Handoff, 0, len(dtos))
		failures []error
	)
	for _, dto := range dtos {
		h, err := toDomain(dto)
		if err != nil {
			failures = append(failures, fmt.Errorf("handoff %s: %w", dto.ID, err))
			continue
		}
		handoffs = append(handoffs, h)
	}
	return handoffs, failures, nil
}

func openStatuses() []string {
	open := handoff.OpenStatuses()
	codes := make([]string, 0, len(open))
	for _, s := range open {
		codes = append(codes, s.String())
	}
	return codes
}
