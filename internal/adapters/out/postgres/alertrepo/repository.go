package alertrepo

import (
	"context"
	"errors"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAlertRepository implements ports.AlertRepository using GORM.
type GormAlertRepository struct {
	db *gorm.DB
}

func NewGormAlertRepository(db *gorm.DB) *GormAlertRepository {
	return &GormAlertRepository{db: db}
}

// AddIfAbsent inserts with ON CONFLICT DO NOTHING against the open-alert
// index. Zero affected rows means an OPEN alert for the same subject exists.
func (r *GormAlertRepository) AddIfAbsent(ctx context.Context, aggregate *alert.Alert) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "branch_id"}, {Name: "alert_type"}, {Name: "dedupe_key"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: clause.Column{Name: "status"}, Value: string(alert.StatusOpen)},
			}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *GormAlertRepository) Update(ctx context.Context, aggregate *alert.Alert) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AlertDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"severity":    dto.Severity,
			"status":      dto.Status,
			"message":     dto.Message,
			"resolved_at": dto.ResolvedAt,
			"resolved_by": dto.ResolvedBy,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("alert", aggregate.ID().String())
	}
	return nil
}

func (r *GormAlertRepository) Get(ctx context.Context, id kernel.UUID) (*alert.Alert, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AlertDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("alert", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAlertRepository) FindOpen(
	ctx context.Context,
	branchID kernel.UUID,
	alertType alert.Type,
	dedupeKey string,
) (*alert.Alert, error) {
	var dto AlertDTO
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND alert_type = ? AND dedupe_key = ? AND status = ?",
			branchID.Bytes(), string(alertType), dedupeKey, string(alert.StatusOpen)).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("alert", dedupeKey)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAlertRepository) ListOpenByBranch(
	ctx context.Context,
	branchID kernel.UUID,
	alertType alert.Type,
) ([]*alert.Alert, error) {
	var dtos []AlertDTO
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND alert_type = ? AND status = ?", branchID.Bytes(), string(alertType), string(alert.StatusOpen)).
		Order("triggered_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	alerts := make([]*alert.Alert, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}
