package memberrepo

import (
	"context"
	"errors"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBranchDirectory implements ports.BranchDirectory using GORM.
type GormBranchDirectory struct {
	db *gorm.DB
}

func NewGormBranchDirectory(db *gorm.DB) *GormBranchDirectory {
	return &GormBranchDirectory{db: db}
}

// HasCapability is true when the actor holds capability on the branch or a
// capability that implies it.
func (r *GormBranchDirectory) HasCapability(
	ctx context.Context,
	actorID, branchID kernel.UUID,
	capability branch.Capability,
) (bool, error) {
	if err := errors.Join(actorID.Validate(), branchID.Validate(), capability.Validate()); err != nil {
		return false, err
	}

	var held []string
	err := r.db.WithContext(ctx).
		Model(&MembershipDTO{}).
		Where("actor_id = ? AND branch_id = ?", actorID.Bytes(), branchID.Bytes()).
		Pluck("capability", &held).Error
	if err != nil {
		return false, err
	}

	for _, raw := range held {
		c, parseErr := branch.ParseCapability(raw)
		if parseErr != nil {
			continue
		}
		if c.Satisfies(capability) {
			return true, nil
		}
	}
	return false, nil
}

// Grant records a membership. Granting twice is a no-op.
func (r *GormBranchDirectory) Grant(
	ctx context.Context,
	actorID, branchID kernel.UUID,
	capability branch.Capability,
) error {
	if err := errors.Join(actorID.Validate(), branchID.Validate(), capability.Validate()); err != nil {
		return err
	}

	dto := MembershipDTO{
		ActorID:    actorID.Bytes(),
		BranchID:   branchID.Bytes(),
		Capability: capability.String(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
}
