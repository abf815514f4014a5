// Package memberrepo answers branch membership questions from the
// branch_memberships table, which the identity system keeps in sync.
package memberrepo

import (
	"github.com/google/uuid"
)

type MembershipDTO struct {
	ActorID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Capability string    `gorm:"size:32;primaryKey"`
}

func (MembershipDTO) TableName() string {
	return "branch_memberships"
}
