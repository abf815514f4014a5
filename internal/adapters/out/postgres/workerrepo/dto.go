// Package workerrepo reads the workers table kept in sync by workforce
// management. Open load is counted from shipments assigned to each worker.
package workerrepo

import (
	"time"

	"github.com/google/uuid"
)

type WorkerDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"size:200;not null"`
	Available      bool      `gorm:"not null;default:true"`
	AvailableSince time.Time `gorm:"not null"`
	MaxLoad        int       `gorm:"not null;default:0"`
}

func (WorkerDTO) TableName() string {
	return "workers"
}

// workerRow is a worker joined with its open shipment count.
type workerRow struct {
	ID             uuid.UUID
	BranchID       uuid.UUID
	Name           string
	Available      bool
	AvailableSince time.Time
	MaxLoad        int
	OpenShipments  int
}
