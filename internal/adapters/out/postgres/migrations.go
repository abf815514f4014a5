package postgres

import (
	"context"
	"fmt"

	"courierops/internal/adapters/out/postgres/alertrepo"
	"courierops/internal/adapters/out/postgres/handoffrepo"
	"courierops/internal/adapters/out/postgres/journalrepo"
	"courierops/internal/adapters/out/postgres/memberrepo"
	"courierops/internal/adapters/out/postgres/shipmentrepo"
	"courierops/internal/adapters/out/postgres/workerrepo"

	"gorm.io/gorm"
)

// Tables lists every table Migrate creates, in truncation-safe order.
func Tables() []string {
	return []string{
		"scan_events",
		"shipment_transitions",
		"branch_handoffs",
		"branch_alerts",
		"shipments",
		"workers",
		"branch_memberships",
	}
}

// Migrate creates or updates the schema. The partial unique indexes cannot
// be expressed as gorm tags and are created with plain DDL.
func Migrate(ctx context.Context, db *gorm.DB) error {
	conn := db.WithContext(ctx)

	if err := conn.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&journalrepo.ScanEventDTO{},
		&journalrepo.TransitionDTO{},
		&handoffrepo.HandoffDTO{},
		&alertrepo.AlertDTO{},
		&workerrepo.WorkerDTO{},
		&memberrepo.MembershipDTO{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	statements := []string{
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s
			ON branch_handoffs (shipment_id)
			WHERE status IN ('PENDING', 'APPROVED')`, handoffrepo.OpenHandoffIndex),
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s
			ON branch_alerts (branch_id, alert_type, dedupe_key)
			WHERE status = 'OPEN'`, alertrepo.OpenAlertIndex),
	}
	for _, stmt := range statements {
		if err := conn.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create partial index: %w", err)
		}
	}

	return nil
}
