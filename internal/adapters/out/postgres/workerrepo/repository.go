package workerrepo

import (
	"context"

	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/domain/model/workforce"
	"courierops/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const selectWorkers = `
	SELECT
		w.id,
		w.branch_id,
		w.name,
		w.available,
		w.available_since,
		w.max_load,
		COUNT(s.id) AS open_shipments
	FROM workers w
	LEFT JOIN shipments s
		ON s.assigned_worker_id = w.id
		AND s.current_status = ANY(?)
`

// GormWorkforceDirectory implements ports.WorkforceDirectory using GORM.
type GormWorkforceDirectory struct {
	db *gorm.DB
}

func NewGormWorkforceDirectory(db *gorm.DB) *GormWorkforceDirectory {
	return &GormWorkforceDirectory{db: db}
}

func (r *GormWorkforceDirectory) GetWorker(ctx context.Context, id kernel.UUID) (*workforce.Worker, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	workers, err := r.query(ctx, "w.id = ?", id.Bytes())
	if err != nil {
		return nil, err
	}
	if len(workers) == 0 {
		return nil, errs.NewObjectNotFoundError("worker", id.String())
	}
	return workers[0], nil
}

// ListAvailableByBranch returns available workers of the branch, ordered by
// availability time then id.
func (r *GormWorkforceDirectory) ListAvailableByBranch(ctx context.Context, branchID kernel.UUID) ([]*workforce.Worker, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	return r.query(ctx, "w.branch_id = ? AND w.available", branchID.Bytes())
}

// Add registers a worker. It is used by provisioning and tests; workforce
// management owns the data.
func (r *GormWorkforceDirectory) Add(ctx context.Context, w *workforce.Worker) error {
	if err := w.Validate(); err != nil {
		return err
	}

	dto := WorkerDTO{
		ID:             w.ID().Bytes(),
		BranchID:       w.BranchID().Bytes(),
		Name:           w.Name(),
		Available:      w.IsAvailable(),
		AvailableSince: w.AvailableSince().UTC(),
		MaxLoad:        w.MaxLoad(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormWorkforceDirectory) query(ctx context.Context, where string, args ...any) ([]*workforce.Worker, error) {
	sql := selectWorkers + " WHERE " + where + `
		GROUP BY w.id
		ORDER BY w.available_since, w.id`

	var rows []workerRow
	params := append([]any{pq.Array(openStatusCodes())}, args...)
	if err := r.db.WithContext(ctx).Raw(sql, params...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	workers := make([]*workforce.Worker, 0, len(rows))
	for _, row := range rows {
		w, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	return workers, nil
}

func toDomain(row workerRow) (*workforce.Worker, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(row.BranchID[:])
	if err != nil {
		return nil, err
	}

	return workforce.NewWorker(id, branchID, row.Name, row.Available, row.AvailableSince, row.MaxLoad, row.OpenShipments)
}

func openStatusCodes() []string {
	open := shipment.OpenStatuses()
	codes := make([]string, 0, len(open))
	for _, s := range open {
		codes = append(codes, s.String())
	}
	return codes
}
