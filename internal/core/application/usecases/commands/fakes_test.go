package commands_test

import (
	"context"
	"sync"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"
)

// memAlertRepository keeps alerts in memory and enforces one OPEN alert per
// branch, type and dedupe key the way the partial unique index does.
type memAlertRepository struct {
	mu     sync.Mutex
	alerts []*alert.Alert
}

func (r *memAlertRepository) AddIfAbsent(_ context.Context, a *alert.Alert) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findOpen(a.BranchID(), a.Type(), a.DedupeKey()) != nil {
		return false, nil
	}
	r.alerts = append(r.alerts, a)
	return true, nil
}

func (r *memAlertRepository) Update(_ context.Context, _ *alert.Alert) error {
	return nil
}

func (r *memAlertRepository) Get(_ context.Context, id kernel.UUID) (*alert.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.alerts {
		if a.ID().IsEqual(id) {
			return a, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("alert", id.String())
}

func (r *memAlertRepository) FindOpen(
	_ context.Context,
	branchID kernel.UUID,
	alertType alert.Type,
	dedupeKey string,
) (*alert.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a := r.findOpen(branchID, alertType, dedupeKey); a != nil {
		return a, nil
	}
	return nil, errs.NewObjectNotFoundError("alert", dedupeKey)
}

func (r *memAlertRepository) ListOpenByBranch(
	_ context.Context,
	branchID kernel.UUID,
	alertType alert.Type,
) ([]*alert.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*alert.Alert
	for _, a := range r.alerts {
		if a.IsOpen() && a.BranchID().IsEqual(branchID) && a.Type() == alertType {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAlertRepository) open() []*alert.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*alert.Alert
	for _, a := range r.alerts {
		if a.IsOpen() {
			out = append(out, a)
		}
	}
	return out
}

func (r *memAlertRepository) findOpen(branchID kernel.UUID, alertType alert.Type, dedupeKey string) *alert.Alert {
	for _, a := range r.alerts {
		if a.IsOpen() && a.BranchID().IsEqual(branchID) && a.Type() == alertType && a.DedupeKey() == dedupeKey {
			return a
		}
	}
	return nil
}
