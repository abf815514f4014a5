// Package workforce is the read model of couriers supplied by workforce
// management: who works for a branch, whether they are available and how many
// open shipments they carry.
package workforce

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"
)

var ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker constructor")

// DefaultMaxLoad applies when workforce management reports no limit.
const DefaultMaxLoad = 20

type Worker struct {
	id             kernel.UUID
	branchID       kernel.UUID
	name           string
	available      bool
	availableSince time.Time
	maxLoad        int
	openShipments  int

	isConstructed bool
}

func NewWorker(
	id, branchID kernel.UUID,
	name string,
	available bool,
	availableSince time.Time,
	maxLoad, openShipments int,
) (*Worker, error) {
	w := &Worker{
		name:           strings.TrimSpace(name),
		available:      available,
		availableSince: availableSince,
		maxLoad:        maxLoad,
		openShipments:  openShipments,
		isConstructed:  true,
	}
	if w.maxLoad == 0 {
		w.maxLoad = DefaultMaxLoad
	}

	var err error
	if w.maxLoad < 0 {
		err = errs.NewValueIsInvalidErrorWithCause("max load is invalid", fmt.Errorf("%d is negative", maxLoad))
	}
	if openShipments < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("open shipments is invalid", fmt.Errorf("%d is negative", openShipments)))
	}
	if err = errors.Join(err, id.Validate(), branchID.Validate()); err != nil {
		return nil, err
	}
	w.id = id
	w.branchID = branchID

	return w, nil
}

func (w *Worker) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWorkerIsNotConstructed
	}
	return nil
}

func (w *Worker) ID() kernel.UUID           { return w.id }
func (w *Worker) BranchID() kernel.UUID     { return w.branchID }
func (w *Worker) Name() string              { return w.name }
func (w *Worker) IsAvailable() bool         { return w.available }
func (w *Worker) AvailableSince() time.Time { return w.availableSince }
func (w *Worker) MaxLoad() int              { return w.maxLoad }
func (w *Worker) OpenShipments() int        { return w.openShipments }

// HasCapacity reports whether the worker can take one more shipment under
// maxLoad, which may already be scaled down by a maintenance window.
func (w *Worker) HasCapacity(maxLoad int) bool {
	return w.available && w.openShipments < maxLoad
}

func (w *Worker) BelongsTo(branchID kernel.UUID) bool {
	return w.branchID.IsEqual(branchID)
}
