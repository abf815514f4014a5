package services

import (
	"errors"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/domain/model/workforce"
)

// ErrNoWorkerAvailable is returned when no worker of the origin branch can
// take another shipment.
var ErrNoWorkerAvailable = errors.New("no worker available")

// WorkerDispatcher picks the least loaded available worker of a shipment's
// origin branch and assigns the shipment to them.
//
// Ranking: fewest open shipments, then earliest availability, then id.
// Workers at or above their capacity-scaled maximum load are skipped.
type WorkerDispatcher struct{}

func NewWorkerDispatcher() WorkerDispatcher {
	return WorkerDispatcher{}
}

func (d WorkerDispatcher) Dispatch(
	s *shipment.Shipment,
	workers []*workforce.Worker,
	capacity Capacity,
	actor branch.Actor,
	at time.Time,
) (*workforce.Worker, *shipment.Transition, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	if err := capacity.Check(); err != nil {
		return nil, nil, err
	}

	best, err := d.findBestWorker(s, workers, capacity)
	if err != nil {
		return nil, nil, err
	}

	tr, err := s.Assign(best.ID(), actor, at)
	if err != nil {
		return nil, nil, err
	}

	return best, tr, nil
}

func (d WorkerDispatcher) findBestWorker(
	s *shipment.Shipment,
	workers []*workforce.Worker,
	capacity Capacity,
) (*workforce.Worker, error) {
	var best *workforce.Worker

	for _, w := range workers {
		if err := w.Validate(); err != nil {
			return nil, err
		}
		if !w.BelongsTo(s.OriginBranchID()) || !w.HasCapacity(capacity.MaxLoad(w)) {
			continue
		}
		if best == nil || ranksBefore(w, best) {
			best = w
		}
	}

	if best == nil {
		return nil, ErrNoWorkerAvailable
	}
	return best, nil
}

func ranksBefore(a, b *workforce.Worker) bool {
	if a.OpenShipments() != b.OpenShipments() {
		return a.OpenShipments() < b.OpenShipments()
	}
	if !a.AvailableSince().Equal(b.AvailableSince()) {
		return a.AvailableSince().Before(b.AvailableSince())
	}
	return a.ID().String() < b.ID().String()
}
