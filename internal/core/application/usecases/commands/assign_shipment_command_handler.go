package commands

import (
	"context"
	"fmt"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/domain/model/workforce"
	"courierops/internal/core/domain/services"
	"courierops/internal/core/ports"
	"courierops/internal/pkg/errs"
)

// AssignResult tells the caller who got the shipment and where it stands.
type AssignResult struct {
	WorkerID kernel.UUID
	Status   shipment.Status
}

// AssignShipmentCommandHandler assigns shipments to workers of their origin
// branch.
//
// Before anything is chosen the origin's open MAINTENANCE alerts are read: a
// window covering the assignment time with a zero capacity factor rejects the
// command with services.ErrCapacityExhausted. A factor between 0 and 1 scales
// each worker's maximum load for automatic assignment. Manual assignment
// names the worker and skips load ranking.
//
// Example:
//
//	cmd, _ := NewAssignShipmentCommand(actor, shipmentID, nil, time.Now())
//	res, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrCapacityExhausted):
//	    log.Println("branch is under maintenance")
//	case errors.Is(err, services.ErrNoWorkerAvailable):
//	    log.Println("everyone is busy")
//	case err != nil:
//	    return err
//	}
type AssignShipmentCommandHandler struct {
	uowFactory    AssignUoWFactory
	branches      ports.BranchDirectory
	dispatcher    services.WorkerDispatcher
	capacityGuard services.CapacityGuard
}

func NewAssignShipmentCommandHandler(
	uowFactory AssignUoWFactory,
	branches ports.BranchDirectory,
) AssignShipmentCommandHandler {
	return AssignShipmentCommandHandler{
		uowFactory:    uowFactory,
		branches:      branches,
		dispatcher:    services.NewWorkerDispatcher(),
		capacityGuard: services.NewCapacityGuard(),
	}
}

func (h AssignShipmentCommandHandler) Handle(ctx context.Context, cmd AssignShipmentCommand) (AssignResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignResult{}, err
	}
	if err := authorize(ctx, h.branches, cmd.Actor(), branch.CapabilityManage); err != nil {
		return AssignResult{}, err
	}

	var res AssignResult
	err := retryOnConflict(ctx, func(ctx context.Context) error {
		var err error
		res, err = h.assign(ctx, cmd)
		return err
	})
	if err != nil {
		return AssignResult{}, err
	}

	return res, nil
}

func (h AssignShipmentCommandHandler) assign(ctx context.Context, cmd AssignShipmentCommand) (AssignResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	s, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return AssignResult{}, err
	}
	if err = cmd.Actor().RequireBranch(s.OriginBranchID()); err != nil {
		return AssignResult{}, err
	}

	maintenance, err := uow.AlertRepository().ListOpenByBranch(ctx, s.OriginBranchID(), alert.TypeMaintenance)
	if err != nil {
		return AssignResult{}, err
	}
	capacity, err := h.capacityGuard.Evaluate(maintenance, cmd.AssignedAt())
	if err != nil {
		return AssignResult{}, err
	}

	var (
		worker *workforce.Worker
		tr     *shipment.Transition
	)
	if cmd.WorkerID() != nil {
		worker, tr, err = h.assignManually(ctx, uow.WorkforceDirectory(), s, *cmd.WorkerID(), capacity, cmd)
	} else {
		worker, tr, err = h.assignAutomatically(ctx, uow.WorkforceDirectory(), s, capacity, cmd)
	}
	if err != nil {
		return AssignResult{}, err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return AssignResult{}, err
	}
	// Reassignment within PICKUP_SCHEDULED is not a status change.
	if tr != nil {
		if err = uow.JournalRepository().AppendTransition(ctx, tr); err != nil {
			return AssignResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignResult{}, err
	}

	return AssignResult{WorkerID: worker.ID(), Status: s.Status()}, nil
}

func (h AssignShipmentCommandHandler) assignManually(
	ctx context.Context,
	workforceDir ports.WorkforceDirectory,
	s *shipment.Shipment,
	workerID kernel.UUID,
	capacity services.Capacity,
	cmd AssignShipmentCommand,
) (*workforce.Worker, *shipment.Transition, error) {
	if err := capacity.Check(); err != nil {
		return nil, nil, err
	}

	worker, err := workforceDir.GetWorker(ctx, workerID)
	if err != nil {
		return nil, nil, err
	}
	if !worker.BelongsTo(s.OriginBranchID()) {
		return nil, nil, errs.NewValueIsInvalidErrorWithCause(
			"worker is invalid",
			fmt.Errorf("worker %s does not work for origin branch %s", workerID, s.OriginBranchID()),
		)
	}

	tr, err := s.Assign(worker.ID(), cmd.Actor(), cmd.AssignedAt())
	if err != nil {
		return nil, nil, err
	}
	return worker, tr, nil
}

func (h AssignShipmentCommandHandler) assignAutomatically(
	ctx context.Context,
	workforceDir ports.WorkforceDirectory,
	s *shipment.Shipment,
	capacity services.Capacity,
	cmd AssignShipmentCommand,
) (*workforce.Worker, *shipment.Transition, error) {
	workers, err := workforceDir.ListAvailableByBranch(ctx, s.OriginBranchID())
	if err != nil {
		return nil, nil, err
	}

	return h.dispatcher.Dispatch(s, workers, capacity, cmd.Actor(), cmd.AssignedAt())
}
