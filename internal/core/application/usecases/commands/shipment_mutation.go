package commands

import (
	"context"

	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
)

// mutateShipment loads a shipment, applies change and writes it back with a
// compare-and-set, retrying on conflict with a fresh unit of work.
func mutateShipment(
	ctx context.Context,
	uowFactory ShipmentUoWFactory,
	shipmentID kernel.UUID,
	change func(s *shipment.Shipment) error,
) error {
	return retryOnConflict(ctx, func(ctx context.Context) error {
		uow := uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		repo := uow.ShipmentRepository()
		s, err := repo.Get(ctx, shipmentID)
		if err != nil {
			return err
		}
		if err = change(s); err != nil {
			return err
		}
		if err = repo.Update(ctx, s); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}

// transitionShipment is mutateShipment for changes that move the status and
// therefore append a transition row.
func transitionShipment(
	ctx context.Context,
	uowFactory TransitionUoWFactory,
	shipmentID kernel.UUID,
	change func(s *shipment.Shipment) (*shipment.Transition, error),
) (shipment.Status, error) {
	status := shipment.Unknown
	err := retryOnConflict(ctx, func(ctx context.Context) error {
		uow := uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		repo := uow.ShipmentRepository()
		s, err := repo.Get(ctx, shipmentID)
		if err != nil {
			return err
		}
		tr, err := change(s)
		if err != nil {
			return err
		}
		if err = repo.Update(ctx, s); err != nil {
			return err
		}
		if err = uow.JournalRepository().AppendTransition(ctx, tr); err != nil {
			return err
		}
		if err = uow.Commit(ctx); err != nil {
			return err
		}

		status = s.Status()
		return nil
	})
	if err != nil {
		return shipment.Unknown, err
	}

	return status, nil
}
