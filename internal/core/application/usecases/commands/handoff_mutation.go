package commands

import (
	"context"

	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/kernel"
)

// mutateHandoff loads a handoff, applies change and writes it back. The write
// is conditioned on the status read, so two branches deciding at once cannot
// both win; the loser re-reads and gets handoff.ErrIllegalHandoffState.
func mutateHandoff(
	ctx context.Context,
	uowFactory HandoffUoWFactory,
	handoffID kernel.UUID,
	change func(h *handoff.Handoff) error,
) (handoff.Status, error) {
	status := handoff.Unknown
	err := retryOnConflict(ctx, func(ctx context.Context) error {
		uow := uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		repo := uow.HandoffRepository()
		h, err := repo.Get(ctx, handoffID)
		if err != nil {
			return err
		}
		if err = change(h); err != nil {
			return err
		}
		if err = repo.Update(ctx, h); err != nil {
			return err
		}
		if err = uow.Commit(ctx); err != nil {
			return err
		}

		status = h.Status()
		return nil
	})
	if err != nil {
		return handoff.Unknown, err
	}

	return status, nil
}
