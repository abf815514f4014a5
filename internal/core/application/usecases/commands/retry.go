package commands

import (
	"context"
	"errors"

	"courierops/internal/pkg/errs"
)

// maxConflictAttempts bounds how often a command re-reads and re-applies
// itself after losing a compare-and-set against a concurrent writer.
const maxConflictAttempts = 3

// retryOnConflict runs attempt until it returns something other than a
// concurrency conflict. Each attempt must open its own unit of work so that
// it reads fresh state. The last conflict is returned when all attempts lose.
func retryOnConflict(ctx context.Context, attempt func(ctx context.Context) error) error {
	var err error
	for range maxConflictAttempts {
		err = attempt(ctx)
		if !errors.Is(err, errs.ErrConcurrencyConflict) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Join(err, ctxErr)
		}
	}
	return err
}
