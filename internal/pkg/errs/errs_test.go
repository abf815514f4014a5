package errs_test

import (
	"errors"
	"testing"

	"courierops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause prints the id", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("trackingNumber", "TRK-1")

		assert.Equal(t, "trackingNumber", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: TRK-1", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause prints param and cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("shipment", "42", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: shipment, ID is: 42 (cause: connection reset)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidError("reason")
	assert.Equal(t, "value is invalid: reason", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	withCause := errs.NewValueIsInvalidErrorWithCause("reason", errors.New("blank"))
	assert.Equal(t, "value is invalid: reason (cause: blank)", withCause.Error())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("formats bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("capacityFactor", 1.5, 0, 1)

		assert.Equal(t, "value is invalid: 1.5 is capacityFactor, min value is 0, max value is 1", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("appends cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("latitude", 91, -90, 90, errors.New("bad fix"))
		assert.Contains(t, err.Error(), "(cause: bad fix)")
	})

	t.Run("strips newlines from values", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("notes", "line\nbreak", 0, 10)
		assert.Contains(t, err.Error(), "line break")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("tracking number")
	assert.Equal(t, "value is required: tracking number", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	withCause := errs.NewValueIsRequiredErrorWithCause("actor", errors.New("missing header"))
	assert.Equal(t, "value is required: actor (cause: missing header)", withCause.Error())
}

func TestConcurrencyConflictError(t *testing.T) {
	err := errs.NewConcurrencyConflictError("shipment", "abc")

	assert.Equal(t, "concurrency conflict: shipment abc was modified concurrently", err.Error())
	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)

	var target *errs.ConcurrencyConflictError
	require.ErrorAs(t, error(err), &target)
	assert.Equal(t, "shipment", target.Entity)
}
