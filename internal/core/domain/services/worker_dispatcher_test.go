package services_test

import (
	"testing"
	"time"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/domain/model/workforce"
	"courierops/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerDispatcher_Dispatch(t *testing.T) {
	origin, dest := kernel.NewUUID(), kernel.NewUUID()
	dispatcher := services.NewWorkerDispatcher()

	t.Run("fewest open shipments wins", func(t *testing.T) {
		s := newShipment(t, origin, dest, shipment.Booked, nil)
		busy := newWorker(t, origin, 3, now.Add(-3*time.Hour))
		light := newWorker(t, origin, 1, now.Add(-time.Hour))

		w, tr, err := dispatcher.Dispatch(s, []*workforce.Worker{busy, light}, services.FullCapacity(), newActor(t, origin), now)

		require.NoError(t, err)
		assert.Equal(t, light, w)
		require.NotNil(t, tr)
		assert.Equal(t, shipment.PickupScheduled, s.Status())
		assert.True(t, s.AssignedWorkerID().IsEqual(light.ID()))
	})

	t.Run("ties broken by earliest availability", func(t *testing.T) {
		s := newShipment(t, origin, dest, shipment.Booked, nil)
		late := newWorker(t, origin, 1, now.Add(-time.Hour))
		early := newWorker(t, origin, 1, now.Add(-2*time.Hour))

		w, _, err := dispatcher.Dispatch(s, []*workforce.Worker{late, early}, services.FullCapacity(), newActor(t, origin), now)

		require.NoError(t, err)
		assert.Equal(t, early, w)
	})

	t.Run("foreign and full workers are skipped", func(t *testing.T) {
		s := newShipment(t, origin, dest, shipment.Booked, nil)
		foreign := newWorker(t, dest, 0, now)
		full := newWorker(t, origin, 4, now)

		_, _, err := dispatcher.Dispatch(s, []*workforce.Worker{foreign, full}, services.FullCapacity(), newActor(t, origin), now)

		require.ErrorIs(t, err, services.ErrNoWorkerAvailable)
		assert.Equal(t, shipment.Booked, s.Status())
	})

	t.Run("reduced capacity shrinks max load", func(t *testing.T) {
		s := newShipment(t, origin, dest, shipment.Booked, nil)
		w := newWorker(t, origin, 2, now)
		capacity, err := services.NewCapacityGuard().Evaluate(
			[]*alert.Alert{maintenanceAlert(t, origin, now.Add(-time.Hour), now.Add(time.Hour), 0.5)}, now)
		require.NoError(t, err)

		_, _, err = dispatcher.Dispatch(s, []*workforce.Worker{w}, capacity, newActor(t, origin), now)

		require.ErrorIs(t, err, services.ErrNoWorkerAvailable)
	})

	t.Run("zero capacity refuses before selecting", func(t *testing.T) {
		s := newShipment(t, origin, dest, shipment.Booked, nil)
		capacity, err := services.NewCapacityGuard().Evaluate(
			[]*alert.Alert{maintenanceAlert(t, origin, now.Add(-time.Hour), now.Add(time.Hour), 0)}, now)
		require.NoError(t, err)

		_, _, err = dispatcher.Dispatch(s, []*workforce.Worker{newWorker(t, origin, 0, now)}, capacity, newActor(t, origin), now)

		require.ErrorIs(t, err, services.ErrCapacityExhausted)
		assert.Nil(t, s.AssignedWorkerID())
	})
}
