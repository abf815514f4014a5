package commands_test

import (
	"testing"

	"courierops/internal/core/application/usecases/commands"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// shipmentUoW wires a unit of work that reads s and expects one update.
func shipmentUoW(t *testing.T, s *shipment.Shipment, updated bool) (*MockShipmentUoWFactory, *MockUoW, *MockShipmentRepository) {
	t.Helper()
	ctx := t.Context()

	shipments := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipments).Once()
	shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
	if updated {
		shipments.On("Update", ctx, s).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow, shipments
}

func TestNewHoldShipmentCommand_RequiresReason(t *testing.T) {
	w := newWorld(t)
	_, err := commands.NewHoldShipmentCommand(w.originActor, kernel.NewUUID(), "  ", now)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestHoldShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	w := newWorld(t)
	s := w.shipmentAt(t, shipment.InTransit)
	factory, uow, shipments := shipmentUoW(t, s, true)

	cmd, err := commands.NewHoldShipmentCommand(w.destActor, s.ID(), "customs paperwork", now)
	require.NoError(t, err)

	h := commands.NewHoldShipmentCommandHandler(factory, allowAll())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, s.IsHeld())
	assert.Equal(t, "customs paperwork", s.HoldReason())
	assert.Equal(t, shipment.InTransit, s.Status())
	shipments.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestHoldShipmentCommandHandler_Handle_OutsiderRejected(t *testing.T) {
	ctx := t.Context()
	w := newWorld(t)
	s := w.shipmentAt(t, shipment.InTransit)
	factory, uow, shipments := shipmentUoW(t, s, false)

	cmd, err := commands.NewHoldShipmentCommand(w.otherActor, s.ID(), "looks damaged", now)
	require.NoError(t, err)

	h := commands.NewHoldShipmentCommandHandler(factory, allowAll())
	require.ErrorIs(t, h.Handle(ctx, cmd), branch.ErrUnauthorizedBranchActor)

	assert.False(t, s.IsHeld())
	shipments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestReleaseHoldCommandHandler_Handle(t *testing.T) {
	w := newWorld(t)

	t.Run("clears the hold", func(t *testing.T) {
		s := w.shipmentAt(t, shipment.AtDestinationHub)
		require.NoError(t, s.Hold("address check", w.destActor, now))
		factory, _, shipments := shipmentUoW(t, s, true)

		cmd, err := commands.NewReleaseHoldCommand(w.destActor, s.ID())
		require.NoError(t, err)

		h := commands.NewReleaseHoldCommandHandler(factory, allowAll())
		require.NoError(t, h.Handle(t.Context(), cmd))
		assert.False(t, s.IsHeld())
		assert.Empty(t, s.HoldReason())
		shipments.AssertExpectations(t)
	})

	t.Run("not held", func(t *testing.T) {
		s := w.shipmentAt(t, shipment.AtDestinationHub)
		factory, _, shipments := shipmentUoW(t, s, false)

		cmd, err := commands.NewReleaseHoldCommand(w.destActor, s.ID())
		require.NoError(t, err)

		h := commands.NewReleaseHoldCommandHandler(factory, allowAll())
		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrValueIsInvalid)
		shipments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
