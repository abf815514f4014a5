package services_test

import (
	"testing"
	"time"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/domain/model/workforce"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newActor(t *testing.T, branchID kernel.UUID) branch.Actor {
	t.Helper()
	a, err := branch.NewActor(kernel.NewUUID(), branchID)
	require.NoError(t, err)
	return a
}

func newShipment(t *testing.T, origin, dest kernel.UUID, status shipment.Status, deadline *time.Time) *shipment.Shipment {
	t.Helper()
	s, err := shipment.RestoreShipment(shipment.Snapshot{
		ID:                   kernel.NewUUID(),
		TrackingNumber:       "TRK-S1",
		OriginBranchID:       origin,
		DestBranchID:         dest,
		Status:               status,
		ExpectedDeliveryDate: deadline,
	})
	require.NoError(t, err)
	return s
}

func newWorker(t *testing.T, branchID kernel.UUID, open int, since time.Time) *workforce.Worker {
	t.Helper()
	w, err := workforce.NewWorker(kernel.NewUUID(), branchID, "w", true, since, 4, open)
	require.NoError(t, err)
	return w
}

func maintenanceAlert(t *testing.T, branchID kernel.UUID, from, to time.Time, factor float64) *alert.Alert {
	t.Helper()
	w, err := alert.NewMaintenanceWindow(from, to, factor)
	require.NoError(t, err)
	a, err := alert.NewAlert(branchID, alert.TypeMaintenance, alert.SeverityInfo, w.Context(), "maintenance", nil, from)
	require.NoError(t, err)
	return a
}
