package alert_test

import (
	"testing"
	"time"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestNewAlert(t *testing.T) {
	branchID := kernel.NewUUID()
	shipmentID := kernel.NewUUID().String()

	t.Run("derives dedupe key from subject", func(t *testing.T) {
		a, err := alert.NewAlert(branchID, alert.TypeShipmentOverdue, alert.SeverityCritical,
			alert.Context{alert.ContextShipmentID: shipmentID}, "late", nil, now)

		require.NoError(t, err)
		assert.Equal(t, alert.StatusOpen, a.Status())
		assert.Equal(t, "shipment:"+shipmentID, a.DedupeKey())
		assert.True(t, a.IsOpen())
	})

	t.Run("context without subject is rejected", func(t *testing.T) {
		_, err := alert.NewAlert(branchID, alert.TypeHandoffOverdue, alert.SeverityCritical,
			alert.Context{alert.ContextShipmentID: shipmentID}, "", nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown severity is rejected", func(t *testing.T) {
		_, err := alert.NewAlert(branchID, alert.TypeManual, alert.Severity("LOUD"),
			alert.Context{alert.ContextShipmentID: shipmentID}, "", nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("context is copied", func(t *testing.T) {
		ctx := alert.Context{alert.ContextShipmentID: shipmentID}
		a, err := alert.NewAlert(branchID, alert.TypeShipmentSLA, alert.SeverityWarning, ctx, "", nil, now)
		require.NoError(t, err)

		ctx[alert.ContextShipmentID] = "changed"
		assert.Equal(t, shipmentID, a.Context().String(alert.ContextShipmentID))
	})
}

func TestNewManualAlert(t *testing.T) {
	origin, dest := kernel.NewUUID(), kernel.NewUUID()
	s, err := shipment.NewShipment(kernel.NewUUID(), "TRK-M1", origin, dest, nil, 0, now)
	require.NoError(t, err)

	staff, err := branch.NewActor(kernel.NewUUID(), dest)
	require.NoError(t, err)

	a, err := alert.NewManualAlert(s, alert.SeverityWarning, "parcel wet", staff, now)
	require.NoError(t, err)
	assert.Equal(t, alert.TypeManual, a.Type())
	assert.True(t, a.BranchID().IsEqual(dest))
	assert.Equal(t, "TRK-M1", a.Context().String(alert.ContextTrackingNumber))

	stranger, err := branch.NewActor(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	_, err = alert.NewManualAlert(s, alert.SeverityWarning, "parcel wet", stranger, now)
	require.ErrorIs(t, err, branch.ErrUnauthorizedBranchActor)

	_, err = alert.NewManualAlert(s, alert.SeverityWarning, "  ", staff, now)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestAlert_ResolveIsIdempotent(t *testing.T) {
	branchID := kernel.NewUUID()
	a, err := alert.NewAlert(branchID, alert.TypeShipmentSLA, alert.SeverityWarning,
		alert.Context{alert.ContextShipmentID: kernel.NewUUID().String()}, "", nil, now)
	require.NoError(t, err)

	staff, err := branch.NewActor(kernel.NewUUID(), branchID)
	require.NoError(t, err)

	changed, err := a.Resolve(staff, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, alert.StatusResolved, a.Status())

	changed, err = a.Resolve(staff, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, now, *a.ResolvedAt())

	other, err := branch.NewActor(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	_, err = a.Resolve(other, now)
	require.ErrorIs(t, err, branch.ErrUnauthorizedBranchActor)
}

func TestSLABreach_Alerts(t *testing.T) {
	origin, dest := kernel.NewUUID(), kernel.NewUUID()
	b := alert.SLABreach{
		Type:           alert.TypeHandoffOverdue,
		Severity:       alert.SeverityCritical,
		TargetBranches: []kernel.UUID{origin, dest, origin},
		Context:        alert.Context{alert.ContextHandoffID: kernel.NewUUID().String()},
	}

	alerts, err := b.Alerts(now)

	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.True(t, alerts[0].BranchID().IsEqual(origin))
	assert.True(t, alerts[1].BranchID().IsEqual(dest))
	assert.Equal(t, alerts[0].DedupeKey(), alerts[1].DedupeKey())

	_, err = alert.SLABreach{Type: alert.TypeHandoffOverdue}.Alerts(now)
	require.Error(t, err)
}
