package shipment_test

import (
	"strings"
	"testing"

	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScanMode(t *testing.T) {
	m, err := shipment.ParseScanMode(" Delivery ")
	require.NoError(t, err)
	assert.Equal(t, shipment.ScanDelivery, m)

	_, err = shipment.ParseScanMode("teleport")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestUnloadSide(t *testing.T) {
	assert.Equal(t, shipment.OriginSide, shipment.UnloadSide(shipment.PickedUp))
	assert.Equal(t, shipment.OriginSide, shipment.UnloadSide(shipment.ReturnInitiated))
	assert.Equal(t, shipment.DestinationSide, shipment.UnloadSide(shipment.InTransit))
	assert.Equal(t, shipment.DestinationSide, shipment.UnloadSide(shipment.Booked))
}

func TestResolveScan_Table(t *testing.T) {
	type row struct {
		mode shipment.ScanMode
		from shipment.Status
		to   shipment.Status
		side shipment.CustodySide
	}
	rows := []row{
		{shipment.ScanUnload, shipment.PickedUp, shipment.AtOriginHub, shipment.OriginSide},
		{shipment.ScanUnload, shipment.InTransit, shipment.AtDestinationHub, shipment.DestinationSide},
		{shipment.ScanUnload, shipment.ReturnInitiated, shipment.Returned, shipment.OriginSide},
		{shipment.ScanRoute, shipment.AtOriginHub, shipment.InTransit, shipment.OriginSide},
		{shipment.ScanRoute, shipment.AtDestinationHub, shipment.OutForDelivery, shipment.DestinationSide},
		{shipment.ScanRoute, shipment.CustomsCleared, shipment.OutForDelivery, shipment.DestinationSide},
		{shipment.ScanDelivery, shipment.OutForDelivery, shipment.Delivered, shipment.DestinationSide},
		{shipment.ScanReturns, shipment.OutForDelivery, shipment.ReturnInitiated, shipment.DestinationSide},
		{shipment.ScanReturns, shipment.Delivered, shipment.ReturnInitiated, shipment.DestinationSide},
	}

	count := 0
	for _, mode := range shipment.ScanModes() {
		for _, from := range shipment.Statuses() {
			if _, _, err := shipment.ResolveScan(mode, from); err == nil {
				count++
			} else {
				require.ErrorIs(t, err, shipment.ErrIllegalTransition)
			}
		}
	}
	assert.Equal(t, len(rows), count)

	for _, r := range rows {
		to, side, err := shipment.ResolveScan(r.mode, r.from)
		require.NoError(t, err)
		assert.Equal(t, r.to, to, "%s at %s", r.mode, r.from)
		assert.Equal(t, r.side, side, "%s at %s", r.mode, r.from)
	}
}

func TestNewScanEvent(t *testing.T) {
	f := newFixture(t)
	s := f.shipmentAt(t, shipment.OutForDelivery)
	geo, err := kernel.NewGeoPoint(52.52, 13.40)
	require.NoError(t, err)

	e, err := shipment.NewScanEvent(s, shipment.ScanDelivery, f.destActor, bookedAt, &geo, " left at door ")

	require.NoError(t, err)
	assert.True(t, e.ShipmentID().IsEqual(s.ID()))
	assert.True(t, e.BranchID().IsEqual(f.dest))
	assert.True(t, e.ActorID().IsEqual(f.destActor.ID()))
	assert.Equal(t, "left at door", e.Notes())
	assert.True(t, e.Geo().IsEqual(geo))

	_, err = shipment.NewScanEvent(s, shipment.ScanDelivery, f.destActor, bookedAt, nil, strings.Repeat("x", 1001))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
