package queries_test

import (
	"context"
	"testing"
	"time"

	"courierops/internal/core/application/usecases/queries"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/suite"
)

type GetShipmentHistoryQueryHandlerTestSuite struct {
	querySuite
	handler queries.GetShipmentHistoryQueryHandler
}

func (suite *GetShipmentHistoryQueryHandlerTestSuite) SetupTest() {
	suite.querySuite.SetupTest()
	suite.handler = queries.NewGetShipmentHistoryQueryHandler(suite.pg.DB, suite.branches)
}

// deliver walks an out-for-delivery shipment through a delivery scan and
// journals it the way the scan handler does.
func (suite *GetShipmentHistoryQueryHandlerTestSuite) deliver(s *shipment.Shipment, courier branch.Actor, at time.Time) {
	ctx := context.Background()

	tr, err := s.ApplyScan(shipment.ScanDelivery, courier, at)
	suite.Require().NoError(err)
	scan, err := shipment.NewScanEvent(s, shipment.ScanDelivery, courier, at, nil, "signed by recipient")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.shipments.Update(ctx, s))
	suite.Require().NoError(suite.journal.AppendScan(ctx, scan))
	suite.Require().NoError(suite.journal.AppendTransition(ctx, tr))
}

func (suite *GetShipmentHistoryQueryHandlerTestSuite) handle(actor branch.Actor, id kernel.UUID) (*queries.ShipmentHistory, error) {
	query, err := queries.NewGetShipmentHistoryQuery(actor, id)
	suite.Require().NoError(err)
	return suite.handler.Handle(context.Background(), query)
}

func (suite *GetShipmentHistoryQueryHandlerTestSuite) TestHandle_ReturnsJournals() {
	origin, dest := kernel.NewUUID(), kernel.NewUUID()
	s := suite.seedShipment(shipment.Snapshot{OriginBranchID: origin, DestBranchID: dest, Status: shipment.OutForDelivery})
	courier := suite.actor(dest)
	suite.deliver(s, courier, suite.now.Add(time.Hour))

	for _, reader := range []branch.Actor{suite.actor(origin), suite.actor(dest)} {
		history, err := suite.handle(reader, s.ID())
		suite.Require().NoError(err)

		suite.Equal(s.TrackingNumber(), history.TrackingNumber)
		suite.Equal(shipment.Delivered, history.Status)

		suite.Require().Len(history.Scans, 1)
		suite.Equal(shipment.ScanDelivery, history.Scans[0].Mode)
		suite.True(history.Scans[0].BranchID.IsEqual(dest))
		suite.Nil(history.Scans[0].Latitude)
		suite.Equal("signed by recipient", history.Scans[0].Notes)

		suite.Require().Len(history.Transitions, 1)
		suite.Equal(shipment.OutForDelivery, history.Transitions[0].From)
		suite.Equal(shipment.Delivered, history.Transitions[0].To)
		suite.Equal(shipment.TriggerScan, history.Transitions[0].Trigger)
		suite.True(history.Transitions[0].ActorID.IsEqual(courier.ID()))
	}
}

func (suite *GetShipmentHistoryQueryHandlerTestSuite) TestHandle_UnknownShipment_IsNotFound() {
	_, err := suite.handle(suite.actor(kernel.NewUUID()), kernel.NewUUID())

	suite.Require().ErrorIs(err, shipment.ErrShipmentNotFound)
}

func (suite *GetShipmentHistoryQueryHandlerTestSuite) TestHandle_ThirdBranch_IsRejected() {
	s := suite.seedShipment(shipment.Snapshot{
		OriginBranchID: kernel.NewUUID(),
		DestBranchID:   kernel.NewUUID(),
		Status:         shipment.InTransit,
	})

	_, err := suite.handle(suite.actor(kernel.NewUUID()), s.ID())

	suite.Require().ErrorIs(err, branch.ErrUnauthorizedBranchActor)
}

func TestGetShipmentHistoryQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetShipmentHistoryQueryHandlerTestSuite))
}
