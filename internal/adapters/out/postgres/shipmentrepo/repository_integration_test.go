package shipmentrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"courierops/internal/adapters/out/postgres/pgtest"
	"courierops/internal/adapters/out/postgres/shipmentrepo"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *shipmentrepo.GormShipmentRepository
	tracker    *MockAggregateTracker

	origin kernel.UUID
	dest   kernel.UUID
	now    time.Time
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(context.Background()))

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = shipmentrepo.NewGormShipmentRepository(suite.pg.DB, suite.tracker)

	suite.origin = kernel.NewUUID()
	suite.dest = kernel.NewUUID()
	suite.now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) book(trackingNumber string, deadline *time.Time) *shipment.Shipment {
	s, err := shipment.NewShipment(kernel.NewUUID(), trackingNumber, suite.origin, suite.dest, deadline, 2500, suite.now.Add(-48*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), s))
	return s
}

func (suite *ShipmentRepositoryIntegrationTestSuite) actor(branchID kernel.UUID) branch.Actor {
	a, err := branch.NewActor(kernel.NewUUID(), branchID)
	suite.Require().NoError(err)
	return a
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_RoundTripsEveryField() {
	ctx := context.Background()
	deadline := suite.now.Add(72 * time.Hour)
	s := suite.book("TRK-1042", &deadline)

	stored, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)

	suite.Equal(s.TrackingNumber(), stored.TrackingNumber())
	suite.Equal(shipment.Booked, stored.Status())
	suite.True(stored.OriginBranchID().IsEqual(suite.origin))
	suite.True(stored.DestBranchID().IsEqual(suite.dest))
	suite.Equal(int64(2500), stored.CODAmount())
	suite.Equal(int64(1), stored.Version())
	suite.Require().NotNil(stored.ExpectedDeliveryDate())
	suite.True(deadline.Equal(*stored.ExpectedDeliveryDate()))

	bookedAt, ok := stored.StageTime(shipment.Booked)
	suite.True(ok)
	suite.True(bookedAt.Equal(suite.now.Add(-48 * time.Hour)))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingNumber() {
	suite.book("TRK-DUP", nil)

	again, err := shipment.NewShipment(kernel.NewUUID(), "TRK-DUP", suite.origin, suite.dest, nil, 0, suite.now)
	suite.Require().NoError(err)

	err = suite.repository.Add(context.Background(), again)
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetByTrackingNumber_NotFound() {
	_, err := suite.repository.GetByTrackingNumber(context.Background(), "TRK-NONE")
	suite.Require().ErrorIs(err, shipment.ErrShipmentNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_BumpsVersionAndPersistsStatus() {
	ctx := context.Background()
	s := suite.book("TRK-UPD", nil)

	loaded, err := suite.repository.GetByTrackingNumber(ctx, "TRK-UPD")
	suite.Require().NoError(err)
	_, err = loaded.Assign(kernel.NewUUID(), suite.actor(suite.origin), suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	stored, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.PickupScheduled, stored.Status())
	suite.Equal(int64(2), stored.Version())
	suite.NotNil(stored.AssignedWorkerID())
	_, reached := stored.StageTime(shipment.PickupScheduled)
	suite.True(reached)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_StaleReadIsAConflict() {
	ctx := context.Background()
	s := suite.book("TRK-CAS", nil)

	first, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)

	_, err = first.Cancel(suite.actor(suite.origin), suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	_, err = second.ReportException(suite.actor(suite.dest), suite.now)
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)

	stored, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.Cancelled, stored.Status())
	suite.False(stored.HasException())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_ConcurrentWritersExactlyOneWins() {
	ctx := context.Background()
	s := suite.book("TRK-RACE", nil)

	const writers = 5
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for range writers {
		loaded, err := suite.repository.Get(ctx, s.ID())
		suite.Require().NoError(err)

		wg.Add(1)
		go func(loaded *shipment.Shipment) {
			defer wg.Done()
			if _, err := loaded.Cancel(suite.actor(suite.origin), suite.now); err != nil {
				return
			}
			err := suite.repository.Update(ctx, loaded)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, errs.ErrConcurrencyConflict):
				conflicts++
			}
		}(loaded)
	}
	wg.Wait()

	suite.Equal(1, wins)
	suite.Equal(writers-1, conflicts)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_MissingShipment() {
	s, err := shipment.NewShipment(kernel.NewUUID(), "TRK-GHOST", suite.origin, suite.dest, nil, 0, suite.now)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), s)
	suite.Require().ErrorIs(err, shipment.ErrShipmentNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestListOpenWithDeadline() {
	ctx := context.Background()
	late := suite.now.Add(time.Hour)
	early := suite.now.Add(-time.Hour)

	second := suite.book("TRK-LATE", &late)
	first := suite.book("TRK-EARLY", &early)
	suite.book("TRK-NODEADLINE", nil)

	cancelled := suite.book("TRK-CANCELLED", &early)
	loaded, err := suite.repository.Get(ctx, cancelled.ID())
	suite.Require().NoError(err)
	_, err = loaded.Cancel(suite.actor(suite.origin), suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	open, failures, err := suite.repository.ListOpenWithDeadline(ctx)
	suite.Require().NoError(err)
	suite.Empty(failures)
	suite.Require().Len(open, 2)
	suite.True(open[0].ID().IsEqual(first.ID()))
	suite.True(open[1].ID().IsEqual(second.ID()))
}

// insertRaw writes a row the way an older writer left it, bypassing the
// domain model.
func (suite *ShipmentRepositoryIntegrationTestSuite) insertRaw(trackingNumber, status string, stages map[string]time.Time, deadline *time.Time) uuid.UUID {
	dto := shipmentrepo.ShipmentDTO{
		ID:                   uuid.New(),
		TrackingNumber:       trackingNumber,
		OriginBranchID:       suite.origin.Bytes(),
		DestBranchID:         suite.dest.Bytes(),
		CurrentStatus:        status,
		StageTimes:           datatypes.NewJSONType(stages),
		StatusChangedAt:      suite.now.Add(-24 * time.Hour),
		ExpectedDeliveryDate: deadline,
		Version:              1,
	}
	suite.Require().NoError(suite.pg.DB.Create(&dto).Error)
	return dto.ID
}

func (suite *ShipmentRepositoryIntegrationTestSuite) storedStatus(id uuid.UUID) string {
	var dto shipmentrepo.ShipmentDTO
	suite.Require().NoError(suite.pg.DB.First(&dto, "id = ?", id).Error)
	return dto.CurrentStatus
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_LegacyStatusRowAcceptsScan() {
	ctx := context.Background()
	pickedUp := suite.now.Add(-24 * time.Hour)
	id := suite.insertRaw("TRK-LEGACY", "collected", map[string]time.Time{"pending": pickedUp.Add(-time.Hour), "collected": pickedUp}, nil)

	loaded, err := suite.repository.GetByTrackingNumber(ctx, "TRK-LEGACY")
	suite.Require().NoError(err)
	suite.Equal(shipment.PickedUp, loaded.Status())

	_, err = loaded.ApplyScan(shipment.ScanUnload, suite.actor(suite.origin), suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	suite.Equal(shipment.AtOriginHub.String(), suite.storedStatus(id))
	stored, err := suite.repository.GetByTrackingNumber(ctx, "TRK-LEGACY")
	suite.Require().NoError(err)
	suite.Equal(shipment.AtOriginHub, stored.Status())
	suite.Equal(int64(2), stored.Version())
	_, booked := stored.StageTime(shipment.Booked)
	suite.True(booked)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_LegacyStatusRowChangedUnderneathIsAConflict() {
	ctx := context.Background()
	id := suite.insertRaw("TRK-LEGACY-CAS", "pending", map[string]time.Time{"pending": suite.now}, nil)

	loaded, err := suite.repository.GetByTrackingNumber(ctx, "TRK-LEGACY-CAS")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.pg.DB.Model(&shipmentrepo.ShipmentDTO{}).
		Where("id = ?", id).Update("current_status", "cancelled").Error)

	_, err = loaded.Assign(kernel.NewUUID(), suite.actor(suite.origin), suite.now)
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, loaded)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)
	suite.Equal("cancelled", suite.storedStatus(id))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestListOpenWithDeadline_IncludesLegacyOpenRows() {
	ctx := context.Background()
	deadline := suite.now.Add(-time.Hour)
	legacyOpen := suite.insertRaw("TRK-TRANSIT", "transit", map[string]time.Time{"transit": suite.now}, &deadline)
	suite.insertRaw("TRK-DONE", "done", map[string]time.Time{"done": suite.now}, &deadline)

	open, failures, err := suite.repository.ListOpenWithDeadline(ctx)
	suite.Require().NoError(err)
	suite.Empty(failures)
	suite.Require().Len(open, 1)
	suite.Equal(legacyOpen, open[0].ID().Bytes())
	suite.Equal(shipment.InTransit, open[0].Status())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestListOpenWithDeadline_ReportsUnreadableRows() {
	ctx := context.Background()
	deadline := suite.now.Add(-time.Hour)
	good := suite.book("TRK-GOOD", &deadline)
	badStage := suite.insertRaw("TRK-BAD-STAGE", "IN_TRANSIT", map[string]time.Time{"in progress!": suite.now}, &deadline)
	badStatus := suite.insertRaw("TRK-BAD-STATUS", "lost in space", map[string]time.Time{}, &deadline)

	open, failures, err := suite.repository.ListOpenWithDeadline(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(open, 1)
	suite.True(open[0].ID().IsEqual(good.ID()))

	suite.Require().Len(failures, 2)
	messages := []string{failures[0].Error(), failures[1].Error()}
	suite.Contains(messages[0]+messages[1], badStage.String())
	suite.Contains(messages[0]+messages[1], badStatus.String())
	for _, failure := range failures {
		suite.ErrorIs(failure, shipment.ErrUnknownStatus)
	}
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
