package handoffrepo_test

import (
	"context"
	"testing"
	"time"

	"courierops/internal/adapters/out/postgres/handoffrepo"
	"courierops/internal/adapters/out/postgres/pgtest"
	"courierops/internal/adapters/out/postgres/shipmentrepo"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type HandoffRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *handoffrepo.GormHandoffRepository
	shipments  *shipmentrepo.GormShipmentRepository

	originActor branch.Actor
	destActor   branch.Actor
	now         time.Time
}

func (suite *HandoffRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *HandoffRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *HandoffRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(context.Background()))

	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = handoffrepo.NewGormHandoffRepository(suite.pg.DB, tracker)
	suite.shipments = shipmentrepo.NewGormShipmentRepository(suite.pg.DB, tracker)

	var err error
	suite.originActor, err = branch.NewActor(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.destActor, err = branch.NewActor(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func (suite *HandoffRepositoryIntegrationTestSuite) request(expected time.Time) *handoff.Handoff {
	s, err := shipment.NewShipment(
		kernel.NewUUID(), "TRK-"+kernel.NewUUID().String()[:8],
		suite.originActor.BranchID(), suite.destActor.BranchID(), nil, 0, suite.now.Add(-time.Hour),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.shipments.Add(context.Background(), s))

	h, err := handoff.Request(s, suite.destActor.BranchID(), expected, suite.originActor, suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), h))
	return h
}

func (suite *HandoffRepositoryIntegrationTestSuite) TestAdd_SecondOpenRequestIsDuplicate() {
	ctx := context.Background()
	h := suite.request(suite.now.Add(time.Hour))

	open, err := suite.repository.HasOpenForShipment(ctx, h.ShipmentID())
	suite.Require().NoError(err)
	suite.True(open)

	stored, err := suite.repository.Get(ctx, h.ID())
	suite.Require().NoError(err)

	twin, err := handoff.RestoreHandoff(handoff.Snapshot{
		ID:                kernel.NewUUID(),
		ShipmentID:        h.ShipmentID(),
		OriginBranchID:    stored.OriginBranchID(),
		DestBranchID:      stored.DestBranchID(),
		Status:            handoff.Pending,
		RequestedBy:       suite.originActor.ID(),
		RequestedAt:       suite.now,
		ExpectedHandOffAt: suite.now.Add(2 * time.Hour),
	})
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, twin)
	suite.Require().ErrorIs(err, handoff.ErrDuplicateHandoffRequest)
}

func (suite *HandoffRepositoryIntegrationTestSuite) TestAdd_AllowedAgainAfterRejection() {
	ctx := context.Background()
	h := suite.request(suite.now.Add(time.Hour))

	suite.Require().NoError(h.Reject("dock closed", suite.destActor, suite.now))
	suite.Require().NoError(suite.repository.Update(ctx, h))

	open, err := suite.repository.HasOpenForShipment(ctx, h.ShipmentID())
	suite.Require().NoError(err)
	suite.False(open)

	stored, err := suite.repository.Get(ctx, h.ID())
	suite.Require().NoError(err)
	suite.Equal(handoff.Rejected, stored.Status())
	suite.Equal("dock closed", stored.RejectionReason())
}

func (suite *HandoffRepositoryIntegrationTestSuite) TestUpdate_LosingDecisionIsAConflict() {
	ctx := context.Background()
	h := suite.request(suite.now.Add(time.Hour))

	approving, err := suite.repository.Get(ctx, h.ID())
	suite.Require().NoError(err)
	rejecting, err := suite.repository.Get(ctx, h.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(approving.Approve(suite.destActor, suite.now))
	suite.Require().NoError(suite.repository.Update(ctx, approving))

	suite.Require().NoError(rejecting.Reject("", suite.destActor, suite.now))
	err = suite.repository.Update(ctx, rejecting)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)

	stored, err := suite.repository.Get(ctx, h.ID())
	suite.Require().NoError(err)
	suite.Equal(handoff.Approved, stored.Status())
	suite.Require().NotNil(stored.ApprovedBy())
	suite.True(stored.ApprovedBy().IsEqual(suite.destActor.ID()))
}

func (suite *HandoffRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *HandoffRepositoryIntegrationTestSuite) TestListOverdueApproved() {
	ctx := context.Background()

	overdue := suite.request(suite.now.Add(-30 * time.Minute))
	suite.Require().NoError(overdue.Approve(suite.destActor, suite.now.Add(-time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, overdue))

	onTime := suite.request(suite.now.Add(30 * time.Minute))
	suite.Require().NoError(onTime.Approve(suite.destActor, suite.now.Add(-time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, onTime))

	suite.request(suite.now.Add(-2 * time.Hour))

	list, failures, err := suite.repository.ListOverdueApproved(ctx, suite.now)
	suite.Require().NoError(err)
	suite.Empty(failures)
	suite.Require().Len(list, 1)
	suite.True(list[0].ID().IsEqual(overdue.ID()))
}

func (suite *HandoffRepositoryIntegrationTestSuite) TestListOverdueApproved_ReportsUnreadableRows() {
	ctx := context.Background()

	overdue := suite.request(suite.now.Add(-30 * time.Minute))
	suite.Require().NoError(overdue.Approve(suite.destActor, suite.now.Add(-time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, overdue))

	approvedAt := suite.now.Add(-2 * time.Hour)
	approver := suite.destActor.ID().Bytes()
	sameBranch := handoffrepo.HandoffDTO{
		ID:                uuid.New(),
		ShipmentID:        uuid.New(),
		OriginBranchID:    suite.originActor.BranchID().Bytes(),
		DestBranchID:      suite.originActor.BranchID().Bytes(),
		Status:            handoff.Approved.String(),
		RequestedBy:       suite.originActor.ID().Bytes(),
		RequestedAt:       suite.now.Add(-3 * time.Hour),
		ExpectedHandOffAt: suite.now.Add(-time.Hour),
		ApprovedBy:        &approver,
		ApprovedAt:        &approvedAt,
	}
	suite.Require().NoError(suite.pg.DB.Create(&sameBranch).Error)

	list, failures, err := suite.repository.ListOverdueApproved(ctx, suite.now)
	suite.Require().NoError(err)
	suite.Require().Len(list, 1)
	suite.True(list[0].ID().IsEqual(overdue.ID()))
	suite.Require().Len(failures, 1)
	suite.Contains(failures[0].Error(), sameBranch.ID.String())
}

func TestHandoffRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(HandoffRepositoryIntegrationTestSuite))
}
