package queries_test

import (
	"context"
	"time"

	"courierops/internal/adapters/out/postgres/alertrepo"
	"courierops/internal/adapters/out/postgres/handoffrepo"
	"courierops/internal/adapters/out/postgres/journalrepo"
	"courierops/internal/adapters/out/postgres/pgtest"
	"courierops/internal/adapters/out/postgres/shipmentrepo"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockBranchDirectory struct {
	mock.Mock
}

func (m *MockBranchDirectory) HasCapability(
	ctx context.Context,
	actorID, branchID kernel.UUID,
	capability branch.Capability,
) (bool, error) {
	args := m.Called(ctx, actorID, branchID, capability)
	return args.Bool(0), args.Error(1)
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// querySuite owns the container and the write-side repositories used to
// seed rows. Handler suites embed it.
type querySuite struct {
	suite.Suite
	pg       *pgtest.Database
	branches *MockBranchDirectory

	shipments *shipmentrepo.GormShipmentRepository
	journal   *journalrepo.GormJournalRepository
	handoffs  *handoffrepo.GormHandoffRepository
	alerts    *alertrepo.GormAlertRepository

	now time.Time
}

func (suite *querySuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg

	suite.shipments = shipmentrepo.NewGormShipmentRepository(pg.DB, noopTracker{})
	suite.journal = journalrepo.NewGormJournalRepository(pg.DB)
	suite.handoffs = handoffrepo.NewGormHandoffRepository(pg.DB, noopTracker{})
	suite.alerts = alertrepo.NewGormAlertRepository(pg.DB)
}

func (suite *querySuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *querySuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(context.Background()))
	suite.branches = &MockBranchDirectory{}
	suite.branches.On("HasCapability", mock.Anything, mock.Anything, mock.Anything, branch.CapabilityRead).
		Return(true, nil).Maybe()
	suite.now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func (suite *querySuite) actor(branchID kernel.UUID) branch.Actor {
	actor, err := branch.NewActor(kernel.NewUUID(), branchID)
	suite.Require().NoError(err)
	return actor
}

// seedShipment stores a shipment in the given state. Unset timestamps
// default to the suite clock.
func (suite *querySuite) seedShipment(snap shipment.Snapshot) *shipment.Shipment {
	snap.ID = kernel.NewUUID()
	snap.TrackingNumber = "TRK-" + snap.ID.String()[:8]
	if snap.StatusChangedAt.IsZero() {
		snap.StatusChangedAt = suite.now
	}
	if snap.StageTimes == nil {
		snap.StageTimes = map[shipment.Status]time.Time{snap.Status: snap.StatusChangedAt}
	}
	snap.Version = 1

	s, err := shipment.RestoreShipment(snap)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.shipments.Add(context.Background(), s))
	return s
}
