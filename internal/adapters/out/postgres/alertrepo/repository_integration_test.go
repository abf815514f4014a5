package alertrepo_test

import (
	"context"
	"testing"
	"time"

	"courierops/internal/adapters/out/postgres/alertrepo"
	"courierops/internal/adapters/out/postgres/pgtest"
	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type AlertRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *alertrepo.GormAlertRepository

	branchID kernel.UUID
	now      time.Time
}

func (suite *AlertRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *AlertRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *AlertRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(context.Background()))
	suite.repository = alertrepo.NewGormAlertRepository(suite.pg.DB)
	suite.branchID = kernel.NewUUID()
	suite.now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func (suite *AlertRepositoryIntegrationTestSuite) overdue(handoffID kernel.UUID) *alert.Alert {
	a, err := alert.NewAlert(suite.branchID, alert.TypeHandoffOverdue, alert.SeverityCritical, alert.Context{
		alert.ContextHandoffID:  handoffID.String(),
		alert.ContextShipmentID: kernel.NewUUID().String(),
		alert.ContextDeadline:   suite.now.Add(-30 * time.Minute).Format(time.RFC3339),
	}, "handoff overdue", nil, suite.now)
	suite.Require().NoError(err)
	return a
}

func (suite *AlertRepositoryIntegrationTestSuite) TestAddIfAbsent_OneOpenAlertPerSubject() {
	ctx := context.Background()
	handoffID := kernel.NewUUID()

	created, err := suite.repository.AddIfAbsent(ctx, suite.overdue(handoffID))
	suite.Require().NoError(err)
	suite.True(created)

	created, err = suite.repository.AddIfAbsent(ctx, suite.overdue(handoffID))
	suite.Require().NoError(err)
	suite.False(created)

	open, err := suite.repository.ListOpenByBranch(ctx, suite.branchID, alert.TypeHandoffOverdue)
	suite.Require().NoError(err)
	suite.Len(open, 1)

	created, err = suite.repository.AddIfAbsent(ctx, suite.overdue(kernel.NewUUID()))
	suite.Require().NoError(err)
	suite.True(created)
}

func (suite *AlertRepositoryIntegrationTestSuite) TestResolve_FreesTheSubject() {
	ctx := context.Background()
	handoffID := kernel.NewUUID()
	first := suite.overdue(handoffID)

	_, err := suite.repository.AddIfAbsent(ctx, first)
	suite.Require().NoError(err)

	actor, err := branch.NewActor(kernel.NewUUID(), suite.branchID)
	suite.Require().NoError(err)
	changed, err := first.Resolve(actor, suite.now.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().True(changed)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	_, err = suite.repository.FindOpen(ctx, suite.branchID, alert.TypeHandoffOverdue, first.DedupeKey())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	created, err := suite.repository.AddIfAbsent(ctx, suite.overdue(handoffID))
	suite.Require().NoError(err)
	suite.True(created)

	stored, err := suite.repository.Get(ctx, first.ID())
	suite.Require().NoError(err)
	suite.Equal(alert.StatusResolved, stored.Status())
	suite.Require().NotNil(stored.ResolvedBy())
	suite.True(stored.ResolvedBy().IsEqual(actor.ID()))
}

func (suite *AlertRepositoryIntegrationTestSuite) TestContextRoundTrip() {
	ctx := context.Background()
	window, err := alert.NewMaintenanceWindow(suite.now, suite.now.Add(2*time.Hour), 0.5)
	suite.Require().NoError(err)

	a, err := alert.NewAlert(suite.branchID, alert.TypeMaintenance, alert.SeverityInfo, window.Context(), "sorter", nil, suite.now)
	suite.Require().NoError(err)
	_, err = suite.repository.AddIfAbsent(ctx, a)
	suite.Require().NoError(err)

	found, err := suite.repository.FindOpen(ctx, suite.branchID, alert.TypeMaintenance, a.DedupeKey())
	suite.Require().NoError(err)

	restored, err := found.MaintenanceWindow()
	suite.Require().NoError(err)
	suite.InDelta(0.5, restored.CapacityFactor(), 1e-9)
	suite.True(restored.StartsAt().Equal(suite.now))
}

func TestAlertRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AlertRepositoryIntegrationTestSuite))
}
