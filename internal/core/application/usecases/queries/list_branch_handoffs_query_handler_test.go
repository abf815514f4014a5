package queries_test

import (
	"context"
	"testing"
	"time"

	"courierops/internal/core/application/usecases/queries"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ListBranchHandoffsQueryHandlerTestSuite struct {
	querySuite
	handler queries.ListBranchHandoffsQueryHandler

	branchA, branchB, branchC kernel.UUID
}

func (suite *ListBranchHandoffsQueryHandlerTestSuite) SetupTest() {
	suite.querySuite.SetupTest()
	suite.handler = queries.NewListBranchHandoffsQueryHandler(suite.pg.DB, suite.branches)
	suite.branchA, suite.branchB, suite.branchC = kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
}

// seedHandoff books a shipment at from and requests a handoff to to,
// approving it when approve is set.
func (suite *ListBranchHandoffsQueryHandlerTestSuite) seedHandoff(
	from, to kernel.UUID,
	expected time.Time,
	approve bool,
) *handoff.Handoff {
	s := suite.seedShipment(shipment.Snapshot{OriginBranchID: from, DestBranchID: to, Status: shipment.Booked})

	h, err := handoff.Request(s, to, expected, suite.actor(from), suite.now)
	suite.Require().NoError(err)
	if approve {
		suite.Require().NoError(h.Approve(suite.actor(to), suite.now))
	}
	suite.Require().NoError(suite.handoffs.Add(context.Background(), h))
	return h
}

func (suite *ListBranchHandoffsQueryHandlerTestSuite) handle(actor branch.Actor, status, direction string) ([]queries.HandoffManifestLine, error) {
	query, err := queries.NewListBranchHandoffsQuery(actor, suite.branchA, status, direction)
	suite.Require().NoError(err)
	return suite.handler.Handle(context.Background(), query)
}

func (suite *ListBranchHandoffsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	lines, err := suite.handle(suite.actor(suite.branchA), "", "")

	suite.Require().NoError(err)
	suite.NotNil(lines)
	suite.Empty(lines)
}

func (suite *ListBranchHandoffsQueryHandlerTestSuite) TestHandle_FiltersAndOrders() {
	toB := suite.seedHandoff(suite.branchA, suite.branchB, suite.now.Add(2*time.Hour), false)
	toC := suite.seedHandoff(suite.branchA, suite.branchC, suite.now.Add(time.Hour), true)
	fromC := suite.seedHandoff(suite.branchC, suite.branchA, suite.now.Add(3*time.Hour), false)
	suite.seedHandoff(suite.branchB, suite.branchC, suite.now, false)

	reader := suite.actor(suite.branchA)

	suite.Run("both directions by expected time", func() {
		lines, err := suite.handle(reader, "", "")
		suite.Require().NoError(err)
		suite.Require().Len(lines, 3)

		suite.True(lines[0].ID.IsEqual(toC.ID()))
		suite.True(lines[1].ID.IsEqual(toB.ID()))
		suite.True(lines[2].ID.IsEqual(fromC.ID()))
		suite.Equal(handoff.DirectionOutbound, lines[0].Direction)
		suite.Equal(handoff.DirectionInbound, lines[2].Direction)
		suite.NotEmpty(lines[0].TrackingNumber)
	})

	suite.Run("inbound only", func() {
		lines, err := suite.handle(reader, "", "inbound")
		suite.Require().NoError(err)
		suite.Require().Len(lines, 1)
		suite.True(lines[0].ID.IsEqual(fromC.ID()))
	})

	suite.Run("outbound approved", func() {
		lines, err := suite.handle(reader, "APPROVED", "outbound")
		suite.Require().NoError(err)
		suite.Require().Len(lines, 1)
		suite.Equal(handoff.Approved, lines[0].Status)
		suite.Require().NotNil(lines[0].ApprovedBy)
		suite.True(lines[0].ExpectedHandOffAt.Equal(suite.now.Add(time.Hour)))
	})
}

func (suite *ListBranchHandoffsQueryHandlerTestSuite) TestHandle_ActorOfAnotherBranch_IsRejected() {
	_, err := suite.handle(suite.actor(suite.branchB), "", "")

	suite.Require().ErrorIs(err, branch.ErrUnauthorizedBranchActor)
}

func (suite *ListBranchHandoffsQueryHandlerTestSuite) TestHandle_WithoutReadCapability_IsRejected() {
	denied := &MockBranchDirectory{}
	denied.On("HasCapability", mock.Anything, mock.Anything, suite.branchA, branch.CapabilityRead).Return(false, nil).Once()
	handler := queries.NewListBranchHandoffsQueryHandler(suite.pg.DB, denied)

	query, err := queries.NewListBranchHandoffsQuery(suite.actor(suite.branchA), suite.branchA, "", "")
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, branch.ErrUnauthorizedBranchActor)
	denied.AssertExpectations(suite.T())
}

func (suite *ListBranchHandoffsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	lines, err := suite.handler.Handle(context.Background(), queries.ListBranchHandoffsQuery{})

	suite.Require().Error(err)
	suite.Nil(lines)
	suite.Contains(err.Error(), "must be created via NewListBranchHandoffsQuery constructor")
}

func (suite *ListBranchHandoffsQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	for range 10 {
		suite.seedHandoff(suite.branchA, suite.branchB, suite.now, false)
	}
	query, err := queries.NewListBranchHandoffsQuery(suite.actor(suite.branchA), suite.branchA, "", "")
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lines, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(lines)
}

func TestListBranchHandoffsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListBranchHandoffsQueryHandlerTestSuite))
}
