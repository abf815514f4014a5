package commands_test

import (
	"context"
	"testing"
	"time"

	"courierops/internal/core/application/usecases/commands"
	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/domain/model/workforce"
	"courierops/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) ListOpenWithDeadline(ctx context.Context) ([]*shipment.Shipment, []error, error) {
	args := m.Called(ctx)
	shipments, _ := args.Get(0).([]*shipment.Shipment)
	failures, _ := args.Get(1).([]error)
	return shipments, failures, args.Error(2)
}

type MockJournalRepository struct{ mock.Mock }

func (m *MockJournalRepository) AppendScan(ctx context.Context, scan *shipment.ScanEvent) error {
	args := m.Called(ctx, scan)
	return args.Error(0)
}

func (m *MockJournalRepository) AppendTransition(ctx context.Context, tr *shipment.Transition) error {
	args := m.Called(ctx, tr)
	return args.Error(0)
}

func (m *MockJournalRepository) ListScans(_ context.Context, _ kernel.UUID) ([]*shipment.ScanEvent, error) {
	return nil, nil
}

func (m *MockJournalRepository) ListTransitions(_ context.Context, _ kernel.UUID) ([]*shipment.Transition, error) {
	return nil, nil
}

type MockHandoffRepository struct{ mock.Mock }

func (m *MockHandoffRepository) Add(ctx context.Context, h *handoff.Handoff) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHandoffRepository) Update(ctx context.Context, h *handoff.Handoff) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHandoffRepository) Get(ctx context.Context, id kernel.UUID) (*handoff.Handoff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*handoff.Handoff), args.Error(1)
}

func (m *MockHandoffRepository) HasOpenForShipment(ctx context.Context, shipmentID kernel.UUID) (bool, error) {
	args := m.Called(ctx, shipmentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockHandoffRepository) ListOverdueApproved(ctx context.Context, at time.Time) ([]*handoff.Handoff, []error, error) {
	args := m.Called(ctx, at)
	handoffs, _ := args.Get(0).([]*handoff.Handoff)
	failures, _ := args.Get(1).([]error)
	return handoffs, failures, args.Error(2)
}

type MockAlertRepository struct{ mock.Mock }

func (m *MockAlertRepository) AddIfAbsent(ctx context.Context, a *alert.Alert) (bool, error) {
	args := m.Called(ctx, a)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlertRepository) Update(ctx context.Context, a *alert.Alert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAlertRepository) Get(ctx context.Context, id kernel.UUID) (*alert.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*alert.Alert), args.Error(1)
}

func (m *MockAlertRepository) FindOpen(
	ctx context.Context,
	branchID kernel.UUID,
	alertType alert.Type,
	dedupeKey string,
) (*alert.Alert, error) {
	args := m.Called(ctx, branchID, alertType, dedupeKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*alert.Alert), args.Error(1)
}

func (m *MockAlertRepository) ListOpenByBranch(
	ctx context.Context,
	branchID kernel.UUID,
	alertType alert.Type,
) ([]*alert.Alert, error) {
	args := m.Called(ctx, branchID, alertType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*alert.Alert), args.Error(1)
}

type MockWorkforceDirectory struct{ mock.Mock }

func (m *MockWorkforceDirectory) GetWorker(ctx context.Context, id kernel.UUID) (*workforce.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Worker), args.Error(1)
}

func (m *MockWorkforceDirectory) ListAvailableByBranch(ctx context.Context, branchID kernel.UUID) ([]*workforce.Worker, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workforce.Worker), args.Error(1)
}

type MockBranchDirectory struct{ mock.Mock }

func (m *MockBranchDirectory) HasCapability(
	ctx context.Context,
	actorID, branchID kernel.UUID,
	capability branch.Capability,
) (bool, error) {
	args := m.Called(ctx, actorID, branchID, capability)
	return args.Bool(0), args.Error(1)
}

// MockUoW satisfies every unit of work interface the handlers declare.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) JournalRepository() ports.JournalRepository {
	args := m.Called()
	return args.Get(0).(ports.JournalRepository)
}

func (m *MockUoW) HandoffRepository() ports.HandoffRepository {
	args := m.Called()
	return args.Get(0).(ports.HandoffRepository)
}

func (m *MockUoW) AlertRepository() ports.AlertRepository {
	args := m.Called()
	return args.Get(0).(ports.AlertRepository)
}

func (m *MockUoW) WorkforceDirectory() ports.WorkforceDirectory {
	args := m.Called()
	return args.Get(0).(ports.WorkforceDirectory)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	return m.Called().Get(0).(commands.ShipmentUoW)
}

type MockTransitionUoWFactory struct{ mock.Mock }

func (m *MockTransitionUoWFactory) Create() commands.TransitionUoW {
	return m.Called().Get(0).(commands.TransitionUoW)
}

type MockAssignUoWFactory struct{ mock.Mock }

func (m *MockAssignUoWFactory) Create() commands.AssignUoW {
	return m.Called().Get(0).(commands.AssignUoW)
}

type MockHandoffUoWFactory struct{ mock.Mock }

func (m *MockHandoffUoWFactory) Create() commands.HandoffUoW {
	return m.Called().Get(0).(commands.HandoffUoW)
}

type MockAlertUoWFactory struct{ mock.Mock }

func (m *MockAlertUoWFactory) Create() commands.AlertUoW {
	return m.Called().Get(0).(commands.AlertUoW)
}

type MockMonitorUoWFactory struct{ mock.Mock }

func (m *MockMonitorUoWFactory) Create() commands.MonitorUoW {
	return m.Called().Get(0).(commands.MonitorUoW)
}

type MockLease struct{ mock.Mock }

func (m *MockLease) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockRunLock struct{ mock.Mock }

func (m *MockRunLock) TryAcquire(ctx context.Context, key string, ttl time.Duration) (ports.Lease, bool, error) {
	args := m.Called(ctx, key, ttl)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(ports.Lease), args.Bool(1), args.Error(2)
}

// world is two branches with an actor at each and one at an unrelated branch.
type world struct {
	origin, dest kernel.UUID
	originActor  branch.Actor
	destActor    branch.Actor
	otherActor   branch.Actor
}

func newWorld(t *testing.T) world {
	t.Helper()

	w := world{origin: kernel.NewUUID(), dest: kernel.NewUUID()}
	var err error
	w.originActor, err = branch.NewActor(kernel.NewUUID(), w.origin)
	require.NoError(t, err)
	w.destActor, err = branch.NewActor(kernel.NewUUID(), w.dest)
	require.NoError(t, err)
	w.otherActor, err = branch.NewActor(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	return w
}

func (w world) shipmentAt(t *testing.T, status shipment.Status) *shipment.Shipment {
	t.Helper()

	s, err := shipment.RestoreShipment(shipment.Snapshot{
		ID:              kernel.NewUUID(),
		TrackingNumber:  "TRK-1042",
		OriginBranchID:  w.origin,
		DestBranchID:    w.dest,
		Status:          status,
		StageTimes:      map[shipment.Status]time.Time{shipment.Booked: now.Add(-48 * time.Hour)},
		StatusChangedAt: now.Add(-time.Hour),
		Version:         1,
	})
	require.NoError(t, err)
	return s
}

// allowAll makes every membership lookup succeed.
func allowAll() *MockBranchDirectory {
	branches := new(MockBranchDirectory)
	branches.On("HasCapability", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	return branches
}
