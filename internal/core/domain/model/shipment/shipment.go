package shipment

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"
)

const maxTrackingNumberLength = 64

// Shipment is the aggregate root for a parcel moving between an origin and a
// destination branch.
//
// Invariants:
//   - status only moves along AllowedTransitions, or along the reverse-flow
//     edge during a returns scan
//   - every status change yields exactly one Transition and one StatusChanged
//     event
//   - branch-scoped operations are rejected unless the actor belongs to the
//     branch the operation concerns
//
// version and observedStatus are the values read from storage; repositories
// condition their update on both.
type Shipment struct {
	id             kernel.UUID
	trackingNumber string
	originBranchID kernel.UUID
	destBranchID   kernel.UUID

	status          Status
	stageTimes      map[Status]time.Time
	statusChangedAt time.Time

	assignedWorkerID     *kernel.UUID
	expectedDeliveryDate *time.Time

	heldAt     *time.Time
	holdReason string

	reroutedFromBranchID *kernel.UUID
	reroutedBy           *kernel.UUID
	rerouteReason        string

	hasException bool
	codAmount    int64
	codCollected bool

	version        int64
	observedStatus Status
	events         []kernel.DomainEvent

	isConstructed bool
}

// Snapshot is the flat persisted form of a Shipment.
type Snapshot struct {
	ID                   kernel.UUID
	TrackingNumber       string
	OriginBranchID       kernel.UUID
	DestBranchID         kernel.UUID
	Status               Status
	StageTimes           map[Status]time.Time
	StatusChangedAt      time.Time
	AssignedWorkerID     *kernel.UUID
	ExpectedDeliveryDate *time.Time
	HeldAt               *time.Time
	HoldReason           string
	ReroutedFromBranchID *kernel.UUID
	ReroutedBy           *kernel.UUID
	RerouteReason        string
	HasException         bool
	CODAmount            int64
	CODCollected         bool
	Version              int64
}

// NewShipment books a shipment. codAmount is in minor currency units.
func NewShipment(
	id kernel.UUID,
	trackingNumber string,
	originBranchID, destBranchID kernel.UUID,
	expectedDeliveryDate *time.Time,
	codAmount int64,
	bookedAt time.Time,
) (*Shipment, error) {
	s := &Shipment{
		status:          Booked,
		observedStatus:  Booked,
		stageTimes:      map[Status]time.Time{Booked: bookedAt},
		statusChangedAt: bookedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setTrackingNumber(trackingNumber),
		s.setBranches(originBranchID, destBranchID),
		s.setCODAmount(codAmount),
		s.setBookedAt(bookedAt),
	); err != nil {
		return nil, err
	}
	s.expectedDeliveryDate = expectedDeliveryDate

	return s, nil
}

// RestoreShipment rebuilds a shipment read from storage.
func RestoreShipment(snap Snapshot) (*Shipment, error) {
	s := &Shipment{
		stageTimes:           maps.Clone(snap.StageTimes),
		statusChangedAt:      snap.StatusChangedAt,
		assignedWorkerID:     snap.AssignedWorkerID,
		expectedDeliveryDate: snap.ExpectedDeliveryDate,
		heldAt:               snap.HeldAt,
		holdReason:           snap.HoldReason,
		reroutedFromBranchID: snap.ReroutedFromBranchID,
		reroutedBy:           snap.ReroutedBy,
		rerouteReason:        snap.RerouteReason,
		hasException:         snap.HasException,
		codCollected:         snap.CODCollected,
		version:              snap.Version,
		isConstructed:        true,
	}
	if s.stageTimes == nil {
		s.stageTimes = map[Status]time.Time{}
	}

	if err := errors.Join(
		s.setID(snap.ID),
		s.setTrackingNumber(snap.TrackingNumber),
		s.setBranches(snap.OriginBranchID, snap.DestBranchID),
		s.setCODAmount(snap.CODAmount),
		snap.Status.Validate(),
	); err != nil {
		return nil, err
	}
	s.status = snap.Status
	s.observedStatus = snap.Status

	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) Snapshot() Snapshot {
	return Snapshot{
		ID:                   s.id,
		TrackingNumber:       s.trackingNumber,
		OriginBranchID:       s.originBranchID,
		DestBranchID:         s.destBranchID,
		Status:               s.status,
		StageTimes:           maps.Clone(s.stageTimes),
		StatusChangedAt:      s.statusChangedAt,
		AssignedWorkerID:     s.assignedWorkerID,
		ExpectedDeliveryDate: s.expectedDeliveryDate,
		HeldAt:               s.heldAt,
		HoldReason:           s.holdReason,
		ReroutedFromBranchID: s.reroutedFromBranchID,
		ReroutedBy:           s.reroutedBy,
		RerouteReason:        s.rerouteReason,
		HasException:         s.hasException,
		CODAmount:            s.codAmount,
		CODCollected:         s.codCollected,
		Version:              s.version,
	}
}

func (s *Shipment) ID() kernel.UUID                    { return s.id }
func (s *Shipment) TrackingNumber() string             { return s.trackingNumber }
func (s *Shipment) OriginBranchID() kernel.UUID        { return s.originBranchID }
func (s *Shipment) DestBranchID() kernel.UUID          { return s.destBranchID }
func (s *Shipment) Status() Status                     { return s.status }
func (s *Shipment) StatusChangedAt() time.Time         { return s.statusChangedAt }
func (s *Shipment) AssignedWorkerID() *kernel.UUID     { return s.assignedWorkerID }
func (s *Shipment) ExpectedDeliveryDate() *time.Time   { return s.expectedDeliveryDate }
func (s *Shipment) HeldAt() *time.Time                 { return s.heldAt }
func (s *Shipment) HoldReason() string                 { return s.holdReason }
func (s *Shipment) ReroutedFromBranchID() *kernel.UUID { return s.reroutedFromBranchID }
func (s *Shipment) ReroutedBy() *kernel.UUID           { return s.reroutedBy }
func (s *Shipment) RerouteReason() string              { return s.rerouteReason }
func (s *Shipment) HasException() bool                 { return s.hasException }
func (s *Shipment) CODAmount() int64                   { return s.codAmount }
func (s *Shipment) CODCollected() bool                 { return s.codCollected }
func (s *Shipment) Version() int64                     { return s.version }

// ObservedStatus is the status the shipment had when it was read.
func (s *Shipment) ObservedStatus() Status {
	return s.observedStatus
}

// StageTime returns when the shipment reached st, if it has.
func (s *Shipment) StageTime(st Status) (time.Time, bool) {
	t, ok := s.stageTimes[st]
	return t, ok
}

func (s *Shipment) IsHeld() bool {
	return s.heldAt != nil
}

// BranchFor resolves a custody side to a branch id.
func (s *Shipment) BranchFor(side CustodySide) kernel.UUID {
	if side == OriginSide {
		return s.originBranchID
	}
	return s.destBranchID
}

// CustodyBranchID is the branch physically responsible for the shipment now.
// The origin keeps custody until the destination unloads it; once returned
// or cancelled it is back with the origin.
func (s *Shipment) CustodyBranchID() kernel.UUID {
	switch s.status {
	case Booked, PickupScheduled, PickedUp, AtOriginHub, InTransit, Returned, Cancelled, Exception:
		return s.originBranchID
	default:
		return s.destBranchID
	}
}

// IsParty reports whether branchID is the shipment's origin or destination.
func (s *Shipment) IsParty(branchID kernel.UUID) bool {
	return s.originBranchID.IsEqual(branchID) || s.destBranchID.IsEqual(branchID)
}

// IsOverdue reports whether the delivery deadline has passed at now.
func (s *Shipment) IsOverdue(now time.Time) bool {
	return s.expectedDeliveryDate != nil && now.After(*s.expectedDeliveryDate)
}

// DueWithin reports whether the deadline is still ahead but no further than
// window from now.
func (s *Shipment) DueWithin(now time.Time, window time.Duration) bool {
	if s.expectedDeliveryDate == nil || s.IsOverdue(now) {
		return false
	}
	return !s.expectedDeliveryDate.After(now.Add(window))
}

// ApplyScan advances the shipment for a scan in mode taken by actor.
//
// Unload scans are checked against the branch expected to unload before the
// rule lookup, so a foreign branch always sees ErrMisroutedScan. Other modes
// resolve the rule first and then check the rule's custody side.
func (s *Shipment) ApplyScan(mode ScanMode, actor branch.Actor, at time.Time) (*Transition, error) {
	if err := errors.Join(s.Validate(), mode.Validate(), actor.Validate()); err != nil {
		return nil, err
	}

	if mode == ScanUnload && !actor.BelongsTo(s.BranchFor(UnloadSide(s.status))) {
		return nil, s.misrouted(UnloadSide(s.status))
	}

	to, side, err := ResolveScan(mode, s.status)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsTo(s.BranchFor(side)) {
		return nil, s.misrouted(side)
	}

	if !s.status.CanTransitionTo(to) && !(mode == ScanReturns && IsReverseFlow(s.status, to)) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.status, to)
	}

	return s.moveTo(to, actor, TriggerScan, mode, at), nil
}

// Assign binds the shipment to a worker. A booked shipment moves to
// PICKUP_SCHEDULED and a transition is returned; a shipment already scheduled
// only changes worker and no transition is returned.
func (s *Shipment) Assign(workerID kernel.UUID, actor branch.Actor, at time.Time) (*Transition, error) {
	if err := errors.Join(s.Validate(), workerID.Validate()); err != nil {
		return nil, err
	}
	if err := actor.RequireBranch(s.originBranchID); err != nil {
		return nil, err
	}

	switch s.status {
	case Booked:
		s.assignedWorkerID = &workerID
		return s.moveTo(PickupScheduled, actor, TriggerAssignment, "", at), nil
	case PickupScheduled:
		s.assignedWorkerID = &workerID
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: cannot assign a shipment at %s", ErrIllegalTransition, s.status)
	}
}

// Hold flags the shipment as held without changing its status. Holding an
// already held shipment replaces the reason and keeps the original time.
func (s *Shipment) Hold(reason string, actor branch.Actor, at time.Time) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := s.requireParty(actor); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("hold reason")
	}
	if s.status.IsTerminal() {
		return fmt.Errorf("%w: cannot hold a shipment at %s", ErrIllegalTransition, s.status)
	}

	if s.heldAt == nil {
		s.heldAt = &at
	}
	s.holdReason = reason
	return nil
}

func (s *Shipment) ReleaseHold(actor branch.Actor) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := s.requireParty(actor); err != nil {
		return err
	}
	if s.heldAt == nil {
		return errs.NewValueIsInvalidError("shipment is not on hold")
	}

	s.heldAt = nil
	s.holdReason = ""
	return nil
}

// Reroute sends the shipment to a new destination. Only the origin may
// reroute. The delivery deadline is kept unless newDeadline is given.
func (s *Shipment) Reroute(
	newDestBranchID kernel.UUID,
	reason string,
	actor branch.Actor,
	newDeadline *time.Time,
) error {
	if err := errors.Join(s.Validate(), newDestBranchID.Validate()); err != nil {
		return err
	}
	if err := actor.RequireBranch(s.originBranchID); err != nil {
		return err
	}
	if s.status.IsTerminal() {
		return fmt.Errorf("%w: cannot reroute a shipment at %s", ErrIllegalTransition, s.status)
	}
	if newDestBranchID.IsEqual(s.destBranchID) {
		return errs.NewValueIsInvalidErrorWithCause("destination is invalid", errors.New("shipment is already routed there"))
	}

	oldDest := s.destBranchID
	actorID := actor.ID()
	s.reroutedFromBranchID = &oldDest
	s.reroutedBy = &actorID
	s.rerouteReason = strings.TrimSpace(reason)
	s.destBranchID = newDestBranchID
	if newDeadline != nil {
		s.expectedDeliveryDate = newDeadline
	}
	return nil
}

// Cancel withdraws a shipment that has not been picked up yet.
func (s *Shipment) Cancel(actor branch.Actor, at time.Time) (*Transition, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := actor.RequireBranch(s.originBranchID); err != nil {
		return nil, err
	}
	if !s.status.CanTransitionTo(Cancelled) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.status, Cancelled)
	}

	return s.moveTo(Cancelled, actor, TriggerCancellation, "", at), nil
}

// ReportException moves the shipment to EXCEPTION and flags it for follow-up.
func (s *Shipment) ReportException(actor branch.Actor, at time.Time) (*Transition, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireParty(actor); err != nil {
		return nil, err
	}
	if !s.status.CanTransitionTo(Exception) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.status, Exception)
	}

	s.hasException = true
	return s.moveTo(Exception, actor, TriggerException, "", at), nil
}

// PullEvents returns and clears the buffered domain events.
func (s *Shipment) PullEvents() []kernel.DomainEvent {
	events := s.events
	s.events = nil
	return events
}

func (s *Shipment) moveTo(to Status, actor branch.Actor, trigger Trigger, mode ScanMode, at time.Time) *Transition {
	from := s.status
	s.status = to
	s.stageTimes[to] = at
	s.statusChangedAt = at

	s.events = append(s.events, StatusChanged{
		ShipmentID:     s.id,
		TrackingNumber: s.trackingNumber,
		From:           from,
		To:             to,
		ActorID:        actor.ID(),
		BranchID:       actor.BranchID(),
		Trigger:        trigger,
		ScanMode:       mode,
		At:             at,
	})

	return newTransition(s.id, from, to, actor.ID(), trigger, at)
}

func (s *Shipment) misrouted(side CustodySide) error {
	return fmt.Errorf("%w: %s is handled by its %s branch", ErrMisroutedScan, s.trackingNumber, side)
}

func (s *Shipment) requireParty(actor branch.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !s.IsParty(actor.BranchID()) {
		return branch.ErrUnauthorizedBranchActor
	}
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setTrackingNumber(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	if len(trackingNumber) > maxTrackingNumberLength {
		return errs.NewValueIsOutOfRangeError("tracking number length", len(trackingNumber), 1, maxTrackingNumberLength)
	}
	s.trackingNumber = trackingNumber
	return nil
}

func (s *Shipment) setBranches(originBranchID, destBranchID kernel.UUID) error {
	if err := errors.Join(originBranchID.Validate(), destBranchID.Validate()); err != nil {
		return err
	}
	s.originBranchID = originBranchID
	s.destBranchID = destBranchID
	return nil
}

func (s *Shipment) setCODAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("cod amount is invalid", fmt.Errorf("%d is negative", amount))
	}
	s.codAmount = amount
	return nil
}

func (s *Shipment) setBookedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("booking time")
	}
	return nil
}
