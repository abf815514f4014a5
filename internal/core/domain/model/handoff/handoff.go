package handoff

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/pkg/errs"
)

var (
	ErrDuplicateHandoffRequest = errors.New("shipment already has an open handoff")
	ErrIllegalHandoffState     = errors.New("handoff is not in a state that allows this operation")

	ErrHandoffIsNotConstructed = errors.New("Handoff must be created via Request or RestoreHandoff")
)

// Handoff is a request to move custody of a shipment from its origin branch
// to a destination branch by a deadline.
type Handoff struct {
	id                kernel.UUID
	shipmentID        kernel.UUID
	originBranchID    kernel.UUID
	destBranchID      kernel.UUID
	status            Status
	requestedBy       kernel.UUID
	requestedAt       time.Time
	expectedHandOffAt time.Time

	approvedBy *kernel.UUID
	approvedAt *time.Time

	rejectedBy      *kernel.UUID
	rejectedAt      *time.Time
	rejectionReason string

	completedAt *time.Time

	observedStatus Status
	events         []kernel.DomainEvent

	isConstructed bool
}

// Snapshot is the flat persisted form of a Handoff.
type Snapshot struct {
	ID                kernel.UUID
	ShipmentID        kernel.UUID
	OriginBranchID    kernel.UUID
	DestBranchID      kernel.UUID
	Status            Status
	RequestedBy       kernel.UUID
	RequestedAt       time.Time
	ExpectedHandOffAt time.Time
	ApprovedBy        *kernel.UUID
	ApprovedAt        *time.Time
	RejectedBy        *kernel.UUID
	RejectedAt        *time.Time
	RejectionReason   string
	CompletedAt       *time.Time
}

// Request opens a PENDING handoff of s from the actor's branch to
// destBranchID. The actor must hold custody of the shipment. Checking for an
// already open handoff needs storage and is left to the caller.
func Request(
	s *shipment.Shipment,
	destBranchID kernel.UUID,
	expectedHandOffAt time.Time,
	actor branch.Actor,
	at time.Time,
) (*Handoff, error) {
	if err := errors.Join(s.Validate(), destBranchID.Validate()); err != nil {
		return nil, err
	}
	if err := actor.RequireBranch(s.CustodyBranchID()); err != nil {
		return nil, err
	}
	if s.Status().IsTerminal() {
		return nil, fmt.Errorf("%w: shipment %s is %s", ErrIllegalHandoffState, s.TrackingNumber(), s.Status())
	}
	if destBranchID.IsEqual(actor.BranchID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("destination branch is invalid", errors.New("destination must differ from origin"))
	}
	if expectedHandOffAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("expected hand-off time")
	}

	h := &Handoff{
		id:                kernel.NewUUID(),
		shipmentID:        s.ID(),
		originBranchID:    actor.BranchID(),
		destBranchID:      destBranchID,
		status:            Pending,
		requestedBy:       actor.ID(),
		requestedAt:       at,
		expectedHandOffAt: expectedHandOffAt,
		isConstructed:     true,
	}
	h.raise(Unknown, actor, at)
	return h, nil
}

func RestoreHandoff(snap Snapshot) (*Handoff, error) {
	if err := errors.Join(
		snap.ID.Validate(),
		snap.ShipmentID.Validate(),
		snap.OriginBranchID.Validate(),
		snap.DestBranchID.Validate(),
		snap.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if snap.OriginBranchID.IsEqual(snap.DestBranchID) {
		return nil, errs.NewValueIsInvalidErrorWithCause("destination branch is invalid", errors.New("destination must differ from origin"))
	}

	return &Handoff{
		id:                snap.ID,
		shipmentID:        snap.ShipmentID,
		originBranchID:    snap.OriginBranchID,
		destBranchID:      snap.DestBranchID,
		status:            snap.Status,
		requestedBy:       snap.RequestedBy,
		requestedAt:       snap.RequestedAt,
		expectedHandOffAt: snap.ExpectedHandOffAt,
		approvedBy:        snap.ApprovedBy,
		approvedAt:        snap.ApprovedAt,
		rejectedBy:        snap.RejectedBy,
		rejectedAt:        snap.RejectedAt,
		rejectionReason:   snap.RejectionReason,
		completedAt:       snap.CompletedAt,
		observedStatus:    snap.Status,
		isConstructed:     true,
	}, nil
}

func (h *Handoff) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHandoffIsNotConstructed
	}
	return nil
}

func (h *Handoff) Snapshot() Snapshot {
	return Snapshot{
		ID:                h.id,
		ShipmentID:        h.shipmentID,
		OriginBranchID:    h.originBranchID,
		DestBranchID:      h.destBranchID,
		Status:            h.status,
		RequestedBy:       h.requestedBy,
		RequestedAt:       h.requestedAt,
		ExpectedHandOffAt: h.expectedHandOffAt,
		ApprovedBy:        h.approvedBy,
		ApprovedAt:        h.approvedAt,
		RejectedBy:        h.rejectedBy,
		RejectedAt:        h.rejectedAt,
		RejectionReason:   h.rejectionReason,
		CompletedAt:       h.completedAt,
	}
}

func (h *Handoff) ID() kernel.UUID              { return h.id }
func (h *Handoff) ShipmentID() kernel.UUID      { return h.shipmentID }
func (h *Handoff) OriginBranchID() kernel.UUID  { return h.originBranchID }
func (h *Handoff) DestBranchID() kernel.UUID    { return h.destBranchID }
func (h *Handoff) Status() Status               { return h.status }
func (h *Handoff) RequestedBy() kernel.UUID     { return h.requestedBy }
func (h *Handoff) ExpectedHandOffAt() time.Time { return h.expectedHandOffAt }
func (h *Handoff) ApprovedBy() *kernel.UUID     { return h.approvedBy }
func (h *Handoff) ApprovedAt() *time.Time       { return h.approvedAt }
func (h *Handoff) RejectionReason() string      { return h.rejectionReason }
func (h *Handoff) CompletedAt() *time.Time      { return h.completedAt }

// ObservedStatus is the status the handoff had when it was read.
func (h *Handoff) ObservedStatus() Status {
	return h.observedStatus
}

// IsOverdue reports whether an approved handoff has missed its deadline.
func (h *Handoff) IsOverdue(now time.Time) bool {
	return h.status == Approved && now.After(h.expectedHandOffAt)
}

// Approve is reserved to the destination branch.
func (h *Handoff) Approve(actor branch.Actor, at time.Time) error {
	if err := h.authorizeDecision(actor); err != nil {
		return err
	}

	actorID := actor.ID()
	h.approvedBy = &actorID
	h.approvedAt = &at
	h.transition(Approved, actor, at)
	return nil
}

// Reject is reserved to the destination branch. The reason is optional.
func (h *Handoff) Reject(reason string, actor branch.Actor, at time.Time) error {
	if err := h.authorizeDecision(actor); err != nil {
		return err
	}

	actorID := actor.ID()
	h.rejectedBy = &actorID
	h.rejectedAt = &at
	h.rejectionReason = strings.TrimSpace(reason)
	h.transition(Rejected, actor, at)
	return nil
}

// Complete records that the destination acknowledged the hand-over. It does
// not touch the shipment: custody follows the shipment's status, and the
// destination's unload scan is what moves it.
func (h *Handoff) Complete(actor branch.Actor, at time.Time) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if err := actor.RequireBranch(h.destBranchID); err != nil {
		return err
	}
	if h.status != Approved {
		return fmt.Errorf("%w: cannot complete a %s handoff", ErrIllegalHandoffState, h.status)
	}

	h.completedAt = &at
	h.transition(Completed, actor, at)
	return nil
}

func (h *Handoff) PullEvents() []kernel.DomainEvent {
	events := h.events
	h.events = nil
	return events
}

func (h *Handoff) authorizeDecision(actor branch.Actor) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if err := actor.RequireBranch(h.destBranchID); err != nil {
		return err
	}
	if h.status != Pending {
		return fmt.Errorf("%w: handoff is already %s", ErrIllegalHandoffState, h.status)
	}
	return nil
}

func (h *Handoff) transition(to Status, actor branch.Actor, at time.Time) {
	from := h.status
	h.status = to
	h.raise(from, actor, at)
}

func (h *Handoff) raise(from Status, actor branch.Actor, at time.Time) {
	h.events = append(h.events, StatusChanged{
		HandoffID:      h.id,
		ShipmentID:     h.shipmentID,
		OriginBranchID: h.originBranchID,
		DestBranchID:   h.destBranchID,
		From:           from,
		To:             h.status,
		ActorID:        actor.ID(),
		At:             at,
	})
}
