package alert

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/pkg/errs"
)

var ErrAlertIsNotConstructed = errors.New("Alert must be created via NewAlert or RestoreAlert")

const maxMessageLength = 500

// Alert is a BranchAlert: an operational notice for one branch.
type Alert struct {
	id          kernel.UUID
	branchID    kernel.UUID
	alertType   Type
	severity    Severity
	status      Status
	context     Context
	dedupeKey   string
	message     string
	raisedBy    *kernel.UUID
	triggeredAt time.Time
	resolvedAt  *time.Time
	resolvedBy  *kernel.UUID

	isConstructed bool
}

type Snapshot struct {
	ID          kernel.UUID
	BranchID    kernel.UUID
	Type        Type
	Severity    Severity
	Status      Status
	Context     Context
	DedupeKey   string
	Message     string
	RaisedBy    *kernel.UUID
	TriggeredAt time.Time
	ResolvedAt  *time.Time
	ResolvedBy  *kernel.UUID
}

// NewAlert opens an alert. The dedupe key is derived from alertType and ctx;
// a context that does not identify its subject is rejected.
func NewAlert(
	branchID kernel.UUID,
	alertType Type,
	severity Severity,
	ctx Context,
	message string,
	raisedBy *kernel.UUID,
	at time.Time,
) (*Alert, error) {
	if _, err := ParseType(string(alertType)); err != nil {
		return nil, err
	}
	if _, err := ParseSeverity(string(severity)); err != nil {
		return nil, err
	}
	if err := branchID.Validate(); err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if len(message) > maxMessageLength {
		return nil, errs.NewValueIsOutOfRangeError("message length", len(message), 0, maxMessageLength)
	}

	key, err := DedupeKey(alertType, ctx)
	if err != nil {
		return nil, err
	}

	return &Alert{
		id:            kernel.NewUUID(),
		branchID:      branchID,
		alertType:     alertType,
		severity:      severity,
		status:        StatusOpen,
		context:       maps.Clone(ctx),
		dedupeKey:     key,
		message:       message,
		raisedBy:      raisedBy,
		triggeredAt:   at,
		isConstructed: true,
	}, nil
}

// NewManualAlert raises a MANUAL alert about a shipment at the actor's
// branch, which must be the shipment's origin or destination.
func NewManualAlert(
	s *shipment.Shipment,
	severity Severity,
	message string,
	actor branch.Actor,
	at time.Time,
) (*Alert, error) {
	if err := errors.Join(s.Validate(), actor.Validate()); err != nil {
		return nil, err
	}
	if !s.IsParty(actor.BranchID()) {
		return nil, branch.ErrUnauthorizedBranchActor
	}
	if strings.TrimSpace(message) == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}

	actorID := actor.ID()
	return NewAlert(actor.BranchID(), TypeManual, severity, Context{
		ContextShipmentID:     s.ID().String(),
		ContextTrackingNumber: s.TrackingNumber(),
		ContextMessage:        strings.TrimSpace(message),
	}, message, &actorID, at)
}

func RestoreAlert(snap Snapshot) (*Alert, error) {
	if err := errors.Join(snap.ID.Validate(), snap.BranchID.Validate()); err != nil {
		return nil, err
	}
	if _, err := ParseType(string(snap.Type)); err != nil {
		return nil, err
	}
	if _, err := ParseSeverity(string(snap.Severity)); err != nil {
		return nil, err
	}
	if _, err := ParseStatus(string(snap.Status)); err != nil {
		return nil, err
	}

	return &Alert{
		id:            snap.ID,
		branchID:      snap.BranchID,
		alertType:     snap.Type,
		severity:      snap.Severity,
		status:        snap.Status,
		context:       maps.Clone(snap.Context),
		dedupeKey:     snap.DedupeKey,
		message:       snap.Message,
		raisedBy:      snap.RaisedBy,
		triggeredAt:   snap.TriggeredAt,
		resolvedAt:    snap.ResolvedAt,
		resolvedBy:    snap.ResolvedBy,
		isConstructed: true,
	}, nil
}

// DedupeKey identifies what an alert is about, independent of branch.
func DedupeKey(alertType Type, ctx Context) (string, error) {
	switch alertType {
	case TypeShipmentOverdue, TypeShipmentSLA, TypeSLARisk, TypeManual:
		id := ctx.String(ContextShipmentID)
		if id == "" {
			return "", errs.NewValueIsRequiredError(ContextShipmentID)
		}
		return "shipment:" + id, nil
	case TypeHandoffOverdue:
		id := ctx.String(ContextHandoffID)
		if id == "" {
			return "", errs.NewValueIsRequiredError(ContextHandoffID)
		}
		return "handoff:" + id, nil
	case TypeMaintenance:
		w, err := MaintenanceWindowFromContext(ctx)
		if err != nil {
			return "", err
		}
		return "maintenance:" + w.StartsAt().Format(time.RFC3339), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("alert type is invalid", fmt.Errorf("%q", string(alertType)))
	}
}

func (a *Alert) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAlertIsNotConstructed
	}
	return nil
}

func (a *Alert) Snapshot() Snapshot {
	return Snapshot{
		ID:          a.id,
		BranchID:    a.branchID,
		Type:        a.alertType,
		Severity:    a.severity,
		Status:      a.status,
		Context:     maps.Clone(a.context),
		DedupeKey:   a.dedupeKey,
		Message:     a.message,
		RaisedBy:    a.raisedBy,
		TriggeredAt: a.triggeredAt,
		ResolvedAt:  a.resolvedAt,
		ResolvedBy:  a.resolvedBy,
	}
}

func (a *Alert) ID() kernel.UUID          { return a.id }
func (a *Alert) BranchID() kernel.UUID    { return a.branchID }
func (a *Alert) Type() Type               { return a.alertType }
func (a *Alert) Severity() Severity       { return a.severity }
func (a *Alert) Status() Status           { return a.status }
func (a *Alert) Context() Context         { return maps.Clone(a.context) }
func (a *Alert) DedupeKey() string        { return a.dedupeKey }
func (a *Alert) Message() string          { return a.message }
func (a *Alert) TriggeredAt() time.Time   { return a.triggeredAt }
func (a *Alert) ResolvedAt() *time.Time   { return a.resolvedAt }
func (a *Alert) ResolvedBy() *kernel.UUID { return a.resolvedBy }

func (a *Alert) IsOpen() bool {
	return a.status == StatusOpen
}

// MaintenanceWindow parses the window of a MAINTENANCE alert.
func (a *Alert) MaintenanceWindow() (MaintenanceWindow, error) {
	if a.alertType != TypeMaintenance {
		return MaintenanceWindow{}, errs.NewValueIsInvalidErrorWithCause("alert type is invalid", fmt.Errorf("%s carries no maintenance window", a.alertType))
	}
	return MaintenanceWindowFromContext(a.context)
}

// Resolve closes the alert. Resolving a resolved alert changes nothing and
// reports false.
func (a *Alert) Resolve(actor branch.Actor, at time.Time) (bool, error) {
	if err := a.Validate(); err != nil {
		return false, err
	}
	if err := actor.RequireBranch(a.branchID); err != nil {
		return false, err
	}
	if a.status == StatusResolved {
		return false, nil
	}

	actorID := actor.ID()
	a.status = StatusResolved
	a.resolvedAt = &at
	a.resolvedBy = &actorID
	return true, nil
}
