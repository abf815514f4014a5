package services

import (
	"fmt"
	"time"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/pkg/errs"
)

const DefaultSLAWarningWindow = 4 * time.Hour

// SLAEvaluator decides whether a shipment or handoff breaches its deadline.
type SLAEvaluator struct {
	warningWindow time.Duration
	pauseOnHold   bool
}

// NewSLAEvaluator builds an evaluator. With pauseOnHold, held shipments are
// never reported.
func NewSLAEvaluator(warningWindow time.Duration, pauseOnHold bool) (SLAEvaluator, error) {
	if warningWindow <= 0 {
		return SLAEvaluator{}, errs.NewValueIsOutOfRangeError("sla warning window", warningWindow, "1ns", "unbounded")
	}
	return SLAEvaluator{warningWindow: warningWindow, pauseOnHold: pauseOnHold}, nil
}

func (e SLAEvaluator) WarningWindow() time.Duration {
	return e.warningWindow
}

// EvaluateShipment returns SHIPMENT_OVERDUE (critical, origin and
// destination) once the deadline has passed, or SHIPMENT_SLA (warning,
// destination) while it is within the warning window.
func (e SLAEvaluator) EvaluateShipment(s *shipment.Shipment, now time.Time) (*alert.SLABreach, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Status().IsTerminal() || s.ExpectedDeliveryDate() == nil {
		return nil, nil
	}
	if e.pauseOnHold && s.IsHeld() {
		return nil, nil
	}

	deadline := s.ExpectedDeliveryDate().UTC()
	ctx := alert.Context{
		alert.ContextShipmentID:     s.ID().String(),
		alert.ContextTrackingNumber: s.TrackingNumber(),
		alert.ContextDeadline:       deadline.Format(time.RFC3339),
	}

	switch {
	case s.IsOverdue(now):
		return &alert.SLABreach{
			Type:           alert.TypeShipmentOverdue,
			Severity:       alert.SeverityCritical,
			TargetBranches: []kernel.UUID{s.OriginBranchID(), s.DestBranchID()},
			Context:        ctx,
			Message:        fmt.Sprintf("Shipment %s missed its delivery deadline %s", s.TrackingNumber(), deadline.Format(time.RFC3339)),
		}, nil
	case s.DueWithin(now, e.warningWindow):
		return &alert.SLABreach{
			Type:           alert.TypeShipmentSLA,
			Severity:       alert.SeverityWarning,
			TargetBranches: []kernel.UUID{s.DestBranchID()},
			Context:        ctx,
			Message:        fmt.Sprintf("Shipment %s is due by %s", s.TrackingNumber(), deadline.Format(time.RFC3339)),
		}, nil
	default:
		return nil, nil
	}
}

// EvaluateHandoff returns HANDOFF_OVERDUE (critical, both branches) for an
// approved handoff past its expected hand-off time.
func (e SLAEvaluator) EvaluateHandoff(h *handoff.Handoff, now time.Time) (*alert.SLABreach, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if !h.IsOverdue(now) {
		return nil, nil
	}

	expected := h.ExpectedHandOffAt().UTC()
	return &alert.SLABreach{
		Type:           alert.TypeHandoffOverdue,
		Severity:       alert.SeverityCritical,
		TargetBranches: []kernel.UUID{h.OriginBranchID(), h.DestBranchID()},
		Context: alert.Context{
			alert.ContextHandoffID:  h.ID().String(),
			alert.ContextShipmentID: h.ShipmentID().String(),
			alert.ContextDeadline:   expected.Format(time.RFC3339),
		},
		Message: fmt.Sprintf("Handoff %s was expected by %s", h.ID(), expected.Format(time.RFC3339)),
	}, nil
}
