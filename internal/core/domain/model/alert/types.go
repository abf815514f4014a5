package alert

import (
	"fmt"
	"strings"

	"courierops/internal/pkg/errs"
)

type Type string

const (
	TypeShipmentOverdue Type = "SHIPMENT_OVERDUE"
	TypeShipmentSLA     Type = "SHIPMENT_SLA"
	TypeHandoffOverdue  Type = "HANDOFF_OVERDUE"
	TypeSLARisk         Type = "SLA_RISK"
	TypeMaintenance     Type = "MAINTENANCE"
	TypeManual          Type = "MANUAL"
)

func Types() []Type {
	return []Type{
		TypeShipmentOverdue,
		TypeShipmentSLA,
		TypeHandoffOverdue,
		TypeSLARisk,
		TypeMaintenance,
		TypeManual,
	}
}

func ParseType(raw string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Types() {
		if t == known {
			return t, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("alert type is invalid", fmt.Errorf("%q is not an alert type", raw))
}

type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

func ParseSeverity(raw string) (Severity, error) {
	s := Severity(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return s, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("severity is invalid", fmt.Errorf("%q is not a severity", raw))
	}
}

type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusResolved Status = "RESOLVED"
)

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StatusOpen, StatusResolved:
		return s, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("alert status is invalid", fmt.Errorf("%q is not an alert status", raw))
	}
}

// Context keys understood by the alert package.
const (
	ContextShipmentID     = "shipment_id"
	ContextHandoffID      = "handoff_id"
	ContextTrackingNumber = "tracking_number"
	ContextDeadline       = "deadline"
	ContextMessage        = "message"
	ContextStartsAt       = "starts_at"
	ContextEndsAt         = "ends_at"
	ContextCapacityFactor = "capacity_factor"
)

// Context is the structured payload stored with an alert.
type Context map[string]any

func (c Context) String(key string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return ""
}
