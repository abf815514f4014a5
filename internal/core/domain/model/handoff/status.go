package handoff

import (
	"fmt"
	"strings"

	"courierops/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Pending
	Approved
	Rejected
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Approved:  "APPROVED",
		Rejected:  "REJECTED",
		Completed: "COMPLETED",
	}
}

func ParseStatus(raw string) (Status, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	for s, str := range getStatusStrings() {
		if s != Unknown && str == code {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("handoff status is invalid", fmt.Errorf("%q is not a handoff status", raw))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("handoff status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsOpen reports whether the handoff still blocks a new request for the
// same shipment.
func (s Status) IsOpen() bool {
	return s == Pending || s == Approved
}

// OpenStatuses returns the statuses that count as an open handoff.
func OpenStatuses() []Status {
	return []Status{Pending, Approved}
}

// Direction filters handoffs relative to a branch.
type Direction string

const (
	DirectionAny      Direction = ""
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

func ParseDirection(raw string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(raw)))
	switch d {
	case DirectionAny, DirectionInbound, DirectionOutbound:
		return d, nil
	case "all", "both":
		return DirectionAny, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("direction is invalid", fmt.Errorf("%q is not inbound or outbound", raw))
	}
}
