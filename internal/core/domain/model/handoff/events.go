package handoff

import (
	"strings"
	"time"

	"courierops/internal/core/domain/model/kernel"
)

// StatusChanged is raised when a handoff is requested, decided or completed.
// From is Unknown for a new request.
type StatusChanged struct {
	HandoffID      kernel.UUID
	ShipmentID     kernel.UUID
	OriginBranchID kernel.UUID
	DestBranchID   kernel.UUID
	From           Status
	To             Status
	ActorID        kernel.UUID
	At             time.Time
}

// EventName is handoff.requested, handoff.approved, handoff.rejected or
// handoff.completed.
func (e StatusChanged) EventName() string {
	if e.To == Pending {
		return "handoff.requested"
	}
	return "handoff." + strings.ToLower(e.To.String())
}

func (e StatusChanged) AggregateID() kernel.UUID {
	return e.HandoffID
}

func (e StatusChanged) OccurredAt() time.Time {
	return e.At
}
