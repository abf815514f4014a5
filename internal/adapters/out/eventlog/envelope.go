// Package eventlog renders domain events as JSON envelopes, the wire format
// shared by every event publisher, and provides a publisher that only writes
// them to the log.
package eventlog

import (
	"encoding/json"
	"time"

	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
)

// Envelope is the published form of a domain event.
type Envelope struct {
	Event       string         `json:"event"`
	AggregateID string         `json:"aggregate_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Payload     map[string]any `json:"payload,omitempty"`
}

func NewEnvelope(event kernel.DomainEvent) Envelope {
	return Envelope{
		Event:       event.EventName(),
		AggregateID: event.AggregateID().String(),
		OccurredAt:  event.OccurredAt().UTC(),
		Payload:     payload(event),
	}
}

func Marshal(event kernel.DomainEvent) ([]byte, error) {
	return json.Marshal(NewEnvelope(event))
}

func payload(event kernel.DomainEvent) map[string]any {
	switch e := event.(type) {
	case shipment.StatusChanged:
		p := map[string]any{
			"shipment_id":     e.ShipmentID.String(),
			"tracking_number": e.TrackingNumber,
			"old_status":      e.From.String(),
			"new_status":      e.To.String(),
			"actor_id":        e.ActorID.String(),
			"branch_id":       e.BranchID.String(),
			"trigger":         string(e.Trigger),
			"timestamp":       e.At.UTC(),
		}
		if e.ScanMode != "" {
			p["scan_mode"] = e.ScanMode.String()
		}
		return p
	case handoff.StatusChanged:
		p := map[string]any{
			"handoff_id":       e.HandoffID.String(),
			"shipment_id":      e.ShipmentID.String(),
			"origin_branch_id": e.OriginBranchID.String(),
			"dest_branch_id":   e.DestBranchID.String(),
			"new_status":       e.To.String(),
			"actor_id":         e.ActorID.String(),
			"timestamp":        e.At.UTC(),
		}
		if e.From != handoff.Unknown {
			p["old_status"] = e.From.String()
		}
		return p
	default:
		return nil
	}
}
