package shipment

import (
	"time"

	"courierops/internal/core/domain/model/kernel"
)

// Trigger names the operation that caused a status change.
type Trigger string

const (
	TriggerScan         Trigger = "scan"
	TriggerAssignment   Trigger = "assignment"
	TriggerCancellation Trigger = "cancellation"
	TriggerException    Trigger = "exception"
)

// Transition is the append-only audit row written once per accepted status
// change.
type Transition struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	from       Status
	to         Status
	actorID    kernel.UUID
	trigger    Trigger
	occurredAt time.Time
}

func newTransition(shipmentID kernel.UUID, from, to Status, actorID kernel.UUID, trigger Trigger, at time.Time) *Transition {
	return &Transition{
		id:         kernel.NewUUID(),
		shipmentID: shipmentID,
		from:       from,
		to:         to,
		actorID:    actorID,
		trigger:    trigger,
		occurredAt: at,
	}
}

func RestoreTransition(
	id, shipmentID kernel.UUID,
	from, to Status,
	actorID kernel.UUID,
	trigger Trigger,
	occurredAt time.Time,
) *Transition {
	return &Transition{
		id:         id,
		shipmentID: shipmentID,
		from:       from,
		to:         to,
		actorID:    actorID,
		trigger:    trigger,
		occurredAt: occurredAt,
	}
}

func (t *Transition) ID() kernel.UUID         { return t.id }
func (t *Transition) ShipmentID() kernel.UUID { return t.shipmentID }
func (t *Transition) From() Status            { return t.from }
func (t *Transition) To() Status              { return t.to }
func (t *Transition) ActorID() kernel.UUID    { return t.actorID }
func (t *Transition) Trigger() Trigger        { return t.trigger }
func (t *Transition) OccurredAt() time.Time   { return t.occurredAt }
