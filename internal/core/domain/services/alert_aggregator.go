package services

import (
	"fmt"
	"slices"
	"time"

	"courierops/internal/core/domain/model/kernel"
)

const (
	// StuckThreshold is how long an in-progress shipment may sit in one
	// status before it counts as stuck.
	StuckThreshold = 24 * time.Hour
	// AwaitingPickupThreshold is how long after booking a shipment may wait
	// for pickup.
	AwaitingPickupThreshold = 4 * time.Hour

	DefaultCODBacklogThreshold = 10
)

// Priority orders operational alerts; higher sorts first.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityHigh:
		return "HIGH"
	case PriorityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// BranchSnapshot holds the counts the aggregator ranks. Queries fill it.
type BranchSnapshot struct {
	SLABreached    int
	OpenExceptions int
	Stuck          int
	AwaitingPickup int
	CODAwaiting    int
	OutForDelivery int
}

// OperationalAlert is one dashboard entry.
type OperationalAlert struct {
	Key         string
	Priority    Priority
	Title       string
	Message     string
	ActionLabel string
	ActionRoute string
	Count       int
}

// AlertAggregator turns a branch snapshot into a ranked alert list. It is
// pure and writes nothing.
type AlertAggregator struct {
	codBacklogThreshold int
}

func NewAlertAggregator(codBacklogThreshold int) AlertAggregator {
	if codBacklogThreshold < 0 {
		codBacklogThreshold = DefaultCODBacklogThreshold
	}
	return AlertAggregator{codBacklogThreshold: codBacklogThreshold}
}

func (a AlertAggregator) Aggregate(branchID kernel.UUID, snap BranchSnapshot) []OperationalAlert {
	route := func(filter string) string {
		return fmt.Sprintf("/branches/%s/shipments?filter=%s", branchID, filter)
	}

	candidates := []OperationalAlert{
		{
			Key:         "sla_breached",
			Priority:    PriorityCritical,
			Title:       "SLA breached",
			Message:     fmt.Sprintf("%d shipments are past their delivery deadline", snap.SLABreached),
			ActionLabel: "Review overdue shipments",
			ActionRoute: route("sla_breached"),
			Count:       snap.SLABreached,
		},
		{
			Key:         "open_exceptions",
			Priority:    PriorityHigh,
			Title:       "Open exceptions",
			Message:     fmt.Sprintf("%d shipments have unresolved exceptions", snap.OpenExceptions),
			ActionLabel: "Resolve exceptions",
			ActionRoute: route("exceptions"),
			Count:       snap.OpenExceptions,
		},
		{
			Key:         "stuck",
			Priority:    PriorityHigh,
			Title:       "Stuck shipments",
			Message:     fmt.Sprintf("%d shipments have not moved for %s", snap.Stuck, StuckThreshold),
			ActionLabel: "Investigate stuck shipments",
			ActionRoute: route("stuck"),
			Count:       snap.Stuck,
		},
		{
			Key:         "awaiting_pickup",
			Priority:    PriorityMedium,
			Title:       "Awaiting pickup",
			Message:     fmt.Sprintf("%d shipments booked over %s ago are not picked up", snap.AwaitingPickup, AwaitingPickupThreshold),
			ActionLabel: "Schedule pickups",
			ActionRoute: route("awaiting_pickup"),
			Count:       snap.AwaitingPickup,
		},
		{
			Key:         "cod_backlog",
			Priority:    PriorityMedium,
			Title:       "COD awaiting reconciliation",
			Message:     fmt.Sprintf("%d delivered cash-on-delivery shipments are not reconciled", snap.CODAwaiting),
			ActionLabel: "Reconcile COD",
			ActionRoute: route("cod_pending"),
			Count:       snap.CODAwaiting,
		},
		{
			Key:         "out_for_delivery",
			Priority:    PriorityLow,
			Title:       "Out for delivery",
			Message:     fmt.Sprintf("%d shipments are out for delivery", snap.OutForDelivery),
			ActionLabel: "Track deliveries",
			ActionRoute: route("out_for_delivery"),
			Count:       snap.OutForDelivery,
		},
	}

	out := make([]OperationalAlert, 0, len(candidates))
	for _, c := range candidates {
		if c.Count <= 0 {
			continue
		}
		if c.Key == "cod_backlog" && c.Count <= a.codBacklogThreshold {
			continue
		}
		out = append(out, c)
	}

	slices.SortStableFunc(out, func(x, y OperationalAlert) int {
		return int(y.Priority) - int(x.Priority)
	})
	return out
}
