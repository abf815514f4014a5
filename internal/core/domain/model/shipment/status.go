package shipment

import (
	"fmt"
	"slices"
	"strings"

	"courierops/internal/pkg/errs"
)

// Status is a shipment's position in its lifecycle.
//
//	BOOKED ─> PICKUP_SCHEDULED ─> PICKED_UP ─> AT_ORIGIN_HUB ─> IN_TRANSIT ─>
//	AT_DESTINATION_HUB ─> [CUSTOMS_CLEARED] ─> OUT_FOR_DELIVERY ─> DELIVERED
//
//	OUT_FOR_DELIVERY ─> RETURN_INITIATED ─> RETURNED
//	DELIVERED ─> RETURN_INITIATED (returns scan only)
//
// CANCELLED is reachable before pickup, EXCEPTION from any non-terminal status.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	Booked
	PickupScheduled
	PickedUp
	AtOriginHub
	InTransit
	AtDestinationHub
	CustomsCleared
	OutForDelivery
	Delivered
	ReturnInitiated
	Returned
	Cancelled
	Exception
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		Booked:           "BOOKED",
		PickupScheduled:  "PICKUP_SCHEDULED",
		PickedUp:         "PICKED_UP",
		AtOriginHub:      "AT_ORIGIN_HUB",
		InTransit:        "IN_TRANSIT",
		AtDestinationHub: "AT_DESTINATION_HUB",
		CustomsCleared:   "CUSTOMS_CLEARED",
		OutForDelivery:   "OUT_FOR_DELIVERY",
		Delivered:        "DELIVERED",
		ReturnInitiated:  "RETURN_INITIATED",
		Returned:         "RETURNED",
		Cancelled:        "CANCELLED",
		Exception:        "EXCEPTION",
	}
}

// getLegacyTokens maps free-text values found in historical records onto
// the canonical vocabulary. Keys are normalized (see normalizeStatusToken).
func getLegacyTokens() map[string]Status {
	return map[string]Status{
		"pending":          Booked,
		"new":              Booked,
		"created":          Booked,
		"scheduled":        PickupScheduled,
		"assigned":         PickupScheduled,
		"pickup_pending":   PickupScheduled,
		"collected":        PickedUp,
		"picked":           PickedUp,
		"received":         AtOriginHub,
		"at_hub":           AtOriginHub,
		"origin_hub":       AtOriginHub,
		"shipped":          InTransit,
		"transit":          InTransit,
		"dispatched":       InTransit,
		"arrived":          AtDestinationHub,
		"destination_hub":  AtDestinationHub,
		"cleared":          CustomsCleared,
		"customs":          CustomsCleared,
		"ofd":              OutForDelivery,
		"out":              OutForDelivery,
		"complete":         Delivered,
		"completed":        Delivered,
		"done":             Delivered,
		"rto":              ReturnInitiated,
		"return":           ReturnInitiated,
		"returning":        ReturnInitiated,
		"return_requested": ReturnInitiated,
		"rto_delivered":    Returned,
		"canceled":         Cancelled,
		"void":             Cancelled,
		"voided":           Cancelled,
		"failed":           Exception,
		"problem":          Exception,
		"lost":             Exception,
		"damaged":          Exception,
	}
}

// lifecycle is the forward ordering used by IsForward.
func lifecycle() []Status {
	return []Status{
		Booked,
		PickupScheduled,
		PickedUp,
		AtOriginHub,
		InTransit,
		AtDestinationHub,
		CustomsCleared,
		OutForDelivery,
		Delivered,
	}
}

func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Booked:           {PickupScheduled, Cancelled, Exception},
		PickupScheduled:  {PickedUp, Cancelled, Exception},
		PickedUp:         {AtOriginHub, InTransit, Exception},
		AtOriginHub:      {InTransit, Exception},
		InTransit:        {AtDestinationHub, Exception},
		AtDestinationHub: {CustomsCleared, OutForDelivery, Exception},
		CustomsCleared:   {OutForDelivery, Exception},
		OutForDelivery:   {Delivered, ReturnInitiated, Exception},
		ReturnInitiated:  {Returned, Exception},
	}
}

// getReverseFlow lists the edges that break forward ordering. They are only
// reachable through a returns scan, never through CanTransitionTo.
func getReverseFlow() map[Status][]Status {
	return map[Status][]Status{
		Delivered: {ReturnInitiated},
	}
}

var (
	statusStrings = getStatusStrings()
	legacyTokens  = getLegacyTokens()
	transitions   = getTransitions()
	reverseFlow   = getReverseFlow()
	lifecycleSeq  = lifecycle()
)

// Statuses returns every valid status in declaration order.
func Statuses() []Status {
	out := make([]Status, 0, len(statusStrings)-1)
	for s := Booked; s <= Exception; s++ {
		out = append(out, s)
	}
	return out
}

// Lifecycle returns the ordered forward lifecycle.
func Lifecycle() []Status {
	return slices.Clone(lifecycleSeq)
}

// TerminalStatuses returns DELIVERED, RETURNED, CANCELLED and EXCEPTION.
func TerminalStatuses() []Status {
	return []Status{Delivered, Returned, Cancelled, Exception}
}

// OpenStatuses returns every valid status that is not terminal.
func OpenStatuses() []Status {
	out := make([]Status, 0, len(statusStrings))
	for _, s := range Statuses() {
		if !s.IsTerminal() {
			out = append(out, s)
		}
	}
	return out
}

// ParseStatus maps canonical codes and legacy tokens onto a Status. Case is
// ignored, and '-', ' ' and '_' are interchangeable separators.
func ParseStatus(raw string) (Status, error) {
	token := normalizeStatusToken(raw)
	if token == "" {
		return Unknown, fmt.Errorf("%w: empty value", ErrUnknownStatus)
	}

	code := strings.ToUpper(token)
	for s, str := range statusStrings {
		if s != Unknown && str == code {
			return s, nil
		}
	}

	if s, ok := legacyTokens[token]; ok {
		return s, nil
	}

	return Unknown, fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

func normalizeStatusToken(raw string) string {
	parts := strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '\t'
	})
	return strings.Join(parts, "_")
}

func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return statusStrings[Unknown]
}

func (s Status) IsTerminal() bool {
	return slices.Contains(TerminalStatuses(), s)
}

// IsInProgress reports whether the shipment is between pickup scheduling and
// the last hub, where it is expected to keep moving.
func (s Status) IsInProgress() bool {
	return s >= PickupScheduled && s <= CustomsCleared
}

// CanTransitionTo reports whether to is a regular forward edge from s.
func (s Status) CanTransitionTo(to Status) bool {
	return slices.Contains(transitions[s], to)
}

// AllowedTransitions returns the statuses directly reachable from s.
func (s Status) AllowedTransitions() []Status {
	return slices.Clone(transitions[s])
}

// IsReverseFlow reports whether from -> to is a registered reverse edge.
func IsReverseFlow(from, to Status) bool {
	return slices.Contains(reverseFlow[from], to)
}

// IsForward reports whether to sits later than from in the lifecycle. Statuses
// off the lifecycle (returns, cancellation, exception) are never forward.
func IsForward(from, to Status) bool {
	fi := slices.Index(lifecycleSeq, from)
	ti := slices.Index(lifecycleSeq, to)
	return fi >= 0 && ti >= 0 && ti > fi
}
