package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"
)

// ScanMode is the handheld operation a scan was taken in.
type ScanMode string

const (
	ScanUnload   ScanMode = "unload"
	ScanRoute    ScanMode = "route"
	ScanDelivery ScanMode = "delivery"
	ScanReturns  ScanMode = "returns"
)

func ScanModes() []ScanMode {
	return []ScanMode{ScanUnload, ScanRoute, ScanDelivery, ScanReturns}
}

func ParseScanMode(raw string) (ScanMode, error) {
	m := ScanMode(strings.ToLower(strings.TrimSpace(raw)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m ScanMode) Validate() error {
	switch m {
	case ScanUnload, ScanRoute, ScanDelivery, ScanReturns:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("scan mode is invalid", fmt.Errorf("%q is not a scan mode", string(m)))
	}
}

func (m ScanMode) String() string {
	return string(m)
}

// CustodySide names which of the shipment's two branches a rule refers to.
type CustodySide int

const (
	OriginSide CustodySide = iota + 1
	DestinationSide
)

func (c CustodySide) String() string {
	switch c {
	case OriginSide:
		return "origin"
	case DestinationSide:
		return "destination"
	default:
		return "unknown"
	}
}

type scanRule struct {
	to   Status
	side CustodySide
}

func getScanRules() map[ScanMode]map[Status]scanRule {
	return map[ScanMode]map[Status]scanRule{
		ScanUnload: {
			PickedUp:        {to: AtOriginHub, side: OriginSide},
			InTransit:       {to: AtDestinationHub, side: DestinationSide},
			ReturnInitiated: {to: Returned, side: OriginSide},
		},
		ScanRoute: {
			AtOriginHub:      {to: InTransit, side: OriginSide},
			AtDestinationHub: {to: OutForDelivery, side: DestinationSide},
			CustomsCleared:   {to: OutForDelivery, side: DestinationSide},
		},
		ScanDelivery: {
			OutForDelivery: {to: Delivered, side: DestinationSide},
		},
		ScanReturns: {
			OutForDelivery: {to: ReturnInitiated, side: DestinationSide},
			Delivered:      {to: ReturnInitiated, side: DestinationSide},
		},
	}
}

var scanRules = getScanRules()

// ResolveScan returns the status a scan in mode moves a shipment at from to,
// and which branch must be scanning.
func ResolveScan(mode ScanMode, from Status) (Status, CustodySide, error) {
	rule, ok := scanRules[mode][from]
	if !ok {
		return Unknown, 0, fmt.Errorf("%w: %s scan at %s", ErrIllegalTransition, mode, from)
	}
	return rule.to, rule.side, nil
}

// UnloadSide is the branch expected to unload a shipment at status s: the
// origin while it is being collected or returned, the destination otherwise.
func UnloadSide(s Status) CustodySide {
	if s == PickedUp || s == ReturnInitiated {
		return OriginSide
	}
	return DestinationSide
}

const maxNotesLength = 1000

// ScanEvent is the append-only record of an accepted scan.
type ScanEvent struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	mode       ScanMode
	branchID   kernel.UUID
	actorID    kernel.UUID
	scannedAt  time.Time
	geo        *kernel.GeoPoint
	notes      string
}

// NewScanEvent records a scan accepted for s. geo may be nil.
func NewScanEvent(
	s *Shipment,
	mode ScanMode,
	actor branch.Actor,
	scannedAt time.Time,
	geo *kernel.GeoPoint,
	notes string,
) (*ScanEvent, error) {
	if err := errors.Join(s.Validate(), mode.Validate(), actor.Validate()); err != nil {
		return nil, err
	}
	if geo != nil {
		if err := geo.Validate(); err != nil {
			return nil, err
		}
	}
	notes = strings.TrimSpace(notes)
	if len(notes) > maxNotesLength {
		return nil, errs.NewValueIsOutOfRangeError("notes length", len(notes), 0, maxNotesLength)
	}

	return &ScanEvent{
		id:         kernel.NewUUID(),
		shipmentID: s.ID(),
		mode:       mode,
		branchID:   actor.BranchID(),
		actorID:    actor.ID(),
		scannedAt:  scannedAt,
		geo:        geo,
		notes:      notes,
	}, nil
}

func RestoreScanEvent(
	id, shipmentID kernel.UUID,
	mode ScanMode,
	branchID, actorID kernel.UUID,
	scannedAt time.Time,
	geo *kernel.GeoPoint,
	notes string,
) *ScanEvent {
	return &ScanEvent{
		id:         id,
		shipmentID: shipmentID,
		mode:       mode,
		branchID:   branchID,
		actorID:    actorID,
		scannedAt:  scannedAt,
		geo:        geo,
		notes:      notes,
	}
}

func (e *ScanEvent) ID() kernel.UUID         { return e.id }
func (e *ScanEvent) ShipmentID() kernel.UUID { return e.shipmentID }
func (e *ScanEvent) Mode() ScanMode          { return e.mode }
func (e *ScanEvent) BranchID() kernel.UUID   { return e.branchID }
func (e *ScanEvent) ActorID() kernel.UUID    { return e.actorID }
func (e *ScanEvent) ScannedAt() time.Time    { return e.scannedAt }
func (e *ScanEvent) Geo() *kernel.GeoPoint   { return e.geo }
func (e *ScanEvent) Notes() string           { return e.notes }
