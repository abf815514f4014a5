package commands

import (
	"errors"
	"strings"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/pkg/errs"
	"courierops/internal/pkg/guard"
)

var ErrScanShipmentCommandIsNotConstructed = errors.New(
	"ScanShipmentCommand must be created via NewScanShipmentCommand constructor",
)

// ScanShipmentCommand is one barcode scan taken by a branch device.
type ScanShipmentCommand struct { //nolint:recvcheck //using for validation
	actor          branch.Actor
	trackingNumber string
	mode           shipment.ScanMode
	scannedAt      time.Time
	geo            *kernel.GeoPoint
	notes          string

	guard guard.ConstructorGuard
}

// NewScanShipmentCommand builds a scan. geo may be nil.
func NewScanShipmentCommand(
	actor branch.Actor,
	trackingNumber string,
	mode shipment.ScanMode,
	scannedAt time.Time,
	geo *kernel.GeoPoint,
	notes string,
) (ScanShipmentCommand, error) {
	cmd := ScanShipmentCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setTrackingNumber(trackingNumber),
		cmd.setMode(mode),
		cmd.setScannedAt(scannedAt),
		cmd.setGeo(geo),
	); err != nil {
		return ScanShipmentCommand{}, err
	}

	return cmd, nil
}

func (c ScanShipmentCommand) Validate() error {
	return c.guard.Validate(ErrScanShipmentCommandIsNotConstructed)
}

func (c ScanShipmentCommand) Actor() branch.Actor     { return c.actor }
func (c ScanShipmentCommand) TrackingNumber() string  { return c.trackingNumber }
func (c ScanShipmentCommand) Mode() shipment.ScanMode { return c.mode }
func (c ScanShipmentCommand) ScannedAt() time.Time    { return c.scannedAt }
func (c ScanShipmentCommand) Geo() *kernel.GeoPoint   { return c.geo }
func (c ScanShipmentCommand) Notes() string           { return c.notes }

func (c *ScanShipmentCommand) setActor(actor branch.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ScanShipmentCommand) setTrackingNumber(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}

	c.trackingNumber = trackingNumber
	return nil
}

func (c *ScanShipmentCommand) setMode(mode shipment.ScanMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}

	c.mode = mode
	return nil
}

func (c *ScanShipmentCommand) setScannedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("scanned at")
	}

	c.scannedAt = at
	return nil
}

func (c *ScanShipmentCommand) setGeo(geo *kernel.GeoPoint) error {
	if geo == nil {
		return nil
	}
	if err := geo.Validate(); err != nil {
		return err
	}

	c.geo = geo
	return nil
}
