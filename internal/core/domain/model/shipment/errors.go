package shipment

import "errors"

var (
	ErrShipmentNotFound  = errors.New("shipment not found")
	ErrMisroutedScan     = errors.New("shipment belongs to another branch")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrUnknownStatus     = errors.New("unknown status")

	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")
)
