// Package guard offers ConstructorGuard, a marker embedded in value objects
// and commands so that zero values fail validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing value went through its
// constructor. The zero value is "not constructed".
//
//	type ScanShipmentCommand struct {
//	    trackingNumber string
//	    guard          guard.ConstructorGuard
//	}
//
//	func (c ScanShipmentCommand) Validate() error {
//	    return c.guard.Validate(ErrScanShipmentCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard was never constructed.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
