// Package guard protects value objects and commands from zero-value construction.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be built through their constructor.
// Its zero value reports the object as not constructed.
//
// Example:
//
//	type CancelShipmentCommand struct {
//	    shipmentID kernel.UUID
//	    guard      guard.ConstructorGuard
//	}
//
//	func (c CancelShipmentCommand) Validate() error {
//	    return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
