// Package guard holds the constructor guard embedded by commands, queries and
// value objects that must only be built through their New... functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built by its constructor. A zero value
// fails validation, so a command declared as a literal is rejected by its handler.
//
// Example:
//
//	var ErrSubmitOfferCommandIsNotConstructed = errors.New("...")
//
//	type SubmitOfferCommand struct {
//	    orderID int64
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c SubmitOfferCommand) Validate() error {
//	    return c.guard.Validate(ErrSubmitOfferCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
