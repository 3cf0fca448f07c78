// Package guard lets value objects and commands tell a constructed instance
// apart from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is not usable. Only the
// type's constructor sets it, so Validate fails for struct literals.
//
// Example:
//
//	type AllocateOrderCommand struct {
//	    quantity float64
//	    guard    guard.ConstructorGuard
//	}
//
//	func (c AllocateOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrAllocateOrderCommandIsNotConstructed)
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
