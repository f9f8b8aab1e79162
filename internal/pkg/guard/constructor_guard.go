// Package guard holds ConstructorGuard, a marker embedded in commands, queries
// and value objects so a zero value can be told apart from a constructed one.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is only ever true when set by NewConstructorGuard.
//
//	type UpdateShopOrderCommand struct {
//	    orderNumber order.Number
//	    guard       guard.ConstructorGuard
//	}
//
//	func (c UpdateShopOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrUpdateShopOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

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
