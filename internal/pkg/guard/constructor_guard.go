// Package guard provides the ConstructorGuard defensive-programming pattern
// used to ensure commands, queries, and value objects are only created through
// their designated constructor functions. A zero-value struct fails validation,
// which keeps invariants checked at construction time from being bypassed.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil validation error for an object that was not properly constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether its embedding struct was built through a
// constructor. Embed one and set it with NewConstructorGuard inside the
// constructor; Validate then distinguishes constructed instances from zero
// values.
//
// Example:
//
//	type ApproveRefundCommand struct {
//	    refundID kernel.UUID
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewApproveRefundCommand(refundID kernel.UUID) (ApproveRefundCommand, error) {
//	    // validation...
//	    return ApproveRefundCommand{refundID: refundID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c ApproveRefundCommand) Validate() error {
//	    return c.guard.Validate(ErrApproveRefundCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the embedding object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed instances. For zero values it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
