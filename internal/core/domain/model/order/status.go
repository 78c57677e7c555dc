package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
// It implements a state machine whose happy path is a strict total order:
// each state has at most one designated successor, looked up via Next.
//
// State transitions:
//
//	Pending ──┬──> Accepted ──> Preparing ──> Ready ──> OutForDelivery ──> Delivered
//	          │
//	          └──> Rejected
//
// Rejected, Delivered, and Cancelled are terminal: they have no successor and
// no operation in this package leaves them.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending is the initial status when an order is placed at checkout.
	// Orders in this status are waiting for the provider's accept/reject decision.
	Pending

	// Accepted indicates the provider has accepted the order.
	Accepted

	// Preparing indicates the provider is preparing the order.
	Preparing

	// Ready indicates the order is ready for handoff to delivery.
	Ready

	// OutForDelivery indicates the order is on its way to the customer.
	OutForDelivery

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled. Terminal.
	Cancelled

	// Rejected indicates the provider declined the order from Pending. Terminal.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "unknown",
		Pending:        "pending",
		Accepted:       "accepted",
		Preparing:      "preparing",
		Ready:          "ready",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
		Rejected:       "rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "pending",
		Accepted:       "accepted",
		Preparing:      "preparing",
		Ready:          "ready",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
		Rejected:       "rejected",
	}
}

// nextStatus is the static successor table for the fulfillment happy path.
// Pending is deliberately absent: leaving Pending requires an explicit
// accept or reject decision, not a generic advance.
func nextStatus() map[Status]Status {
	return map[Status]Status{
		Accepted:       Preparing,
		Preparing:      Ready,
		Ready:          OutForDelivery,
		OutForDelivery: Delivered,
	}
}

// StatusFromString parses the persisted string form of a status.
// Returns an error for strings that do not name a valid status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status as persisted and displayed.
// Implements fmt.Stringer; safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Next returns the designated successor of the status and true, or the zero
// status and false when no successor exists (terminal states, Pending, and
// invalid values). There is no skip-ahead: callers walk the chain one step
// at a time.
func (s Status) Next() (Status, bool) {
	next, ok := nextStatus()[s]
	return next, ok
}

// IsTerminal reports whether the status admits no further fulfillment
// transitions: Delivered, Cancelled, and Rejected.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Rejected
}

// Accept transitions the status to Accepted.
// Valid only from Pending.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to accept", s.String()),
		)
	}
	return Accepted, nil
}

// Reject transitions the status to Rejected.
// Valid only from Pending.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to reject", s.String()),
		)
	}
	return Rejected, nil
}
