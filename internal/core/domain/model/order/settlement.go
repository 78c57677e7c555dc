package order

import (
	"fmt"
	"strings"
	"time"

	"marketplace/internal/pkg/errs"
)

// SettlementStatus represents an order's eligibility for inclusion in a
// settlement payout batch. It is protected by the hold invariant: an order is
// OnHold exactly when it carries a SettlementHold, and the two are always
// written together in a single mutation.
type SettlementStatus int

const (
	// SettlementStatusUnknown represents an invalid or undefined settlement status.
	SettlementStatusUnknown SettlementStatus = iota

	// Eligible means the order may be included in the next settlement batch.
	Eligible

	// OnHold means the order is temporarily excluded from settlement,
	// pending resolution of an open refund or dispute.
	OnHold
)

func getSettlementStatusStrings() map[SettlementStatus]string {
	return map[SettlementStatus]string{
		SettlementStatusUnknown: "unknown",
		Eligible:                "eligible",
		OnHold:                  "on_hold",
	}
}

// SettlementStatusFromString parses the persisted string form of a settlement status.
func SettlementStatusFromString(s string) (SettlementStatus, error) {
	for status, str := range getSettlementStatusStrings() {
		if str == s && status != SettlementStatusUnknown {
			return status, nil
		}
	}
	return SettlementStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"settlement status is invalid",
		fmt.Errorf("%q is not a valid settlement status", s),
	)
}

// Validate checks if the SettlementStatus value is valid.
func (s SettlementStatus) Validate() error {
	if s != Eligible && s != OnHold {
		return errs.NewValueIsInvalidErrorWithCause(
			"settlement status is invalid",
			fmt.Errorf("%d is not a valid settlement status", s),
		)
	}
	return nil
}

// String returns the snake_case name of the settlement status.
func (s SettlementStatus) String() string {
	if str, ok := getSettlementStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// SettlementHold is the reason-and-deadline pair carried by an order while it
// is excluded from settlement. Both fields are required: a hold without a
// reason or without a review deadline is invalid, which is what keeps the
// reason ⇔ on_hold invariant checkable at the type level.
type SettlementHold struct {
	reason string
	until  time.Time
}

// NewSettlementHold creates a hold with the given reason and review deadline.
// The reason must be non-blank and the deadline must be set.
func NewSettlementHold(reason string, until time.Time) (SettlementHold, error) {
	if strings.TrimSpace(reason) == "" {
		return SettlementHold{}, errs.NewValueIsRequiredError("hold reason")
	}
	if until.IsZero() {
		return SettlementHold{}, errs.NewValueIsRequiredError("hold until")
	}
	return SettlementHold{reason: reason, until: until}, nil
}

// Reason returns the hold reason, e.g. "refund_pending".
func (h SettlementHold) Reason() string {
	return h.reason
}

// Until returns the hold review deadline.
func (h SettlementHold) Until() time.Time {
	return h.until
}

// Validate checks the hold carries both a reason and a deadline.
func (h SettlementHold) Validate() error {
	if strings.TrimSpace(h.reason) == "" {
		return errs.NewValueIsRequiredError("hold reason")
	}
	if h.until.IsZero() {
		return errs.NewValueIsRequiredError("hold until")
	}
	return nil
}
