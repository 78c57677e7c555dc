package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// PaymentStatus represents the payment state of an order. It is an independent
// axis from the fulfillment Status: an order can be delivered while its cash
// payment is still pending, and a refunded order keeps whatever fulfillment
// status it reached.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending means payment has not yet been collected or confirmed.
	// Cash orders stay here until the provider confirms receipt on delivery.
	PaymentPending

	// PaymentCompleted means payment was collected and confirmed.
	PaymentCompleted

	// PaymentRefunded means the order's payment was returned to the customer
	// through a processed refund.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "unknown",
		PaymentPending:       "pending",
		PaymentCompleted:     "completed",
		PaymentRefunded:      "refunded",
	}
}

// PaymentStatusFromString parses the persisted string form of a payment status.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s && status != PaymentStatusUnknown {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if s != PaymentPending && s != PaymentCompleted && s != PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s),
		)
	}
	return nil
}

// String returns the snake_case name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// PaymentMethod identifies how the customer pays for an order.
// Informational for this engine: the only behavior that keys off it is the
// cash confirmation sub-flow, which applies to Cash orders.
type PaymentMethod string

const (
	Cash   PaymentMethod = "cash"
	Card   PaymentMethod = "card"
	Wallet PaymentMethod = "wallet"
)

// Validate checks if the PaymentMethod value is one of the supported methods.
func (m PaymentMethod) Validate() error {
	switch m {
	case Cash, Card, Wallet:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method is invalid",
			fmt.Errorf("%q is not a valid payment method", string(m)),
		)
	}
}

// String returns the persisted form of the payment method.
func (m PaymentMethod) String() string {
	return string(m)
}
