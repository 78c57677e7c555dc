package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrHoldInvariantViolated is returned when an order's settlement status and
	// hold fields disagree: OnHold without a hold, or a hold while Eligible.
	ErrHoldInvariantViolated = errors.New("settlement status and hold fields must change together")

	// ErrNotCashPayable is returned when cash payment confirmation is attempted
	// on an order that is not a delivered cash order awaiting payment.
	ErrNotCashPayable = errors.New("order is not awaiting cash payment confirmation")
)

// Order represents a customer purchase fulfilled by one provider. It is the
// aggregate root for the fulfillment state machine and carries three
// independent status axes:
//
//   - status: the fulfillment state machine (Pending → ... → Delivered)
//   - paymentStatus: pending / completed / refunded
//   - settlementStatus: eligible / on_hold, coupled to the hold fields
//
// Order maintains these invariants:
//   - settlementStatus is OnHold exactly when a SettlementHold is present;
//     any mutation touching one touches both
//   - fulfillment transitions follow the successor table in Status
//   - each transition stamps its status-specific timestamp exactly once
//   - can only be created through NewOrder or RestoreOrder
type Order struct {
	id          kernel.UUID
	providerID  kernel.UUID
	orderNumber string
	total       float64

	paymentMethod    PaymentMethod
	status           Status
	paymentStatus    PaymentStatus
	settlementStatus SettlementStatus
	hold             *SettlementHold

	createdAt        time.Time
	acceptedAt       *time.Time
	preparingAt      *time.Time
	readyAt          *time.Time
	outForDeliveryAt *time.Time
	deliveredAt      *time.Time
	cancelledAt      *time.Time

	isConstructed bool
}

// NewOrder creates a new Order at checkout: Pending fulfillment, pending
// payment, settlement-eligible, no hold.
func NewOrder(
	id kernel.UUID,
	providerID kernel.UUID,
	orderNumber string,
	paymentMethod PaymentMethod,
	total float64,
) (*Order, error) {
	o := &Order{
		status:           Pending,
		paymentStatus:    PaymentPending,
		settlementStatus: Eligible,
		createdAt:        time.Now().UTC(),
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setProviderID(providerID),
		o.setOrderNumber(orderNumber),
		o.setPaymentMethod(paymentMethod),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. All status axes are
// validated, including the coupling between settlement status and hold fields.
func RestoreOrder(
	id kernel.UUID,
	providerID kernel.UUID,
	orderNumber string,
	paymentMethod PaymentMethod,
	total float64,
	status Status,
	paymentStatus PaymentStatus,
	settlementStatus SettlementStatus,
	hold *SettlementHold,
	createdAt time.Time,
	stamps Stamps,
) (*Order, error) {
	o := &Order{
		createdAt:        createdAt,
		acceptedAt:       stamps.AcceptedAt,
		preparingAt:      stamps.PreparingAt,
		readyAt:          stamps.ReadyAt,
		outForDeliveryAt: stamps.OutForDeliveryAt,
		deliveredAt:      stamps.DeliveredAt,
		cancelledAt:      stamps.CancelledAt,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setProviderID(providerID),
		o.setOrderNumber(orderNumber),
		o.setPaymentMethod(paymentMethod),
		o.setTotal(total),
		status.Validate(),
		paymentStatus.Validate(),
		settlementStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.paymentStatus = paymentStatus
	o.settlementStatus = settlementStatus
	o.hold = hold

	if err := o.validateHoldInvariant(); err != nil {
		return nil, err
	}

	return o, nil
}

// Stamps groups the per-status transition timestamps for RestoreOrder.
type Stamps struct {
	AcceptedAt       *time.Time
	PreparingAt      *time.Time
	ReadyAt          *time.Time
	OutForDeliveryAt *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
}

// Validate ensures the Order was properly constructed and that the settlement
// hold invariant holds.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return o.validateHoldInvariant()
}

func (o *Order) validateHoldInvariant() error {
	onHold := o.settlementStatus == OnHold
	if onHold != (o.hold != nil) {
		return ErrHoldInvariantViolated
	}
	if o.hold != nil {
		return o.hold.Validate()
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ProviderID returns the id of the provider fulfilling the order.
func (o *Order) ProviderID() kernel.UUID {
	return o.providerID
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Total returns the order total.
func (o *Order) Total() float64 {
	return o.total
}

// PaymentMethod returns how the customer pays for the order.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// Status returns the current fulfillment status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// SettlementStatus returns the current settlement eligibility.
func (o *Order) SettlementStatus() SettlementStatus {
	return o.settlementStatus
}

// Hold returns the settlement hold, or nil when the order is eligible.
func (o *Order) Hold() *SettlementHold {
	return o.hold
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AcceptedAt returns when the order was accepted, or nil.
func (o *Order) AcceptedAt() *time.Time { return o.acceptedAt }

// PreparingAt returns when preparation started, or nil.
func (o *Order) PreparingAt() *time.Time { return o.preparingAt }

// ReadyAt returns when the order became ready, or nil.
func (o *Order) ReadyAt() *time.Time { return o.readyAt }

// OutForDeliveryAt returns when the order left for delivery, or nil.
func (o *Order) OutForDeliveryAt() *time.Time { return o.outForDeliveryAt }

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CancelledAt returns when the order was rejected or cancelled, or nil.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// Accept moves the order from Pending to Accepted and stamps acceptedAt.
// Payment status is left untouched.
func (o *Order) Accept(at time.Time) error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.acceptedAt = &at
	return nil
}

// Reject moves the order from Pending to Rejected and stamps cancelledAt.
// Payment status is left untouched.
func (o *Order) Reject(at time.Time) error {
	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancelledAt = &at
	return nil
}

// Advance moves the order one step along the fulfillment happy path and stamps
// the status-specific timestamp. When the current status has no successor
// (terminal states and Pending) Advance is a no-op and returns false.
func (o *Order) Advance(at time.Time) (Status, bool) {
	next, ok := o.status.Next()
	if !ok {
		return o.status, false
	}

	o.status = next
	switch next {
	case Preparing:
		o.preparingAt = &at
	case Ready:
		o.readyAt = &at
	case OutForDelivery:
		o.outForDeliveryAt = &at
	case Delivered:
		o.deliveredAt = &at
	default:
	}
	return next, true
}

// ConfirmCashPayment marks a delivered cash order's payment as completed.
// Valid only when the order is a cash order, delivered, with payment pending.
func (o *Order) ConfirmCashPayment() error {
	if o.paymentMethod != Cash || o.status != Delivered || o.paymentStatus != PaymentPending {
		return fmt.Errorf("%w: method=%s status=%s payment=%s",
			ErrNotCashPayable, o.paymentMethod, o.status, o.paymentStatus)
	}

	o.paymentStatus = PaymentCompleted
	return nil
}

// PlaceOnHold excludes the order from settlement. Settlement status and hold
// fields change together in this single mutation.
func (o *Order) PlaceOnHold(reason string, until time.Time) error {
	hold, err := NewSettlementHold(reason, until)
	if err != nil {
		return err
	}

	o.settlementStatus = OnHold
	o.hold = &hold
	return nil
}

// ReleaseHold makes the order settlement-eligible and clears the hold fields.
// Returns true when the order was on hold, false when this was a no-op.
func (o *Order) ReleaseHold() bool {
	if o.settlementStatus != OnHold {
		return false
	}

	o.settlementStatus = Eligible
	o.hold = nil
	return true
}

// MarkRefunded records a processed refund against the order: payment status
// becomes refunded and any settlement hold is released unconditionally.
func (o *Order) MarkRefunded() {
	o.paymentStatus = PaymentRefunded
	o.settlementStatus = Eligible
	o.hold = nil
}

// IsOwnedBy reports whether the order belongs to the given provider.
func (o *Order) IsOwnedBy(providerID kernel.UUID) bool {
	return o.providerID.IsEqual(providerID)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setProviderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("provider id is invalid", err)
	}
	o.providerID = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setTotal(total float64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total is invalid",
			fmt.Errorf("%f is negative", total))
	}
	o.total = total
	return nil
}
