package refund

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrRefundIsNotConstructed is returned when a Refund instance was not created
	// through the NewRefund or RestoreRefund factory methods.
	ErrRefundIsNotConstructed = errors.New("Refund must be created via NewRefund or RestoreRefund")

	// ErrRejectionNotesRequired is returned when a reject is attempted without
	// non-blank reviewer notes.
	ErrRejectionNotesRequired = errors.New("rejection notes are required")
)

// ProviderAction records how the provider chose to handle the refund before it
// reached the admin queue. Informational: it narrows UI affordances but gates
// no transition in this engine.
type ProviderAction string

const (
	CashRefund      ProviderAction = "cash_refund"
	ResendItem      ProviderAction = "resend_item"
	EscalateToAdmin ProviderAction = "escalate_to_admin"
)

// Refund is a monetary claim against one order. It is created by an upstream
// request flow in Pending status, mutated only by an admin reviewer, and
// becomes immutable once it reaches a terminal status.
//
// The requested amount and the actually disbursed processedAmount may
// legitimately differ (partial settlement). The customerConfirmed /
// confirmationDeadline pair belongs to the courier cash-refund confirmation
// sub-flow and is pass-through state here: no transition reads or writes it.
type Refund struct {
	id         kernel.UUID
	orderID    kernel.UUID
	customerID kernel.UUID
	providerID kernel.UUID

	amount          float64
	processedAmount *float64
	reason          string

	status           Status
	escalatedToAdmin bool
	providerAction   *ProviderAction

	customerConfirmed    bool
	confirmationDeadline *time.Time

	reviewedBy  *kernel.UUID
	reviewedAt  *time.Time
	reviewNotes *string

	processedBy     *kernel.UUID
	processedAt     *time.Time
	processingNotes *string

	createdAt time.Time

	isConstructed bool
}

// NewRefund creates a refund request in Pending status.
func NewRefund(
	id kernel.UUID,
	orderID kernel.UUID,
	customerID kernel.UUID,
	providerID kernel.UUID,
	amount float64,
	reason string,
) (*Refund, error) {
	r := &Refund{
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setCustomerID(customerID),
		r.setProviderID(providerID),
		r.setAmount(amount),
		r.setReason(reason),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRefund reconstructs a Refund from persistence.
func RestoreRefund(
	id kernel.UUID,
	orderID kernel.UUID,
	customerID kernel.UUID,
	providerID kernel.UUID,
	amount float64,
	reason string,
	status Status,
	state RestoredState,
) (*Refund, error) {
	r := &Refund{
		processedAmount:      state.ProcessedAmount,
		escalatedToAdmin:     state.EscalatedToAdmin,
		providerAction:       state.ProviderAction,
		customerConfirmed:    state.CustomerConfirmed,
		confirmationDeadline: state.ConfirmationDeadline,
		reviewedBy:           state.ReviewedBy,
		reviewedAt:           state.ReviewedAt,
		reviewNotes:          state.ReviewNotes,
		processedBy:          state.ProcessedBy,
		processedAt:          state.ProcessedAt,
		processingNotes:      state.ProcessingNotes,
		createdAt:            state.CreatedAt,
		isConstructed:        true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setCustomerID(customerID),
		r.setProviderID(providerID),
		r.setAmount(amount),
		r.setReason(reason),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	r.status = status
	return r, nil
}

// RestoredState groups the optional and audit fields for RestoreRefund.
type RestoredState struct {
	ProcessedAmount      *float64
	EscalatedToAdmin     bool
	ProviderAction       *ProviderAction
	CustomerConfirmed    bool
	ConfirmationDeadline *time.Time
	ReviewedBy           *kernel.UUID
	ReviewedAt           *time.Time
	ReviewNotes          *string
	ProcessedBy          *kernel.UUID
	ProcessedAt          *time.Time
	ProcessingNotes      *string
	CreatedAt            time.Time
}

// Validate ensures the Refund was properly constructed.
func (r *Refund) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRefundIsNotConstructed
	}
	return nil
}

// ID returns the refund's unique identifier.
func (r *Refund) ID() kernel.UUID { return r.id }

// OrderID returns the id of the order the claim is against.
func (r *Refund) OrderID() kernel.UUID { return r.orderID }

// CustomerID returns the claiming customer's id.
func (r *Refund) CustomerID() kernel.UUID { return r.customerID }

// ProviderID returns the id of the provider that fulfilled the order.
func (r *Refund) ProviderID() kernel.UUID { return r.providerID }

// Amount returns the requested refund amount.
func (r *Refund) Amount() float64 { return r.amount }

// ProcessedAmount returns the actually disbursed amount, or nil before processing.
func (r *Refund) ProcessedAmount() *float64 { return r.processedAmount }

// Reason returns the customer's stated reason.
func (r *Refund) Reason() string { return r.reason }

// Status returns the current review status.
func (r *Refund) Status() Status { return r.status }

// EscalatedToAdmin reports whether the upstream provider flow escalated the
// claim to platform-admin attention.
func (r *Refund) EscalatedToAdmin() bool { return r.escalatedToAdmin }

// ProviderAction returns the provider's chosen handling, or nil.
func (r *Refund) ProviderAction() *ProviderAction { return r.providerAction }

// CustomerConfirmed reports whether the customer confirmed a courier cash refund.
func (r *Refund) CustomerConfirmed() bool { return r.customerConfirmed }

// ConfirmationDeadline returns the customer confirmation deadline, or nil.
func (r *Refund) ConfirmationDeadline() *time.Time { return r.confirmationDeadline }

// ReviewedBy returns the reviewer's id, or nil before review.
func (r *Refund) ReviewedBy() *kernel.UUID { return r.reviewedBy }

// ReviewedAt returns when the claim was reviewed, or nil.
func (r *Refund) ReviewedAt() *time.Time { return r.reviewedAt }

// ReviewNotes returns the reviewer's notes, or nil.
func (r *Refund) ReviewNotes() *string { return r.reviewNotes }

// ProcessedBy returns the processor's id, or nil before processing.
func (r *Refund) ProcessedBy() *kernel.UUID { return r.processedBy }

// ProcessedAt returns when the refund was disbursed, or nil.
func (r *Refund) ProcessedAt() *time.Time { return r.processedAt }

// ProcessingNotes returns the processor's notes, or nil.
func (r *Refund) ProcessingNotes() *string { return r.processingNotes }

// CreatedAt returns when the refund was requested.
func (r *Refund) CreatedAt() time.Time { return r.createdAt }

// Approve moves the refund from Pending to Approved and writes the review
// audit fields. Notes are optional. No side effect on the linked order.
func (r *Refund) Approve(reviewerID kernel.UUID, notes *string, at time.Time) error {
	if err := reviewerID.Validate(); err != nil {
		return err
	}

	newStatus, err := r.status.Approve()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.reviewedBy = &reviewerID
	r.reviewedAt = &at
	r.reviewNotes = notes
	return nil
}

// Reject moves the refund from Pending to Rejected and writes the review audit
// fields. Notes are mandatory: blank or whitespace-only notes fail validation
// before any state change.
func (r *Refund) Reject(reviewerID kernel.UUID, notes string, at time.Time) error {
	if err := reviewerID.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(notes) == "" {
		return ErrRejectionNotesRequired
	}

	newStatus, err := r.status.Reject()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.reviewedBy = &reviewerID
	r.reviewedAt = &at
	r.reviewNotes = &notes
	return nil
}

// Process moves the refund from Approved to Processed, recording the disbursed
// amount and the processing audit fields. A nil amountOverride disburses the
// originally requested amount.
func (r *Refund) Process(processorID kernel.UUID, amountOverride *float64, notes *string, at time.Time) error {
	if err := processorID.Validate(); err != nil {
		return err
	}

	disbursed := r.amount
	if amountOverride != nil {
		if *amountOverride < 0 {
			return errs.NewValueIsInvalidErrorWithCause("processed amount is invalid",
				fmt.Errorf("%f is negative", *amountOverride))
		}
		disbursed = *amountOverride
	}

	newStatus, err := r.status.Process()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.processedAmount = &disbursed
	r.processedBy = &processorID
	r.processedAt = &at
	r.processingNotes = notes
	return nil
}

func (r *Refund) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Refund) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("order id is invalid", err)
	}
	r.orderID = id
	return nil
}

func (r *Refund) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customer id is invalid", err)
	}
	r.customerID = id
	return nil
}

func (r *Refund) setProviderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("provider id is invalid", err)
	}
	r.providerID = id
	return nil
}

func (r *Refund) setAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%f is not greater than 0", amount))
	}
	r.amount = amount
	return nil
}

func (r *Refund) setReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	r.reason = reason
	return nil
}
