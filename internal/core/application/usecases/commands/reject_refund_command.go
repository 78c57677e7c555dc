package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrRejectRefundCommandIsNotConstructed = errors.New(
		"RejectRefundCommand must be created via NewRejectRefundCommand constructor",
	)
)

// RejectRefundCommand represents an admin's decision to deny a pending refund
// request. A denial must be explainable to the customer, so non-blank review
// notes are mandatory and checked here, before any state is touched.
type RejectRefundCommand struct { //nolint:recvcheck //using for validation
	refundID   kernel.UUID
	reviewerID kernel.UUID
	notes      string

	guard guard.ConstructorGuard
}

// NewRejectRefundCommand creates a command to reject a pending refund.
func NewRejectRefundCommand(
	refundID kernel.UUID,
	reviewerID kernel.UUID,
	notes string,
) (RejectRefundCommand, error) {
	cmd := RejectRefundCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRefundID(refundID); err != nil {
		return RejectRefundCommand{}, err
	}

	if err := cmd.setReviewerID(reviewerID); err != nil {
		return RejectRefundCommand{}, err
	}

	if err := cmd.setNotes(notes); err != nil {
		return RejectRefundCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectRefundCommand) Validate() error {
	return c.guard.Validate(ErrRejectRefundCommandIsNotConstructed)
}

// RefundID returns the id of the refund to reject.
func (c RejectRefundCommand) RefundID() kernel.UUID {
	return c.refundID
}

// ReviewerID returns the id of the admin rejecting the refund.
func (c RejectRefundCommand) ReviewerID() kernel.UUID {
	return c.reviewerID
}

// Notes returns the mandatory rejection notes.
func (c RejectRefundCommand) Notes() string {
	return c.notes
}

func (c *RejectRefundCommand) setRefundID(refundID kernel.UUID) error {
	if err := refundID.Validate(); err != nil {
		return err
	}
	c.refundID = refundID
	return nil
}

func (c *RejectRefundCommand) setReviewerID(reviewerID kernel.UUID) error {
	if err := reviewerID.Validate(); err != nil {
		return err
	}
	c.reviewerID = reviewerID
	return nil
}

func (c *RejectRefundCommand) setNotes(notes string) error {
	if strings.TrimSpace(notes) == "" {
		return errs.NewValueIsRequiredError("notes")
	}
	c.notes = notes
	return nil
}
