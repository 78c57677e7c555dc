package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrApproveRefundCommandIsNotConstructed = errors.New(
		"ApproveRefundCommand must be created via NewApproveRefundCommand constructor",
	)
)

// ApproveRefundCommand represents an admin's decision to approve a pending
// refund request. Review notes are optional for approval.
type ApproveRefundCommand struct { //nolint:recvcheck //using for validation
	refundID   kernel.UUID
	reviewerID kernel.UUID
	notes      *string

	guard guard.ConstructorGuard
}

// NewApproveRefundCommand creates a command to approve a pending refund.
func NewApproveRefundCommand(
	refundID kernel.UUID,
	reviewerID kernel.UUID,
	notes *string,
) (ApproveRefundCommand, error) {
	cmd := ApproveRefundCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRefundID(refundID); err != nil {
		return ApproveRefundCommand{}, err
	}

	if err := cmd.setReviewerID(reviewerID); err != nil {
		return ApproveRefundCommand{}, err
	}

	cmd.notes = notes

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveRefundCommand) Validate() error {
	return c.guard.Validate(ErrApproveRefundCommandIsNotConstructed)
}

// RefundID returns the id of the refund to approve.
func (c ApproveRefundCommand) RefundID() kernel.UUID {
	return c.refundID
}

// ReviewerID returns the id of the admin approving the refund.
func (c ApproveRefundCommand) ReviewerID() kernel.UUID {
	return c.reviewerID
}

// Notes returns the optional review notes.
func (c ApproveRefundCommand) Notes() *string {
	return c.notes
}

func (c *ApproveRefundCommand) setRefundID(refundID kernel.UUID) error {
	if err := refundID.Validate(); err != nil {
		return err
	}
	c.refundID = refundID
	return nil
}

func (c *ApproveRefundCommand) setReviewerID(reviewerID kernel.UUID) error {
	if err := reviewerID.Validate(); err != nil {
		return err
	}
	c.reviewerID = reviewerID
	return nil
}
