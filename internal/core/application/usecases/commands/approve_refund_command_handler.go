package commands

import (
	"context"
	"time"
)

// ApproveRefundCommandHandler moves a pending refund to approved and records
// the reviewer. Approval has no effect on the linked order: the settlement
// hold survives until the refund is processed or rejected.
type ApproveRefundCommandHandler struct {
	uowFactory RefundUoWFactory
}

// NewApproveRefundCommandHandler creates a handler for refund approval.
func NewApproveRefundCommandHandler(uowFactory RefundUoWFactory) ApproveRefundCommandHandler {
	return ApproveRefundCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the approve command. The write is guarded by
// `status = 'pending'`, so a refund already reviewed by another admin
// surfaces as a stale-state error rather than a double review.
func (h *ApproveRefundCommandHandler) Handle(ctx context.Context, cmd ApproveRefundCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	refundRepo := uow.RefundRepository()

	return refundRepo.Approve(ctx, cmd.RefundID(), cmd.ReviewerID(), cmd.Notes(), time.Now().UTC())
}
