package commands

import (
	"context"
	"time"
)

// RejectRefundCommandHandler moves a pending refund to rejected and then
// releases the linked order's settlement hold. The two writes are independent
// conditional updates, not one transaction: the refund write is guarded by
// `status = 'pending'`, the hold release by `settlement_status = 'on_hold'`.
// A release that matches zero rows is a silent no-op, which makes the whole
// command safe against concurrent repeats and against orders whose hold was
// already lifted by another path.
type RejectRefundCommandHandler struct {
	uowFactory RefundUoWFactory
}

// NewRejectRefundCommandHandler creates a handler for refund rejection.
func NewRejectRefundCommandHandler(uowFactory RefundUoWFactory) RejectRefundCommandHandler {
	return RejectRefundCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reject command.
func (h *RejectRefundCommandHandler) Handle(ctx context.Context, cmd RejectRefundCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	refundRepo := uow.RefundRepository()
	orderRepo := uow.OrderRepository()

	ref, err := refundRepo.Get(ctx, cmd.RefundID())
	if err != nil {
		return err
	}

	if err := refundRepo.Reject(ctx, cmd.RefundID(), cmd.ReviewerID(), cmd.Notes(), time.Now().UTC()); err != nil {
		return err
	}

	// Released only if still on hold. Orders released earlier, or never
	// held, pass through untouched.
	_, err = orderRepo.ReleaseHold(ctx, ref.OrderID())
	return err
}
