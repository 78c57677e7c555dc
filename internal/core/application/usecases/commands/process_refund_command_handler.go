package commands

import (
	"context"
	"time"
)

// ProcessRefundCommandHandler disburses an approved refund and settles the
// linked order: payment status becomes refunded and the settlement hold is
// lifted unconditionally. Unlike rejection, processing clears the order's
// hold fields regardless of their current value, because a refunded order
// must never remain held no matter what intermediate states it went through.
type ProcessRefundCommandHandler struct {
	uowFactory RefundUoWFactory
}

// NewProcessRefundCommandHandler creates a handler for refund processing.
func NewProcessRefundCommandHandler(uowFactory RefundUoWFactory) ProcessRefundCommandHandler {
	return ProcessRefundCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the disbursement command. The refund write is guarded by
// `status = 'approved'`; the order write that follows is unconditional.
func (h *ProcessRefundCommandHandler) Handle(ctx context.Context, cmd ProcessRefundCommand) error {
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

	amount := ref.Amount()
	if cmd.AmountOverride() != nil {
		amount = *cmd.AmountOverride()
	}

	if err := refundRepo.Process(ctx, cmd.RefundID(), cmd.ProcessorID(), amount, cmd.Notes(), time.Now().UTC()); err != nil {
		return err
	}

	return orderRepo.ReleaseHoldAndMarkRefunded(ctx, ref.OrderID())
}
