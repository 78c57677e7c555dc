package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
)

// RejectOrderCommandHandler moves a pending order to rejected and stamps the
// cancellation time. Guarded by `status = 'pending'` like acceptance, so
// accept/reject races on the same order cannot both win.
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRejectOrderCommandHandler creates a handler for order rejection.
func NewRejectOrderCommandHandler(uowFactory OrderUoWFactory) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reject command. Payment status is left untouched.
func (h *RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err := orderRepo.UpdateStatus(ctx, cmd.OrderID(), order.Pending, order.Rejected, time.Now().UTC()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
