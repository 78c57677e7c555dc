package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
)

// AcceptOrderCommandHandler moves a pending order to accepted and stamps the
// acceptance time. The transition is a single conditional update guarded by
// `status = 'pending'`, so two operator sessions racing on the same order
// resolve deterministically: the loser gets a stale-state error instead of a
// lost update.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the accept command. Payment status is left untouched.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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
	if err := orderRepo.UpdateStatus(ctx, cmd.OrderID(), order.Pending, order.Accepted, time.Now().UTC()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
