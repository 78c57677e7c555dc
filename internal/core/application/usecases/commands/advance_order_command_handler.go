package commands

import (
	"context"
	"time"
)

// AdvanceOrderCommandHandler moves an order one step along the fulfillment
// chain and stamps the per-status timestamp for the step reached. A command
// issued from a status with no successor (delivered, or any terminal status)
// is a silent no-op.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderCommandHandler creates a handler for fulfillment progression.
func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the advance command.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	next, ok := cmd.CurrentStatus().Next()
	if !ok {
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err := orderRepo.UpdateStatus(ctx, cmd.OrderID(), cmd.CurrentStatus(), next, time.Now().UTC()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
