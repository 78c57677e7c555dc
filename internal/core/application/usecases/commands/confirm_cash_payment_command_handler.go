package commands

import (
	"context"
	"errors"
)

var (
	// ErrOrderDoesNotBelongToProvider is returned when a provider tries to
	// confirm cash for an order owned by someone else. Distinct from not-found
	// so the transport layer can map it to a 403 instead of a 404.
	ErrOrderDoesNotBelongToProvider = errors.New("order does not belong to the confirming provider")

	// ErrClaimedTotalMismatch is returned when the cash amount the operator
	// reports differs from the order total on record.
	ErrClaimedTotalMismatch = errors.New("claimed total does not match the order total")
)

// ConfirmCashPaymentCommandHandler flips a delivered cash order's payment
// status from pending to completed in two phases. Phase one reads the order
// and verifies ownership, the claimed total and cash-payability. Phase two
// issues the write, which repeats the ownership predicate and adds a
// `payment_status = 'pending'` guard so a refund processed between the read
// and the write cannot be silently overwritten back to completed.
type ConfirmCashPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewConfirmCashPaymentCommandHandler creates a handler for cash confirmation.
func NewConfirmCashPaymentCommandHandler(uowFactory OrderUoWFactory) ConfirmCashPaymentCommandHandler {
	return ConfirmCashPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the confirm command.
func (h *ConfirmCashPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmCashPaymentCommand) error {
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

	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !ord.IsOwnedBy(cmd.ProviderID()) {
		return ErrOrderDoesNotBelongToProvider
	}

	if cmd.ClaimedTotal() != ord.Total() {
		return ErrClaimedTotalMismatch
	}

	if err := ord.ConfirmCashPayment(); err != nil {
		return err
	}

	if err := orderRepo.ConfirmCashPayment(ctx, cmd.OrderID(), cmd.ProviderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
