package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrConfirmCashPaymentCommandIsNotConstructed = errors.New(
		"ConfirmCashPaymentCommand must be created via NewConfirmCashPaymentCommand constructor",
	)
)

// ConfirmCashPaymentCommand records that a courier handed over the cash
// collected for a delivered order. The provider id comes from the caller's
// session, never from the request body, and the claimed total is checked
// against the stored one before any write.
type ConfirmCashPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	providerID   kernel.UUID
	claimedTotal float64

	guard guard.ConstructorGuard
}

// NewConfirmCashPaymentCommand creates a command to confirm cash collection.
func NewConfirmCashPaymentCommand(
	orderID kernel.UUID,
	providerID kernel.UUID,
	claimedTotal float64,
) (ConfirmCashPaymentCommand, error) {
	cmd := ConfirmCashPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ConfirmCashPaymentCommand{}, err
	}

	if err := cmd.setProviderID(providerID); err != nil {
		return ConfirmCashPaymentCommand{}, err
	}

	if err := cmd.setClaimedTotal(claimedTotal); err != nil {
		return ConfirmCashPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmCashPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmCashPaymentCommandIsNotConstructed)
}

// OrderID returns the id of the order whose payment is being confirmed.
func (c ConfirmCashPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProviderID returns the id of the provider confirming the payment.
func (c ConfirmCashPaymentCommand) ProviderID() kernel.UUID {
	return c.providerID
}

// ClaimedTotal returns the cash amount the operator reports collecting.
func (c ConfirmCashPaymentCommand) ClaimedTotal() float64 {
	return c.claimedTotal
}

func (c *ConfirmCashPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ConfirmCashPaymentCommand) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}
	c.providerID = providerID
	return nil
}

func (c *ConfirmCashPaymentCommand) setClaimedTotal(claimedTotal float64) error {
	if claimedTotal <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"claimedTotal",
			errors.New("must be greater than zero"),
		)
	}
	c.claimedTotal = claimedTotal
	return nil
}
