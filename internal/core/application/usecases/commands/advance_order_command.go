package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrAdvanceOrderCommandIsNotConstructed = errors.New(
		"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
	)
)

// AdvanceOrderCommand moves an order one step along the fulfillment chain
// from the status the operator last observed. Carrying the observed status in
// the command is what makes the transition conditional: if the row has moved
// on since the operator's screen rendered, the write matches nothing.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	currentStatus order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance an order from the
// observed status to its successor.
func NewAdvanceOrderCommand(orderID kernel.UUID, currentStatus order.Status) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AdvanceOrderCommand{}, err
	}

	if err := cmd.setCurrentStatus(currentStatus); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order to advance.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CurrentStatus returns the status the operator observed before issuing the
// command.
func (c AdvanceOrderCommand) CurrentStatus() order.Status {
	return c.currentStatus
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setCurrentStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.currentStatus = status
	return nil
}
