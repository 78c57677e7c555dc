package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrProcessRefundCommandIsNotConstructed = errors.New(
		"ProcessRefundCommand must be created via NewProcessRefundCommand constructor",
	)
)

// ProcessRefundCommand represents an admin disbursing an approved refund.
// The disbursed amount may differ from the requested one (partial refunds);
// when no override is given the requested amount is disbursed in full.
type ProcessRefundCommand struct { //nolint:recvcheck //using for validation
	refundID       kernel.UUID
	processorID    kernel.UUID
	amountOverride *float64
	notes          *string

	guard guard.ConstructorGuard
}

// NewProcessRefundCommand creates a command to process an approved refund.
func NewProcessRefundCommand(
	refundID kernel.UUID,
	processorID kernel.UUID,
	amountOverride *float64,
	notes *string,
) (ProcessRefundCommand, error) {
	cmd := ProcessRefundCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRefundID(refundID); err != nil {
		return ProcessRefundCommand{}, err
	}

	if err := cmd.setProcessorID(processorID); err != nil {
		return ProcessRefundCommand{}, err
	}

	if err := cmd.setAmountOverride(amountOverride); err != nil {
		return ProcessRefundCommand{}, err
	}

	cmd.notes = notes

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessRefundCommand) Validate() error {
	return c.guard.Validate(ErrProcessRefundCommandIsNotConstructed)
}

// RefundID returns the id of the refund to process.
func (c ProcessRefundCommand) RefundID() kernel.UUID {
	return c.refundID
}

// ProcessorID returns the id of the admin processing the refund.
func (c ProcessRefundCommand) ProcessorID() kernel.UUID {
	return c.processorID
}

// AmountOverride returns the optional disbursed amount override.
func (c ProcessRefundCommand) AmountOverride() *float64 {
	return c.amountOverride
}

// Notes returns the optional processing notes.
func (c ProcessRefundCommand) Notes() *string {
	return c.notes
}

func (c *ProcessRefundCommand) setRefundID(refundID kernel.UUID) error {
	if err := refundID.Validate(); err != nil {
		return err
	}
	c.refundID = refundID
	return nil
}

func (c *ProcessRefundCommand) setProcessorID(processorID kernel.UUID) error {
	if err := processorID.Validate(); err != nil {
		return err
	}
	c.processorID = processorID
	return nil
}

func (c *ProcessRefundCommand) setAmountOverride(amountOverride *float64) error {
	if amountOverride != nil && *amountOverride <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amountOverride",
			errors.New("must be greater than zero"),
		)
	}
	c.amountOverride = amountOverride
	return nil
}
