package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfirmCashPaymentCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	providerID := kernel.NewUUID()
	cmd, err := commands.NewConfirmCashPaymentCommand(orderID, providerID, 42.50)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, providerID, cmd.ProviderID())
	assert.InDelta(t, 42.50, cmd.ClaimedTotal(), 0.0001)
}

func TestNewConfirmCashPaymentCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewConfirmCashPaymentCommand(kernel.UUID{}, kernel.NewUUID(), 42.50)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewConfirmCashPaymentCommand_InvalidProviderID(t *testing.T) {
	_, err := commands.NewConfirmCashPaymentCommand(kernel.NewUUID(), kernel.UUID{}, 42.50)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewConfirmCashPaymentCommand_NonPositiveTotal(t *testing.T) {
	for _, total := range []float64{0, -1} {
		_, err := commands.NewConfirmCashPaymentCommand(kernel.NewUUID(), kernel.NewUUID(), total)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	}
}
