package order_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlementStatus(t *testing.T) {
	t.Run("should round trip valid settlement statuses", func(t *testing.T) {
		for _, status := range []order.SettlementStatus{order.Eligible, order.OnHold} {
			t.Run(status.String(), func(t *testing.T) {
				require.NoError(t, status.Validate())

				parsed, err := order.SettlementStatusFromString(status.String())
				require.NoError(t, err)
				assert.Equal(t, status, parsed)
			})
		}
	})

	t.Run("should reject unknown values", func(t *testing.T) {
		require.Error(t, order.SettlementStatusUnknown.Validate())
		require.Error(t, order.SettlementStatus(100).Validate())

		_, err := order.SettlementStatusFromString("unknown")
		require.Error(t, err)
		_, err = order.SettlementStatusFromString("held")
		require.Error(t, err)
	})
}

func TestNewSettlementHold(t *testing.T) {
	until := time.Now().UTC().Add(72 * time.Hour)

	t.Run("should create hold with reason and deadline", func(t *testing.T) {
		hold, err := order.NewSettlementHold("refund_pending", until)

		require.NoError(t, err)
		assert.Equal(t, "refund_pending", hold.Reason())
		assert.Equal(t, until, hold.Until())
		require.NoError(t, hold.Validate())
	})

	t.Run("should require a non-blank reason", func(t *testing.T) {
		for _, reason := range []string{"", "   ", "\t"} {
			_, err := order.NewSettlementHold(reason, until)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsRequired)
		}
	})

	t.Run("should require a deadline", func(t *testing.T) {
		_, err := order.NewSettlementHold("refund_pending", time.Time{})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail validation on zero value hold", func(t *testing.T) {
		var hold order.SettlementHold
		require.Error(t, hold.Validate())
	})
}
