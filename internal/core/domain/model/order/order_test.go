package order_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	validProviderID := kernel.NewUUID()

	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		o, err := order.NewOrder(validID, validProviderID, "ORD-1001", order.Cash, 149.5)

		require.NoError(t, err)
		assert.NotNil(t, o)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.True(t, o.ProviderID().IsEqual(validProviderID))
		assert.Equal(t, "ORD-1001", o.OrderNumber())
		assert.Equal(t, order.Cash, o.PaymentMethod())
		assert.InDelta(t, 149.5, o.Total(), 0.001)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, order.Eligible, o.SettlementStatus())
		assert.Nil(t, o.Hold())
		assert.False(t, o.CreatedAt().IsZero())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, validProviderID, "ORD-1001", order.Cash, 100)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should fail with invalid provider UUID", func(t *testing.T) {
		var invalidProviderID kernel.UUID

		o, err := order.NewOrder(validID, invalidProviderID, "ORD-1001", order.Cash, 100)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "provider id is invalid")
	})

	t.Run("should fail with empty order number", func(t *testing.T) {
		o, err := order.NewOrder(validID, validProviderID, "", order.Cash, 100)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "order number")
	})

	t.Run("should fail with invalid payment method", func(t *testing.T) {
		o, err := order.NewOrder(validID, validProviderID, "ORD-1001", order.PaymentMethod("cheque"), 100)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "payment method is invalid")
	})

	t.Run("should fail with negative total", func(t *testing.T) {
		o, err := order.NewOrder(validID, validProviderID, "ORD-1001", order.Cash, -1)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "total is invalid")
	})

	t.Run("should accept zero total", func(t *testing.T) {
		o, err := order.NewOrder(validID, validProviderID, "ORD-1001", order.Card, 0)

		require.NoError(t, err)
		assert.InDelta(t, 0, o.Total(), 0.001)
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, validProviderID, "", order.Cash, -5)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "order number")
		assert.Contains(t, err.Error(), "total is invalid")
	})
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	providerID := kernel.NewUUID()
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should restore order with hold when on hold", func(t *testing.T) {
		hold, err := order.NewSettlementHold("refund_pending", createdAt.Add(72*time.Hour))
		require.NoError(t, err)

		o, err := order.RestoreOrder(id, providerID, "ORD-1001", order.Cash, 200,
			order.Delivered, order.PaymentCompleted, order.OnHold, &hold,
			createdAt, order.Stamps{})

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.OnHold, o.SettlementStatus())
		require.NotNil(t, o.Hold())
		assert.Equal(t, "refund_pending", o.Hold().Reason())
	})

	t.Run("should restore transition stamps", func(t *testing.T) {
		acceptedAt := createdAt.Add(time.Minute)
		deliveredAt := createdAt.Add(time.Hour)

		o, err := order.RestoreOrder(id, providerID, "ORD-1001", order.Card, 200,
			order.Delivered, order.PaymentCompleted, order.Eligible, nil,
			createdAt, order.Stamps{AcceptedAt: &acceptedAt, DeliveredAt: &deliveredAt})

		require.NoError(t, err)
		require.NotNil(t, o.AcceptedAt())
		assert.Equal(t, acceptedAt, *o.AcceptedAt())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, deliveredAt, *o.DeliveredAt())
		assert.Nil(t, o.PreparingAt())
	})

	t.Run("should fail when on hold without hold fields", func(t *testing.T) {
		o, err := order.RestoreOrder(id, providerID, "ORD-1001", order.Cash, 200,
			order.Delivered, order.PaymentCompleted, order.OnHold, nil,
			createdAt, order.Stamps{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Equal(t, order.ErrHoldInvariantViolated, err)
	})

	t.Run("should fail when eligible but carrying hold fields", func(t *testing.T) {
		hold, err := order.NewSettlementHold("refund_pending", createdAt.Add(72*time.Hour))
		require.NoError(t, err)

		o, err := order.RestoreOrder(id, providerID, "ORD-1001", order.Cash, 200,
			order.Delivered, order.PaymentCompleted, order.Eligible, &hold,
			createdAt, order.Stamps{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Equal(t, order.ErrHoldInvariantViolated, err)
	})

	t.Run("should fail with invalid status axes", func(t *testing.T) {
		o, err := order.RestoreOrder(id, providerID, "ORD-1001", order.Cash, 200,
			order.StatusUnknown, order.PaymentStatusUnknown, order.SettlementStatusUnknown, nil,
			createdAt, order.Stamps{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "status is invalid")
		assert.Contains(t, err.Error(), "payment status is invalid")
		assert.Contains(t, err.Error(), "settlement status is invalid")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_AcceptReject(t *testing.T) {
	newPendingOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "ORD-1001", order.Cash, 100)
		require.NoError(t, err)
		return o
	}

	t.Run("should accept pending order and stamp acceptedAt", func(t *testing.T) {
		o := newPendingOrder(t)
		at := time.Now().UTC()

		err := o.Accept(at)

		require.NoError(t, err)
		assert.Equal(t, order.Accepted, o.Status())
		require.NotNil(t, o.AcceptedAt())
		assert.Equal(t, at, *o.AcceptedAt())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	})

	t.Run("should reject pending order and stamp cancelledAt", func(t *testing.T) {
		o := newPendingOrder(t)
		at := time.Now().UTC()

		err := o.Reject(at)

		require.NoError(t, err)
		assert.Equal(t, order.Rejected, o.Status())
		require.NotNil(t, o.CancelledAt())
		assert.Equal(t, at, *o.CancelledAt())
		// Rejection does not touch payment: money flow is the refund's job.
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	})

	t.Run("should fail to accept already accepted order", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Accept(time.Now().UTC()))

		err := o.Accept(time.Now().UTC())

		require.Error(t, err)
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("should fail to reject rejected order", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Reject(time.Now().UTC()))

		err := o.Reject(time.Now().UTC())

		require.Error(t, err)
		assert.Equal(t, order.Rejected, o.Status())
	})
}

func TestOrder_Advance(t *testing.T) {
	acceptedOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "ORD-1001", order.Cash, 100)
		require.NoError(t, err)
		require.NoError(t, o.Accept(time.Now().UTC()))
		return o
	}

	t.Run("should advance one step and stamp the target timestamp", func(t *testing.T) {
		o := acceptedOrder(t)
		at := time.Now().UTC()

		next, ok := o.Advance(at)

		assert.True(t, ok)
		assert.Equal(t, order.Preparing, next)
		assert.Equal(t, order.Preparing, o.Status())
		require.NotNil(t, o.PreparingAt())
		assert.Equal(t, at, *o.PreparingAt())
		assert.Nil(t, o.ReadyAt())
	})

	t.Run("should walk accepted order all the way to delivered", func(t *testing.T) {
		o := acceptedOrder(t)

		for {
			if _, ok := o.Advance(time.Now().UTC()); !ok {
				break
			}
		}

		assert.Equal(t, order.Delivered, o.Status())
		assert.NotNil(t, o.PreparingAt())
		assert.NotNil(t, o.ReadyAt())
		assert.NotNil(t, o.OutForDeliveryAt())
		assert.NotNil(t, o.DeliveredAt())
	})

	t.Run("should be a no-op on pending order", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "ORD-1001", order.Cash, 100)
		require.NoError(t, err)

		status, ok := o.Advance(time.Now().UTC())

		assert.False(t, ok)
		assert.Equal(t, order.Pending, status)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should be a no-op on delivered order", func(t *testing.T) {
		o := acceptedOrder(t)
		for {
			if _, ok := o.Advance(time.Now().UTC()); !ok {
				break
			}
		}

		status, ok := o.Advance(time.Now().UTC())

		assert.False(t, ok)
		assert.Equal(t, order.Delivered, status)
	})
}

func TestOrder_ConfirmCashPayment(t *testing.T) {
	deliveredOrder := func(t *testing.T, method order.PaymentMethod) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "ORD-1001", method, 100)
		require.NoError(t, err)
		require.NoError(t, o.Accept(time.Now().UTC()))
		for {
			if _, ok := o.Advance(time.Now().UTC()); !ok {
				break
			}
		}
		return o
	}

	t.Run("should confirm payment on delivered cash order", func(t *testing.T) {
		o := deliveredOrder(t, order.Cash)

		err := o.ConfirmCashPayment()

		require.NoError(t, err)
		assert.Equal(t, order.PaymentCompleted, o.PaymentStatus())
	})

	t.Run("should fail on non-cash order", func(t *testing.T) {
		o := deliveredOrder(t, order.Card)

		err := o.ConfirmCashPayment()

		require.ErrorIs(t, err, order.ErrNotCashPayable)
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	})

	t.Run("should fail before delivery", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "ORD-1001", order.Cash, 100)
		require.NoError(t, err)
		require.NoError(t, o.Accept(time.Now().UTC()))

		err = o.ConfirmCashPayment()

		require.ErrorIs(t, err, order.ErrNotCashPayable)
	})

	t.Run("should fail when payment already completed", func(t *testing.T) {
		o := deliveredOrder(t, order.Cash)
		require.NoError(t, o.ConfirmCashPayment())

		err := o.ConfirmCashPayment()

		require.ErrorIs(t, err, order.ErrNotCashPayable)
		assert.Equal(t, order.PaymentCompleted, o.PaymentStatus())
	})
}

func TestOrder_SettlementHold(t *testing.T) {
	newOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "ORD-1001", order.Cash, 100)
		require.NoError(t, err)
		return o
	}

	t.Run("should place and release hold together with settlement status", func(t *testing.T) {
		o := newOrder(t)
		until := time.Now().UTC().Add(72 * time.Hour)

		err := o.PlaceOnHold("refund_pending", until)

		require.NoError(t, err)
		assert.Equal(t, order.OnHold, o.SettlementStatus())
		require.NotNil(t, o.Hold())
		assert.Equal(t, "refund_pending", o.Hold().Reason())
		assert.Equal(t, until, o.Hold().Until())
		require.NoError(t, o.Validate())

		released := o.ReleaseHold()

		assert.True(t, released)
		assert.Equal(t, order.Eligible, o.SettlementStatus())
		assert.Nil(t, o.Hold())
		require.NoError(t, o.Validate())
	})

	t.Run("should fail to place hold without reason", func(t *testing.T) {
		o := newOrder(t)

		err := o.PlaceOnHold("   ", time.Now().UTC())

		require.Error(t, err)
		assert.Equal(t, order.Eligible, o.SettlementStatus())
		assert.Nil(t, o.Hold())
	})

	t.Run("should fail to place hold without deadline", func(t *testing.T) {
		o := newOrder(t)

		err := o.PlaceOnHold("refund_pending", time.Time{})

		require.Error(t, err)
		assert.Equal(t, order.Eligible, o.SettlementStatus())
	})

	t.Run("should report release as no-op when not on hold", func(t *testing.T) {
		o := newOrder(t)

		released := o.ReleaseHold()

		assert.False(t, released)
		assert.Equal(t, order.Eligible, o.SettlementStatus())
	})
}

func TestOrder_MarkRefunded(t *testing.T) {
	t.Run("should mark payment refunded and release any hold", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "ORD-1001", order.Cash, 100)
		require.NoError(t, err)
		require.NoError(t, o.PlaceOnHold("refund_pending", time.Now().UTC().Add(72*time.Hour)))

		o.MarkRefunded()

		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
		assert.Equal(t, order.Eligible, o.SettlementStatus())
		assert.Nil(t, o.Hold())
		require.NoError(t, o.Validate())
	})

	t.Run("should be idempotent when no hold exists", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "ORD-1001", order.Card, 100)
		require.NoError(t, err)

		o.MarkRefunded()
		o.MarkRefunded()

		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
		assert.Equal(t, order.Eligible, o.SettlementStatus())
	})
}

func TestOrder_IsOwnedBy(t *testing.T) {
	providerID := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), providerID, "ORD-1001", order.Cash, 100)
	require.NoError(t, err)

	t.Run("should return true for the owning provider", func(t *testing.T) {
		assert.True(t, o.IsOwnedBy(providerID))
	})

	t.Run("should return false for another provider", func(t *testing.T) {
		assert.False(t, o.IsOwnedBy(kernel.NewUUID()))
	})
}

func TestOrder_IsEqual(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()
	providerID := kernel.NewUUID()

	t.Run("should return true for orders with same ID", func(t *testing.T) {
		o1, _ := order.NewOrder(id1, providerID, "ORD-1001", order.Cash, 100)
		o2, _ := order.NewOrder(id1, providerID, "ORD-2002", order.Card, 200)

		assert.True(t, o1.IsEqual(o2))
		assert.True(t, o2.IsEqual(o1))
	})

	t.Run("should return false for orders with different IDs", func(t *testing.T) {
		o1, _ := order.NewOrder(id1, providerID, "ORD-1001", order.Cash, 100)
		o2, _ := order.NewOrder(id2, providerID, "ORD-1001", order.Cash, 100)

		assert.False(t, o1.IsEqual(o2))
	})

	t.Run("should return false when comparing with nil", func(t *testing.T) {
		o1, _ := order.NewOrder(id1, providerID, "ORD-1001", order.Cash, 100)

		assert.False(t, o1.IsEqual(nil))
	})
}
