package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Every mutating method is a single conditional row update: the transition
// precondition travels in the update's predicate and the row count decides the
// outcome. A guarded transition matching zero rows returns
// *errs.StaleStateError; a zero-row hold release is a silent no-op. This is
// what makes each transition atomic at the store without any cross-row
// locking.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllForProvider retrieves the full order set of one provider,
	// newest first. This is the reload payload for the operator view.
	GetAllForProvider(ctx context.Context, providerID kernel.UUID) ([]*order.Order, error)

	// UpdateStatus performs the conditional fulfillment transition
	// `SET status = to, <stamp for to> = at WHERE id = ? AND status = from`.
	// Returns a stale-state error when the order is no longer in `from`.
	UpdateStatus(ctx context.Context, id kernel.UUID, from, to order.Status, at time.Time) error

	// ConfirmCashPayment marks the order's payment completed, guarded by
	// ownership and by the payment still being pending:
	// `WHERE id = ? AND provider_id = ? AND payment_status = 'pending'`.
	// The ownership predicate repeats the caller's read-phase check so the
	// write stands on its own.
	ConfirmCashPayment(ctx context.Context, id, providerID kernel.UUID) error

	// ReleaseHold conditionally makes the order settlement-eligible:
	// `WHERE id = ? AND settlement_status = 'on_hold'`, clearing the hold
	// reason and deadline in the same statement. Returns false without error
	// when the order was not on hold.
	ReleaseHold(ctx context.Context, id kernel.UUID) (bool, error)

	// ReleaseHoldAndMarkRefunded unconditionally sets payment_status to
	// refunded and settlement_status to eligible, clearing the hold fields,
	// whatever the order's current hold state.
	ReleaseHoldAndMarkRefunded(ctx context.Context, id kernel.UUID) error
}
