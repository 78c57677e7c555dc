package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// ChangeOp identifies the kind of row-level change carried by a change feed event.
type ChangeOp string

const (
	OpInsert ChangeOp = "INSERT"
	OpUpdate ChangeOp = "UPDATE"
)

// OrderChangeEvent is one row-level change on the orders table, scoped to the
// provider it belongs to. The event carries no row data: consumers react by
// re-fetching, never by merging deltas.
type OrderChangeEvent struct {
	Op         ChangeOp
	OrderID    kernel.UUID
	ProviderID kernel.UUID
}

// OrderChangeFeed is the push channel of the realtime sync: a subscription to
// row-level INSERT/UPDATE events for one provider's orders.
//
// The feed provides no delivery guarantee — it can silently go quiet — which
// is why its consumer always pairs it with an independent poll.
type OrderChangeFeed interface {
	// Subscribe starts delivering the provider's order change events on the
	// returned channel until ctx is cancelled, at which point the channel is
	// closed. Events for other providers are filtered out.
	Subscribe(ctx context.Context, providerID kernel.UUID) (<-chan OrderChangeEvent, error)
}

// NotificationPlayer plays the new-order notification sound. Strictly
// cosmetic: callers ignore playback failures.
type NotificationPlayer interface {
	Play(ctx context.Context) error
}
