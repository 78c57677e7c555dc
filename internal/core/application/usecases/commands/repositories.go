// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, then one or more
// single-row conditional updates against the store.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces scope what each command handler can reach.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RefundRepoFactory provides access to the refund repository.
	RefundRepoFactory interface {
		RefundRepository() ports.RefundRepository
	}

	// OrderUoW manages operator-side order lifecycle writes. Each command
	// issues exactly one conditional update, so the transaction wraps a
	// single statement.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RefundUoW gives the refund review commands their refund write plus the
	// linked order's hold side effect. It deliberately exposes no TxManager:
	// the refund terminal write and the order release are two independent
	// conditional updates, never one atomic multi-resource transaction.
	RefundUoW interface {
		RefundRepoFactory
		OrderRepoFactory
	}

	// RefundUoWFactory creates new refund unit of work instances.
	RefundUoWFactory interface {
		Create() RefundUoW
	}
)
