package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business operation boundary over the store.
// It provides repository access and optional transaction control.
//
// The refund command handlers deliberately do NOT open a transaction: the
// refund terminal write and the linked order's hold release are issued as two
// independent conditional updates, reproducing the store contract of the
// reconciliation engine (each statement atomic in isolation, no multi-resource
// atomicity).
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository instance. When a transaction
	// is active the repository is bound to it, otherwise operations execute
	// immediately on the main connection.
	OrderRepository() OrderRepository

	// RefundRepository returns a RefundRepository instance with the same
	// binding behavior as OrderRepository.
	RefundRepository() RefundRepository
}
