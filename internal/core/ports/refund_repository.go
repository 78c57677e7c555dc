package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/refund"
)

// RefundRepository defines the persistence contract for refund aggregates.
//
// The three transition methods are conditional updates guarded by the expected
// current status (`WHERE status = 'pending'` / `'approved'`), so an id-level
// replay from a client retry matches zero rows instead of rewriting audit
// fields; zero rows surface as *errs.StaleStateError.
type RefundRepository interface {
	// Add persists a new refund aggregate to storage.
	Add(ctx context.Context, aggregate *refund.Refund) error

	// Get retrieves a refund aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*refund.Refund, error)

	// Approve writes status=approved plus the review audit fields,
	// guarded by `WHERE status = 'pending'`.
	Approve(ctx context.Context, id, reviewerID kernel.UUID, notes *string, at time.Time) error

	// Reject writes status=rejected plus the review audit fields,
	// guarded by `WHERE status = 'pending'`. Notes validation happens
	// before the repository is reached.
	Reject(ctx context.Context, id, reviewerID kernel.UUID, notes string, at time.Time) error

	// Process writes status=processed, the disbursed amount, and the
	// processing audit fields, guarded by `WHERE status = 'approved'`.
	Process(ctx context.Context, id, processorID kernel.UUID, amount float64, notes *string, at time.Time) error
}
