package refundrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/refund"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRefundRepository implements RefundRepository using GORM.
//
// The review transitions are conditional UPDATEs guarded by the expected
// current status. Because the guard travels with the write, a retried or
// concurrent review matches zero rows instead of overwriting the first
// reviewer's audit trail.
type GormRefundRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRefundRepository creates a new GORM refund repository.
func NewGormRefundRepository(db *gorm.DB, tracker aggregateTracker) *GormRefundRepository {
	return &GormRefundRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new refund to the database.
func (r *GormRefundRepository) Add(ctx context.Context, aggregate *refund.Refund) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a refund by ID.
func (r *GormRefundRepository) Get(ctx context.Context, id kernel.UUID) (*refund.Refund, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RefundDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("refund", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Approve writes status=approved plus the review audit fields, guarded by the
// refund still being pending.
func (r *GormRefundRepository) Approve(
	ctx context.Context,
	id, reviewerID kernel.UUID,
	notes *string,
	at time.Time,
) error {
	if err := errors.Join(id.Validate(), reviewerID.Validate()); err != nil {
		return err
	}

	return r.guardedReview(ctx, id, refund.Pending, map[string]any{
		"status":       refund.Approved.String(),
		"reviewed_by":  reviewerID.Bytes(),
		"reviewed_at":  at,
		"review_notes": notes,
	})
}

// Reject writes status=rejected plus the review audit fields, guarded by the
// refund still being pending.
func (r *GormRefundRepository) Reject(
	ctx context.Context,
	id, reviewerID kernel.UUID,
	notes string,
	at time.Time,
) error {
	if err := errors.Join(id.Validate(), reviewerID.Validate()); err != nil {
		return err
	}

	return r.guardedReview(ctx, id, refund.Pending, map[string]any{
		"status":       refund.Rejected.String(),
		"reviewed_by":  reviewerID.Bytes(),
		"reviewed_at":  at,
		"review_notes": notes,
	})
}

// Process writes status=processed, the disbursed amount and the processing
// audit fields, guarded by the refund being approved.
func (r *GormRefundRepository) Process(
	ctx context.Context,
	id, processorID kernel.UUID,
	amount float64,
	notes *string,
	at time.Time,
) error {
	if err := errors.Join(id.Validate(), processorID.Validate()); err != nil {
		return err
	}

	return r.guardedReview(ctx, id, refund.Approved, map[string]any{
		"status":           refund.Processed.String(),
		"processed_amount": amount,
		"processed_by":     processorID.Bytes(),
		"processed_at":     at,
		"processing_notes": notes,
	})
}

func (r *GormRefundRepository) guardedReview(
	ctx context.Context,
	id kernel.UUID,
	expected refund.Status,
	updates map[string]any,
) error {
	result := r.db.WithContext(ctx).
		Model(&RefundDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), expected.String()).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewStaleStateError("refund", id.String(), expected.String())
	}

	return nil
}
