package orderrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// Mutations are single conditional UPDATEs: the transition precondition lives
// in the WHERE clause and RowsAffected decides whether the caller raced. No
// SELECT FOR UPDATE, no cross-row locking.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForProvider retrieves the full order set of one provider, newest first.
func (r *GormOrderRepository) GetAllForProvider(
	ctx context.Context,
	providerID kernel.UUID,
) ([]*order.Order, error) {
	if err := providerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id").
		Find(&dtos, "provider_id = ?", providerID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// stampColumn returns the timestamp column written alongside a transition into
// the given status. Rejection and cancellation share one column.
func stampColumn(to order.Status) string {
	switch to {
	case order.Accepted:
		return "accepted_at"
	case order.Preparing:
		return "preparing_at"
	case order.Ready:
		return "ready_at"
	case order.OutForDelivery:
		return "out_for_delivery_at"
	case order.Delivered:
		return "delivered_at"
	case order.Rejected, order.Cancelled:
		return "cancelled_at"
	default:
		return ""
	}
}

// UpdateStatus performs the guarded fulfillment transition. The WHERE clause
// repeats the expected current status; zero affected rows means the order
// moved on concurrently and surfaces as a stale-state error.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context,
	id kernel.UUID,
	from, to order.Status,
	at time.Time,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return err
	}

	updates := map[string]any{"status": to.String()}
	if col := stampColumn(to); col != "" {
		updates[col] = at
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), from.String()).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewStaleStateError("order", id.String(), from.String())
	}

	return nil
}

// ConfirmCashPayment marks the order's payment completed. The predicate
// repeats the ownership check made by the caller's read phase and guards on
// the payment still being pending, so a refund that lands between read and
// write wins and this update matches nothing.
func (r *GormOrderRepository) ConfirmCashPayment(ctx context.Context, id, providerID kernel.UUID) error {
	if err := errors.Join(id.Validate(), providerID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND provider_id = ? AND payment_status = ?",
			id.Bytes(), providerID.Bytes(), order.PaymentPending.String()).
		Updates(map[string]any{"payment_status": order.PaymentCompleted.String()})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewStaleStateError("order payment", id.String(), order.PaymentPending.String())
	}

	return nil
}

// ReleaseHold conditionally lifts the settlement hold. Settlement status and
// both hold fields change in one statement, which is what keeps the hold
// invariant intact under concurrency. Zero rows is a no-op, not an error.
func (r *GormOrderRepository) ReleaseHold(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND settlement_status = ?", id.Bytes(), order.OnHold.String()).
		Updates(map[string]any{
			"settlement_status": order.Eligible.String(),
			"hold_reason":       nil,
			"hold_until":        nil,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// ReleaseHoldAndMarkRefunded settles a refunded order unconditionally: the
// payment becomes refunded and the hold fields are cleared whatever their
// current value.
func (r *GormOrderRepository) ReleaseHoldAndMarkRefunded(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"payment_status":    order.PaymentRefunded.String(),
			"settlement_status": order.Eligible.String(),
			"hold_reason":       nil,
			"hold_until":        nil,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}
