package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetProviderOrdersQueryHandler retrieves one provider's orders, newest first.
type GetProviderOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetProviderOrdersQueryHandler creates a handler for provider order queries.
func NewGetProviderOrdersQueryHandler(db *gorm.DB) GetProviderOrdersQueryHandler {
	return GetProviderOrdersQueryHandler{db: db}
}

// Handle executes the provider order list query.
func (h GetProviderOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetProviderOrdersQuery,
) ([]GetProviderOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			total,
			payment_method,
			status,
			payment_status,
			settlement_status,
			hold_reason,
			hold_until,
			created_at,
			accepted_at,
			preparing_at,
			ready_at,
			out_for_delivery_at,
			delivered_at,
			cancelled_at
		FROM orders
		WHERE provider_id = ?
		ORDER BY created_at DESC, id
	`, query.ProviderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetProviderOrdersQueryResponse, 0)

	for rows.Next() {
		var (
			id                                      uuid.UUID
			orderNumber                             string
			total                                   float64
			paymentMethod, status, payment, settle  string
			holdReason                              *string
			holdUntil                               *time.Time
			createdAt                               time.Time
			acceptedAt, preparingAt, readyAt        *time.Time
			outForDeliveryAt, deliveredAt, cancelAt *time.Time
		)

		err = rows.Scan(
			&id, &orderNumber, &total, &paymentMethod, &status, &payment,
			&settle, &holdReason, &holdUntil, &createdAt,
			&acceptedAt, &preparingAt, &readyAt, &outForDeliveryAt,
			&deliveredAt, &cancelAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orderStatus, stErr := order.StatusFromString(status)
		if stErr != nil {
			return nil, stErr
		}
		paymentStatus, stErr := order.PaymentStatusFromString(payment)
		if stErr != nil {
			return nil, stErr
		}
		settlementStatus, stErr := order.SettlementStatusFromString(settle)
		if stErr != nil {
			return nil, stErr
		}

		orders = append(orders, GetProviderOrdersQueryResponse{
			ID:               orderID,
			OrderNumber:      orderNumber,
			Total:            total,
			PaymentMethod:    order.PaymentMethod(paymentMethod),
			Status:           orderStatus,
			PaymentStatus:    paymentStatus,
			SettlementStatus: settlementStatus,
			HoldReason:       holdReason,
			HoldUntil:        holdUntil,
			CreatedAt:        createdAt,
			AcceptedAt:       acceptedAt,
			PreparingAt:      preparingAt,
			ReadyAt:          readyAt,
			OutForDeliveryAt: outForDeliveryAt,
			DeliveredAt:      deliveredAt,
			CancelledAt:      cancelAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
