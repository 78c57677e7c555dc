package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetProviderOrdersQueryIsNotConstructed = errors.New(
		"GetProviderOrdersQuery must be created via NewGetProviderOrdersQuery constructor",
	)
)

// GetProviderOrdersQuery retrieves the full order set of one provider, newest
// first. This is both the operator list view and the reload payload the
// realtime adapter re-fetches on every change signal.
type GetProviderOrdersQuery struct { //nolint:recvcheck //using for validation
	providerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetProviderOrdersQuery creates a query for one provider's orders.
func NewGetProviderOrdersQuery(providerID kernel.UUID) (GetProviderOrdersQuery, error) {
	q := GetProviderOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := providerID.Validate(); err != nil {
		return GetProviderOrdersQuery{}, err
	}
	q.providerID = providerID

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProviderOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetProviderOrdersQueryIsNotConstructed)
}

// ProviderID returns the provider whose orders are listed.
func (q GetProviderOrdersQuery) ProviderID() kernel.UUID {
	return q.providerID
}

// GetProviderOrdersQueryResponse is one row of the provider order list.
// Counts per tab (pending / active / out for delivery / completed /
// cancelled) are derived by the caller from Status.
type GetProviderOrdersQueryResponse struct {
	ID               kernel.UUID
	OrderNumber      string
	Total            float64
	PaymentMethod    order.PaymentMethod
	Status           order.Status
	PaymentStatus    order.PaymentStatus
	SettlementStatus order.SettlementStatus
	HoldReason       *string
	HoldUntil        *time.Time
	CreatedAt        time.Time
	AcceptedAt       *time.Time
	PreparingAt      *time.Time
	ReadyAt          *time.Time
	OutForDeliveryAt *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
}
