// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Status columns are stored in their snake_case string form
// so that transition guards can be expressed directly in update predicates.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProviderID  uuid.UUID `gorm:"type:uuid;index"`
	OrderNumber string
	Total       float64

	PaymentMethod    string
	Status           string `gorm:"index"`
	PaymentStatus    string
	SettlementStatus string
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

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:               aggregate.ID().Bytes(),
		ProviderID:       aggregate.ProviderID().Bytes(),
		OrderNumber:      aggregate.OrderNumber(),
		Total:            aggregate.Total(),
		PaymentMethod:    aggregate.PaymentMethod().String(),
		Status:           aggregate.Status().String(),
		PaymentStatus:    aggregate.PaymentStatus().String(),
		SettlementStatus: aggregate.SettlementStatus().String(),
		CreatedAt:        aggregate.CreatedAt(),
		AcceptedAt:       aggregate.AcceptedAt(),
		PreparingAt:      aggregate.PreparingAt(),
		ReadyAt:          aggregate.ReadyAt(),
		OutForDeliveryAt: aggregate.OutForDeliveryAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
		CancelledAt:      aggregate.CancelledAt(),
	}

	if hold := aggregate.Hold(); hold != nil {
		reason := hold.Reason()
		until := hold.Until()
		dto.HoldReason = &reason
		dto.HoldUntil = &until
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	providerID, err := kernel.UUIDFromBytes(dto.ProviderID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	settlementStatus, err := order.SettlementStatusFromString(dto.SettlementStatus)
	if err != nil {
		return nil, err
	}

	var hold *order.SettlementHold
	if dto.HoldReason != nil && dto.HoldUntil != nil {
		h, holdErr := order.NewSettlementHold(*dto.HoldReason, *dto.HoldUntil)
		if holdErr != nil {
			return nil, holdErr
		}
		hold = &h
	}

	return order.RestoreOrder(
		id,
		providerID,
		dto.OrderNumber,
		order.PaymentMethod(dto.PaymentMethod),
		dto.Total,
		status,
		paymentStatus,
		settlementStatus,
		hold,
		dto.CreatedAt,
		order.Stamps{
			AcceptedAt:       dto.AcceptedAt,
			PreparingAt:      dto.PreparingAt,
			ReadyAt:          dto.ReadyAt,
			OutForDeliveryAt: dto.OutForDeliveryAt,
			DeliveredAt:      dto.DeliveredAt,
			CancelledAt:      dto.CancelledAt,
		},
	)
}
