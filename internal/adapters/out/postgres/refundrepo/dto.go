// Package refundrepo provides data transfer objects and mapping functions for
// refund persistence.
package refundrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/refund"

	"github.com/google/uuid"
)

// RefundDTO represents the database structure for persisting refund aggregates.
type RefundDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	ProviderID uuid.UUID `gorm:"type:uuid;index"`

	Amount          float64
	ProcessedAmount *float64
	Reason          string

	Status           string `gorm:"index"`
	EscalatedToAdmin bool
	ProviderAction   *string

	CustomerConfirmed    bool
	ConfirmationDeadline *time.Time

	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt  *time.Time
	ReviewNotes *string

	ProcessedBy     *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt     *time.Time
	ProcessingNotes *string

	CreatedAt time.Time
}

// TableName specifies the database table name for refund entities.
func (RefundDTO) TableName() string {
	return "refunds"
}

func fromDomain(aggregate *refund.Refund) RefundDTO {
	dto := RefundDTO{
		ID:                   aggregate.ID().Bytes(),
		OrderID:              aggregate.OrderID().Bytes(),
		CustomerID:           aggregate.CustomerID().Bytes(),
		ProviderID:           aggregate.ProviderID().Bytes(),
		Amount:               aggregate.Amount(),
		ProcessedAmount:      aggregate.ProcessedAmount(),
		Reason:               aggregate.Reason(),
		Status:               aggregate.Status().String(),
		EscalatedToAdmin:     aggregate.EscalatedToAdmin(),
		CustomerConfirmed:    aggregate.CustomerConfirmed(),
		ConfirmationDeadline: aggregate.ConfirmationDeadline(),
		ReviewedAt:           aggregate.ReviewedAt(),
		ReviewNotes:          aggregate.ReviewNotes(),
		ProcessedAt:          aggregate.ProcessedAt(),
		ProcessingNotes:      aggregate.ProcessingNotes(),
		CreatedAt:            aggregate.CreatedAt(),
	}

	if action := aggregate.ProviderAction(); action != nil {
		s := string(*action)
		dto.ProviderAction = &s
	}
	if by := aggregate.ReviewedBy(); by != nil {
		raw := by.Bytes()
		dto.ReviewedBy = &raw
	}
	if by := aggregate.ProcessedBy(); by != nil {
		raw := by.Bytes()
		dto.ProcessedBy = &raw
	}

	return dto
}

func toDomain(dto RefundDTO) (*refund.Refund, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	providerID, err := kernel.UUIDFromBytes(dto.ProviderID[:])
	if err != nil {
		return nil, err
	}

	status, err := refund.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	state := refund.RestoredState{
		ProcessedAmount:      dto.ProcessedAmount,
		EscalatedToAdmin:     dto.EscalatedToAdmin,
		CustomerConfirmed:    dto.CustomerConfirmed,
		ConfirmationDeadline: dto.ConfirmationDeadline,
		ReviewedAt:           dto.ReviewedAt,
		ReviewNotes:          dto.ReviewNotes,
		ProcessedAt:          dto.ProcessedAt,
		ProcessingNotes:      dto.ProcessingNotes,
		CreatedAt:            dto.CreatedAt,
	}

	if dto.ProviderAction != nil {
		action := refund.ProviderAction(*dto.ProviderAction)
		state.ProviderAction = &action
	}
	if dto.ReviewedBy != nil {
		by, byErr := kernel.UUIDFromBytes((*dto.ReviewedBy)[:])
		if byErr != nil {
			return nil, byErr
		}
		state.ReviewedBy = &by
	}
	if dto.ProcessedBy != nil {
		by, byErr := kernel.UUIDFromBytes((*dto.ProcessedBy)[:])
		if byErr != nil {
			return nil, byErr
		}
		state.ProcessedBy = &by
	}

	return refund.RestoreRefund(
		id, orderID, customerID, providerID,
		dto.Amount, dto.Reason, status, state,
	)
}
