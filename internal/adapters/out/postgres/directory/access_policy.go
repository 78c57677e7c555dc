package directory

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// GormAccessPolicy implements ports.AccessPolicy over the admin scope
// assignment table. An admin with no rows at all has an empty scope, which
// the refund list treats as "sees nothing" rather than "sees everything".
type GormAccessPolicy struct {
	db *gorm.DB
}

// NewGormAccessPolicy creates an access policy over the admin scope table.
func NewGormAccessPolicy(db *gorm.DB) *GormAccessPolicy {
	return &GormAccessPolicy{db: db}
}

// RefundScopeFor resolves the acting admin's geographic scope.
func (p *GormAccessPolicy) RefundScopeFor(
	ctx context.Context,
	adminID kernel.UUID,
) (ports.RefundScope, error) {
	if err := adminID.Validate(); err != nil {
		return ports.RefundScope{}, err
	}

	var dtos []AdminScopeDTO
	err := p.db.WithContext(ctx).Find(&dtos, "admin_id = ?", adminID.Bytes()).Error
	if err != nil {
		return ports.RefundScope{}, err
	}

	scope := ports.RefundScope{GovernorateIDs: make([]string, 0, len(dtos))}
	for _, dto := range dtos {
		if dto.AllGovernorates {
			return ports.RefundScope{AllGovernorates: true}, nil
		}
		scope.GovernorateIDs = append(scope.GovernorateIDs, dto.GovernorateID)
	}

	return scope, nil
}
