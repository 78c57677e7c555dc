package directory

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormGeoDirectory implements ports.GeoDirectory over the governorates and
// providers reference tables.
type GormGeoDirectory struct {
	db *gorm.DB
}

// NewGormGeoDirectory creates a geographic lookup over the reference tables.
func NewGormGeoDirectory(db *gorm.DB) *GormGeoDirectory {
	return &GormGeoDirectory{db: db}
}

// GovernorateName resolves a governorate id to its display name.
func (d *GormGeoDirectory) GovernorateName(ctx context.Context, governorateID string) (string, error) {
	var dto GovernorateDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", governorateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("governorate", governorateID)
		}
		return "", err
	}
	return dto.Name, nil
}

// ProviderGovernorate resolves the governorate a provider operates in.
func (d *GormGeoDirectory) ProviderGovernorate(ctx context.Context, providerID kernel.UUID) (string, error) {
	if err := providerID.Validate(); err != nil {
		return "", err
	}

	var dto ProviderDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", providerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("provider", providerID.String())
		}
		return "", err
	}
	return dto.GovernorateID, nil
}
