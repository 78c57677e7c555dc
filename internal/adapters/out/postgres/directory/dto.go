// Package directory provides read-only adapters over the marketplace's
// reference tables: customers, providers, governorates and admin scope
// assignments. The refund engine only consumes labels and scopes from these
// tables, it never writes them.
package directory

import (
	"github.com/google/uuid"
)

// CustomerDTO mirrors the customers reference table.
type CustomerDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

// TableName specifies the database table name for customer entities.
func (CustomerDTO) TableName() string {
	return "customers"
}

// ProviderDTO mirrors the providers reference table.
type ProviderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string
	GovernorateID string `gorm:"index"`
}

// TableName specifies the database table name for provider entities.
func (ProviderDTO) TableName() string {
	return "providers"
}

// GovernorateDTO mirrors the governorates reference table.
type GovernorateDTO struct {
	ID   string `gorm:"primaryKey"`
	Name string
}

// TableName specifies the database table name for governorate entities.
func (GovernorateDTO) TableName() string {
	return "governorates"
}

// AdminScopeDTO mirrors the admin governorate assignment table. A row with
// AllGovernorates set marks a super-admin; regional admins carry one row per
// assigned governorate.
type AdminScopeDTO struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	AdminID         uuid.UUID `gorm:"type:uuid;index"`
	GovernorateID   string
	AllGovernorates bool
}

// TableName specifies the database table name for admin scope assignments.
func (AdminScopeDTO) TableName() string {
	return "admin_scopes"
}
