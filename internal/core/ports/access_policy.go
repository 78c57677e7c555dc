package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// RefundScope is the geographic visibility an admin has over the refund queue.
// A super-admin sees all governorates and may optionally narrow to one; a
// regional admin is confined to their assigned set — an empty set means an
// empty result, not unrestricted access.
type RefundScope struct {
	AllGovernorates bool
	GovernorateIDs  []string
}

// Narrow intersects the scope with a single requested governorate filter.
// For a super-admin the requested governorate is taken as-is; for a regional
// admin it must be inside the assigned set, otherwise the scope collapses to
// nothing.
func (s RefundScope) Narrow(governorateID string) RefundScope {
	if governorateID == "" {
		return s
	}
	if s.AllGovernorates {
		return RefundScope{GovernorateIDs: []string{governorateID}}
	}
	for _, id := range s.GovernorateIDs {
		if id == governorateID {
			return RefundScope{GovernorateIDs: []string{governorateID}}
		}
	}
	return RefundScope{GovernorateIDs: []string{}}
}

// AccessPolicy is the external role/region collaborator. This engine consumes
// the resolved scope as an opaque input; how roles map to governorates is not
// its concern.
type AccessPolicy interface {
	// RefundScopeFor resolves the acting admin's geographic scope.
	RefundScopeFor(ctx context.Context, adminID kernel.UUID) (RefundScope, error)
}

// GeoDirectory is the external geographic lookup collaborator, used only for
// presentation and filter labeling, never for transition guards.
type GeoDirectory interface {
	// GovernorateName resolves a governorate id to its display name.
	GovernorateName(ctx context.Context, governorateID string) (string, error)

	// ProviderGovernorate resolves the governorate a provider operates in.
	ProviderGovernorate(ctx context.Context, providerID kernel.UUID) (string, error)
}
