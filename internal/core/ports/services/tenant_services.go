package services

import (
	"context"

	"github.com/gestika/ledger/internal/core/domain"
	"github.com/gestika/ledger/internal/dto"
)

// TenantSvcFacade provisions and resolves tenants. Provisioning runs the
// idempotent seed bootstrap (default chart, journal set, current exercise).
type TenantSvcFacade interface {
	// CreateTenant provisions a tenant and seeds its defaults.
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, actorID string) (*domain.Tenant, error)

	// GetTenantByID resolves a tenant.
	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
}

// SeederSvc populates a freshly provisioned tenant with the jurisdiction
// default account plan and journal set, and opens the current calendar year.
// The operation is idempotent: existing configuration is left untouched.
type SeederSvc interface {
	SeedTenantDefaults(ctx context.Context, tenantID string, actorID string) error
}
