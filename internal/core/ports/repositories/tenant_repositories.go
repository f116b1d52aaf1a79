package repositories

import (
	"context"

	"github.com/gestika/ledger/internal/core/domain"
)

// TenantRepositoryFacade defines persistence operations for tenants.
type TenantRepositoryFacade interface {
	// SaveTenant persists a new tenant.
	SaveTenant(ctx context.Context, tenant domain.Tenant) error

	// FindTenantByID retrieves a tenant by its unique identifier.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
}
