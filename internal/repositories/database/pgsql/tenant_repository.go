package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestika/ledger/internal/apperrors"
	"github.com/gestika/ledger/internal/core/domain"
	portsrepo "github.com/gestika/ledger/internal/core/ports/repositories"
	"github.com/gestika/ledger/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTenantRepository struct {
	pool *pgxpool.Pool
}

// newPgxTenantRepository creates a new repository for tenant data.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{pool: pool}
}

var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

func toModelTenant(d domain.Tenant) models.Tenant {
	return models.Tenant{
		TenantID:          d.TenantID,
		Name:              d.Name,
		CurrencyCode:      d.CurrencyCode,
		RoundingTolerance: d.RoundingTolerance,
		IsActive:          d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTenant(m models.Tenant) domain.Tenant {
	return domain.Tenant{
		TenantID:          m.TenantID,
		Name:              m.Name,
		CurrencyCode:      m.CurrencyCode,
		RoundingTolerance: m.RoundingTolerance,
		IsActive:          m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveTenant inserts a new tenant row.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	modelTenant := toModelTenant(tenant)

	query := `
		INSERT INTO tenants (tenant_id, name, currency_code, rounding_tolerance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		modelTenant.TenantID,
		modelTenant.Name,
		modelTenant.CurrencyCode,
		modelTenant.RoundingTolerance,
		modelTenant.IsActive,
		modelTenant.CreatedAt,
		modelTenant.CreatedBy,
		modelTenant.LastUpdatedAt,
		modelTenant.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: tenant with ID %s already exists", apperrors.ErrDuplicate, modelTenant.TenantID)
		}
		return fmt.Errorf("failed to save tenant %s: %w", modelTenant.TenantID, err)
	}
	return nil
}

// FindTenantByID retrieves a tenant by its ID.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `
		SELECT tenant_id, name, currency_code, rounding_tolerance, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
		WHERE tenant_id = $1;
	`
	var modelTenant models.Tenant
	err := r.pool.QueryRow(ctx, query, tenantID).Scan(
		&modelTenant.TenantID,
		&modelTenant.Name,
		&modelTenant.CurrencyCode,
		&modelTenant.RoundingTolerance,
		&modelTenant.IsActive,
		&modelTenant.CreatedAt,
		&modelTenant.CreatedBy,
		&modelTenant.LastUpdatedAt,
		&modelTenant.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to find tenant by ID %s: %w", tenantID, err)
	}

	domainTenant := toDomainTenant(modelTenant)
	return &domainTenant, nil
}
