package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gestika/ledger/internal/apperrors"
	"github.com/gestika/ledger/internal/core/domain"
	portsrepo "github.com/gestika/ledger/internal/core/ports/repositories"
	portssvc "github.com/gestika/ledger/internal/core/ports/services"
	"github.com/gestika/ledger/internal/dto"
	"github.com/gestika/ledger/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type tenantService struct {
	tenantRepo       portsrepo.TenantRepositoryFacade
	seeder           portssvc.SeederSvc
	defaultTolerance decimal.Decimal
}

// NewTenantService creates the tenant provisioning service. defaultTolerance
// applies to tenants created without an explicit rounding tolerance.
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade, seeder portssvc.SeederSvc, defaultTolerance decimal.Decimal) portssvc.TenantSvcFacade {
	return &tenantService{
		tenantRepo:       tenantRepo,
		seeder:           seeder,
		defaultTolerance: defaultTolerance,
	}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// CreateTenant provisions a tenant and runs the seed bootstrap: default chart
// of accounts, journal set and an open exercise for the current year.
func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, actorID string) (*domain.Tenant, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	tolerance := s.defaultTolerance
	if req.RoundingTolerance != nil {
		if req.RoundingTolerance.IsNegative() {
			return nil, apperrors.NewAppError(400, "roundingTolerance must not be negative", apperrors.ErrValidation)
		}
		tolerance = *req.RoundingTolerance
	}

	tenant := domain.Tenant{
		TenantID:          uuid.NewString(),
		Name:              req.Name,
		CurrencyCode:      req.CurrencyCode,
		RoundingTolerance: tolerance,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		logger.Error("Failed to save tenant in repository", slog.String("error", err.Error()), slog.String("tenant_id", tenant.TenantID))
		return nil, err
	}

	if err := s.seeder.SeedTenantDefaults(ctx, tenant.TenantID, actorID); err != nil {
		// The tenant row exists; seeding can be retried, so report but keep it.
		logger.Error("Failed to seed tenant defaults", slog.String("error", err.Error()), slog.String("tenant_id", tenant.TenantID))
		return nil, err
	}

	logger.Info("Tenant provisioned successfully", slog.String("tenant_id", tenant.TenantID))
	return &tenant, nil
}

// GetTenantByID resolves a tenant.
func (s *tenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find tenant by ID in repository", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		}
		return nil, err
	}
	return tenant, nil
}
