package dto

import (
	"time"

	"github.com/gestika/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTenantRequest provisions a new tenant. Seeding of the default chart,
// journal set and current exercise happens as part of provisioning.
type CreateTenantRequest struct {
	Name              string           `json:"name" binding:"required,max=200"`
	CurrencyCode      string           `json:"currencyCode" binding:"required,len=3"`
	RoundingTolerance *decimal.Decimal `json:"roundingTolerance,omitempty"`
}

// TenantResponse defines the data returned for a tenant.
type TenantResponse struct {
	TenantID          string          `json:"tenantID"`
	Name              string          `json:"name"`
	CurrencyCode      string          `json:"currencyCode"`
	RoundingTolerance decimal.Decimal `json:"roundingTolerance"`
	IsActive          bool            `json:"isActive"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ToTenantResponse converts a domain.Tenant to its response DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:          t.TenantID,
		Name:              t.Name,
		CurrencyCode:      t.CurrencyCode,
		RoundingTolerance: t.RoundingTolerance,
		IsActive:          t.IsActive,
		CreatedAt:         t.CreatedAt,
	}
}
