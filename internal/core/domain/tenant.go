package domain

import "github.com/shopspring/decimal"

// Tenant represents one isolated company environment. Accounts, journals,
// exercises and entry lines all hang off a tenant and never cross it.
type Tenant struct {
	TenantID          string          `json:"tenantID"` // Primary Key (UUID)
	Name              string          `json:"name"`
	CurrencyCode      string          `json:"currencyCode"` // e.g. "EUR"
	RoundingTolerance decimal.Decimal `json:"roundingTolerance"`
	IsActive          bool            `json:"isActive"`
	AuditFields
}
