package models

import "github.com/shopspring/decimal"

// Tenant is the persistence row for one company environment.
type Tenant struct {
	TenantID          string          `db:"tenant_id"`
	Name              string          `db:"name"`
	CurrencyCode      string          `db:"currency_code"`
	RoundingTolerance decimal.Decimal `db:"rounding_tolerance"`
	IsActive          bool            `db:"is_active"`
	AuditFields
}
