package models

// Account is the persistence row for one chart-of-accounts line.
// ParentAccountID uses a pointer for the nullable self-referencing FK.
type Account struct {
	AccountID       string  `db:"account_id"`
	TenantID        string  `db:"tenant_id"`
	Code            string  `db:"code"`
	Label           string  `db:"label"`
	AccountType     string  `db:"account_type"`
	ParentAccountID *string `db:"parent_account_id"`
	IsSystem        bool    `db:"is_system"`
	IsActive        bool    `db:"is_active"`
	AuditFields
}
