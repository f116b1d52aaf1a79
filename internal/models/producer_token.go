package models

import "time"

// ProducerToken is the persistence row for an upstream module's API credential.
// Only the bcrypt hash is stored; the plain token is shown once at issuance.
type ProducerToken struct {
	TokenID      string     `db:"token_id"`
	TenantID     string     `db:"tenant_id"`
	SourceModule string     `db:"source_module"`
	TokenHash    string     `db:"token_hash"`
	Label        string     `db:"label"`
	IsActive     bool       `db:"is_active"`
	LastUsedAt   *time.Time `db:"last_used_at"`
	AuditFields
}
