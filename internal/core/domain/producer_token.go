package domain

import "time"

// ProducerToken is the credential an upstream module (sales, payroll, ...)
// presents when calling the posting engine. The token value itself is only
// held hashed; TokenHash never leaves the persistence boundary.
type ProducerToken struct {
	TokenID      string       `json:"tokenID"`
	TenantID     string       `json:"tenantID"`
	SourceModule SourceModule `json:"sourceModule"`
	TokenHash    string       `json:"-"`
	Label        string       `json:"label"`
	IsActive     bool         `json:"isActive"`
	LastUsedAt   *time.Time   `json:"lastUsedAt,omitempty"`
	AuditFields
}
