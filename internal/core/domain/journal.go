package domain

// Journal is a named book that postings are filed under (sales journal,
// payroll journal, ...). Effectively immutable once entries reference it.
type Journal struct {
	JournalID string `json:"journalID"` // Primary Key (UUID)
	TenantID  string `json:"tenantID"`  // FK -> tenants.tenant_id
	Code      string `json:"code"`      // Unique per tenant (e.g. "VT")
	Label     string `json:"label"`
	AuditFields
}
