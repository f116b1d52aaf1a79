package models

// Journal is the persistence row for a named posting book.
type Journal struct {
	JournalID string `db:"journal_id"`
	TenantID  string `db:"tenant_id"`
	Code      string `db:"code"`
	Label     string `db:"label"`
	AuditFields
}
