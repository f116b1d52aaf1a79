package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Posting is the header row grouping the entry lines of one business
// transaction. (tenant_id, exercise_id, reference) carries a unique index.
type Posting struct {
	PostingID    string    `db:"posting_id"`
	TenantID     string    `db:"tenant_id"`
	ExerciseID   string    `db:"exercise_id"`
	JournalID    string    `db:"journal_id"`
	EntryDate    time.Time `db:"entry_date"`
	Reference    string    `db:"reference"`
	SourceModule string    `db:"source_module"`
	SourceID     string    `db:"source_id"`
	Label        string    `db:"label"`
	ReversalOf   *string   `db:"reversal_of"`
	AuditFields
}

// EntryLine is one write-once debit or credit leg.
type EntryLine struct {
	LineID    string          `db:"line_id"`
	PostingID string          `db:"posting_id"`
	TenantID  string          `db:"tenant_id"`
	AccountID string          `db:"account_id"`
	LineNo    int             `db:"line_no"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	Label     string          `db:"label"`
	CreatedAt time.Time       `db:"created_at"`
	CreatedBy string          `db:"created_by"`
}
