package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceModule identifies the upstream business subsystem that originated a
// posting request. The set is closed: free-form tags are rejected at the
// boundary.
type SourceModule string

const (
	SourceSales      SourceModule = "SALES"
	SourcePayroll    SourceModule = "PAYROLL"
	SourceTreasury   SourceModule = "TREASURY"
	SourcePurchasing SourceModule = "PURCHASING"
	SourceInventory  SourceModule = "INVENTORY"
)

// IsValid reports whether m is one of the recognized source modules.
func (m SourceModule) IsValid() bool {
	switch m {
	case SourceSales, SourcePayroll, SourceTreasury, SourcePurchasing, SourceInventory:
		return true
	}
	return false
}

// SourceModules lists every recognized source module tag.
func SourceModules() []SourceModule {
	return []SourceModule{SourceSales, SourcePayroll, SourceTreasury, SourcePurchasing, SourceInventory}
}

// Posting is the header row that groups the entry lines of one logical
// business transaction. The reference key is unique within a tenant and
// exercise, which is what makes double-posting a commit-time conflict.
type Posting struct {
	PostingID    string       `json:"postingID"` // Primary Key (UUID)
	TenantID     string       `json:"tenantID"`
	ExerciseID   string       `json:"exerciseID"`
	JournalID    string       `json:"journalID"`
	EntryDate    time.Time    `json:"entryDate"`
	Reference    string       `json:"reference"` // Unique per tenant+exercise
	SourceModule SourceModule `json:"sourceModule"`
	SourceID     string       `json:"sourceID"` // Back-reference to the originating record, not owned
	Label        string       `json:"label"`
	// ReversalOf links a correcting posting back to the reference it reverses.
	ReversalOf *string     `json:"reversalOf,omitempty"`
	Lines      []EntryLine `json:"lines,omitempty"`
	AuditFields
}

// EntryLine is one leg of a double-entry posting, the atomic persisted unit.
// Lines are write-once: corrections are new postings, never mutations.
type EntryLine struct {
	LineID    string          `json:"lineID"` // Primary Key (UUID)
	PostingID string          `json:"postingID"`
	TenantID  string          `json:"tenantID"`
	AccountID string          `json:"accountID"`
	LineNo    int             `json:"lineNo"` // Position within the posting, 1-based
	Debit     decimal.Decimal `json:"debit"`  // >= 0
	Credit    decimal.Decimal `json:"credit"` // >= 0
	Label     string          `json:"label"`
	CreatedAt time.Time       `json:"createdAt"`
	CreatedBy string          `json:"createdBy"` // Actor ID
}

// SumDebitsCredits totals the debit and credit columns of a line set.
func SumDebitsCredits(lines []EntryLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}

// IsBalanced reports whether the line set satisfies the balance invariant:
// |sum(debit) - sum(credit)| <= tolerance.
func IsBalanced(lines []EntryLine, tolerance decimal.Decimal) bool {
	debits, credits := SumDebitsCredits(lines)
	return debits.Sub(credits).Abs().LessThanOrEqual(tolerance)
}
