package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryRecord is the flat read model served to reporting consumers: one
// committed entry line joined with its posting header and the codes of the
// journal and account it references.
type EntryRecord struct {
	LineID       string          `json:"lineID"`
	PostingID    string          `json:"postingID"`
	TenantID     string          `json:"tenantID"`
	ExerciseID   string          `json:"exerciseID"`
	JournalID    string          `json:"journalID"`
	JournalCode  string          `json:"journalCode"`
	AccountID    string          `json:"accountID"`
	AccountCode  string          `json:"accountCode"`
	EntryDate    time.Time       `json:"entryDate"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Label        string          `json:"label"`
	Reference    string          `json:"reference"`
	SourceModule SourceModule    `json:"sourceModule"`
	SourceID     string          `json:"sourceID"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// TrialBalanceRow aggregates the committed debits and credits of one account
// within an exercise.
type TrialBalanceRow struct {
	AccountID    string          `json:"accountID"`
	AccountCode  string          `json:"accountCode"`
	AccountLabel string          `json:"accountLabel"`
	AccountType  AccountType     `json:"accountType"`
	Debits       decimal.Decimal `json:"debits"`
	Credits      decimal.Decimal `json:"credits"`
	Balance      decimal.Decimal `json:"balance"` // Debits - Credits
}
