package dto

import (
	"time"

	"github.com/gestika/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListEntriesParams holds the filter set of LedgerQueryService. The tenant
// filter is carried by the route, never by this struct, and is mandatory.
type ListEntriesParams struct {
	ExerciseID   string     `form:"exerciseID"`
	JournalID    string     `form:"journalID"`
	AccountID    string     `form:"accountID"`
	SourceModule string     `form:"sourceModule" binding:"omitempty,sourcemodule"`
	From         *time.Time `form:"from" time_format:"2006-01-02"`
	To           *time.Time `form:"to" time_format:"2006-01-02"`
	Limit        int        `form:"limit"`
	NextToken    *string    `form:"nextToken"`
}

// EntryRecordResponse is the flat record reporting consumers receive; they
// perform their own locale/currency formatting.
type EntryRecordResponse struct {
	LineID       string          `json:"lineID"`
	PostingID    string          `json:"postingID"`
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
	SourceModule string          `json:"sourceModule"`
	SourceID     string          `json:"sourceID"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ListEntriesResponse wraps a page of entry records.
type ListEntriesResponse struct {
	Entries   []EntryRecordResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// TrialBalanceRowResponse is one aggregated account row of the trial balance.
type TrialBalanceRowResponse struct {
	AccountID    string          `json:"accountID"`
	AccountCode  string          `json:"accountCode"`
	AccountLabel string          `json:"accountLabel"`
	AccountType  string          `json:"accountType"`
	Debits       decimal.Decimal `json:"debits"`
	Credits      decimal.Decimal `json:"credits"`
	Balance      decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse is the full trial balance of one exercise.
type TrialBalanceResponse struct {
	ExerciseID string                    `json:"exerciseID"`
	Rows       []TrialBalanceRowResponse `json:"rows"`
	Debits     decimal.Decimal           `json:"debits"`
	Credits    decimal.Decimal           `json:"credits"`
}

// ToEntryRecordResponse converts a domain.EntryRecord to its response DTO.
func ToEntryRecordResponse(r *domain.EntryRecord) EntryRecordResponse {
	return EntryRecordResponse{
		LineID:       r.LineID,
		PostingID:    r.PostingID,
		ExerciseID:   r.ExerciseID,
		JournalID:    r.JournalID,
		JournalCode:  r.JournalCode,
		AccountID:    r.AccountID,
		AccountCode:  r.AccountCode,
		EntryDate:    r.EntryDate,
		Debit:        r.Debit,
		Credit:       r.Credit,
		Label:        r.Label,
		Reference:    r.Reference,
		SourceModule: string(r.SourceModule),
		SourceID:     r.SourceID,
		CreatedAt:    r.CreatedAt,
		CreatedBy:    r.CreatedBy,
	}
}

// ToEntryRecordResponses converts a slice of domain entry records.
func ToEntryRecordResponses(records []domain.EntryRecord) []EntryRecordResponse {
	responses := make([]EntryRecordResponse, len(records))
	for i := range records {
		responses[i] = ToEntryRecordResponse(&records[i])
	}
	return responses
}

// ToTrialBalanceResponse converts aggregated rows into the report DTO.
func ToTrialBalanceResponse(exerciseID string, rows []domain.TrialBalanceRow) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		ExerciseID: exerciseID,
		Rows:       make([]TrialBalanceRowResponse, len(rows)),
		Debits:     decimal.Zero,
		Credits:    decimal.Zero,
	}
	for i, row := range rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:    row.AccountID,
			AccountCode:  row.AccountCode,
			AccountLabel: row.AccountLabel,
			AccountType:  string(row.AccountType),
			Debits:       row.Debits,
			Credits:      row.Credits,
			Balance:      row.Balance,
		}
		resp.Debits = resp.Debits.Add(row.Debits)
		resp.Credits = resp.Credits.Add(row.Credits)
	}
	return resp
}
