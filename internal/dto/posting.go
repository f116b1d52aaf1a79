package dto

import (
	"time"

	"github.com/gestika/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineInput is one proposed debit or credit leg of a posting request.
// Per line one side is expected to be zero; the engine enforces it.
type EntryLineInput struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Label     string          `json:"label" binding:"max=500"`
}

// PostEntryRequest is the full input of LedgerPostingEngine.post: the batch
// is committed atomically or rejected whole.
type PostEntryRequest struct {
	ExerciseID   string           `json:"exerciseID" binding:"required"`
	JournalID    string           `json:"journalID" binding:"required"`
	EntryDate    time.Time        `json:"entryDate" binding:"required"`
	Reference    string           `json:"reference" binding:"required,max=100"`
	SourceModule string           `json:"sourceModule" binding:"required,sourcemodule"`
	SourceID     string           `json:"sourceID" binding:"required,max=100"`
	Label        string           `json:"label" binding:"max=500"`
	Lines        []EntryLineInput `json:"lines" binding:"required,min=2,dive"`
}

// EntryLineResponse defines the data returned for one committed line.
type EntryLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	LineNo    int             `json:"lineNo"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Label     string          `json:"label"`
}

// PostingResponse defines the data returned for a committed posting.
type PostingResponse struct {
	PostingID    string              `json:"postingID"`
	ExerciseID   string              `json:"exerciseID"`
	JournalID    string              `json:"journalID"`
	EntryDate    time.Time           `json:"entryDate"`
	Reference    string              `json:"reference"`
	SourceModule string              `json:"sourceModule"`
	SourceID     string              `json:"sourceID"`
	Label        string              `json:"label"`
	ReversalOf   *string             `json:"reversalOf,omitempty"`
	Lines        []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	CreatedBy    string              `json:"createdBy"`
}

// ToEntryLineResponse converts a domain.EntryLine to its response DTO.
func ToEntryLineResponse(l *domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:    l.LineID,
		AccountID: l.AccountID,
		LineNo:    l.LineNo,
		Debit:     l.Debit,
		Credit:    l.Credit,
		Label:     l.Label,
	}
}

// ToPostingResponse converts a domain.Posting (with lines) to its response DTO.
func ToPostingResponse(p *domain.Posting) PostingResponse {
	resp := PostingResponse{
		PostingID:    p.PostingID,
		ExerciseID:   p.ExerciseID,
		JournalID:    p.JournalID,
		EntryDate:    p.EntryDate,
		Reference:    p.Reference,
		SourceModule: string(p.SourceModule),
		SourceID:     p.SourceID,
		Label:        p.Label,
		ReversalOf:   p.ReversalOf,
		CreatedAt:    p.CreatedAt,
		CreatedBy:    p.CreatedBy,
	}
	if len(p.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(p.Lines))
		for i := range p.Lines {
			resp.Lines[i] = ToEntryLineResponse(&p.Lines[i])
		}
	}
	return resp
}
