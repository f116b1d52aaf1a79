package dto

import (
	"time"

	"github.com/gestika/ledger/internal/core/domain"
)

// CreateJournalRequest registers a new named journal for a tenant.
type CreateJournalRequest struct {
	Code  string `json:"code" binding:"required,max=10"`
	Label string `json:"label" binding:"required,max=200"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID string    `json:"journalID"`
	Code      string    `json:"code"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListJournalsResponse wraps the journal set of a tenant.
type ListJournalsResponse struct {
	Journals []JournalResponse `json:"journals"`
}

// ToJournalResponse converts a domain.Journal to its response DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID: j.JournalID,
		Code:      j.Code,
		Label:     j.Label,
		CreatedAt: j.CreatedAt,
	}
}

// ToJournalResponses converts a slice of domain journals.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	responses := make([]JournalResponse, len(journals))
	for i := range journals {
		responses[i] = ToJournalResponse(&journals[i])
	}
	return responses
}
