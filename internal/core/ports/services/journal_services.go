package services

import (
	"context"

	"github.com/gestika/ledger/internal/core/domain"
	"github.com/gestika/ledger/internal/dto"
)

// JournalRegistrySvcFacade owns the set of named journals of a tenant.
type JournalRegistrySvcFacade interface {
	// CreateJournal registers a new journal.
	CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, actorID string) (*domain.Journal, error)

	// GetJournalByID resolves a journal within a tenant.
	GetJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error)

	// ListJournals retrieves the tenant's journal set.
	ListJournals(ctx context.Context, tenantID string) (*dto.ListJournalsResponse, error)

	// DeleteJournal removes an unused journal. A journal with committed
	// postings is frozen and cannot be deleted.
	DeleteJournal(ctx context.Context, tenantID string, journalID string) error
}
