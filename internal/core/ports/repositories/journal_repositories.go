package repositories

import (
	"context"

	"github.com/gestika/ledger/internal/core/domain"
)

// JournalRepositoryFacade defines persistence operations for the journal
// registry. Once entries reference a journal it is frozen: the service
// layer only deletes journals with no committed postings.
type JournalRepositoryFacade interface {
	// SaveJournal persists a new journal. Returns ErrDuplicateCode when the
	// code is already taken within the tenant.
	SaveJournal(ctx context.Context, journal domain.Journal) error

	// FindJournalByID retrieves a journal within a tenant.
	FindJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error)

	// FindJournalByCode retrieves a journal by its code within a tenant.
	FindJournalByCode(ctx context.Context, tenantID string, code string) (*domain.Journal, error)

	// ListJournals retrieves every journal of a tenant ordered by code.
	ListJournals(ctx context.Context, tenantID string) ([]domain.Journal, error)

	// DeleteJournal removes a journal row. Returns ErrJournalNotFound when no
	// row matches and ErrJournalReferenced when committed postings still point
	// at it.
	DeleteJournal(ctx context.Context, tenantID string, journalID string) error
}
