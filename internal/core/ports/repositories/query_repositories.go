package repositories

import (
	"context"
	"time"

	"github.com/gestika/ledger/internal/core/domain"
)

// EntryFilter restricts an entry-record listing. All fields combine with AND;
// zero values are ignored. The tenant is passed separately and is mandatory.
type EntryFilter struct {
	ExerciseID   string
	JournalID    string
	AccountID    string
	SourceModule domain.SourceModule
	From         *time.Time
	To           *time.Time
}

// QueryRepositoryFacade defines the read-side over committed entry lines.
type QueryRepositoryFacade interface {
	// ListEntryRecords retrieves committed entry records matching the filter,
	// ordered by entry date descending then creation time descending, with
	// token-based pagination.
	ListEntryRecords(ctx context.Context, tenantID string, filter EntryFilter, limit int, nextToken *string) ([]domain.EntryRecord, *string, error)

	// TrialBalance aggregates debits and credits per account for one exercise.
	TrialBalance(ctx context.Context, tenantID string, exerciseID string) ([]domain.TrialBalanceRow, error)
}
