package repositories

import (
	"context"

	"github.com/gestika/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingRepositoryFacade defines persistence operations for postings and
// their entry lines. SavePosting is the single atomic-commit boundary of the
// ledger: the header and every line land in one database transaction or not
// at all.
type PostingRepositoryFacade interface {
	// SavePosting writes the posting header and all its lines atomically.
	// Inside the transaction the target exercise row is share-locked and
	// re-checked, so a posting racing an exercise close fails with
	// ErrClosedExercise. A reference collision surfaces as
	// ErrDuplicateReference (unique index, checked at commit time).
	SavePosting(ctx context.Context, posting domain.Posting, lines []domain.EntryLine) error

	// FindPostingByReference retrieves the most recent posting carrying the
	// reference within a tenant, lines included.
	FindPostingByReference(ctx context.Context, tenantID string, reference string) (*domain.Posting, error)

	// ReferenceExists reports whether the reference key is already used within
	// the tenant and exercise (the pre-commit duplicate check).
	ReferenceExists(ctx context.Context, tenantID string, exerciseID string, reference string) (bool, error)

	// SumsByReference re-reads the persisted totals of a reference group.
	// Used by the post-commit verification pass.
	SumsByReference(ctx context.Context, tenantID string, exerciseID string, reference string) (debits, credits decimal.Decimal, err error)

	// CountPostingsByJournal reports how many postings reference a journal.
	CountPostingsByJournal(ctx context.Context, tenantID string, journalID string) (int64, error)
}
