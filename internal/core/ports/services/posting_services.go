package services

import (
	"context"

	"github.com/gestika/ledger/internal/core/domain"
	"github.com/gestika/ledger/internal/dto"
)

// PostingEngineSvcFacade is the orchestrator that turns proposed entry lines
// into committed, balanced ledger rows. Committed lines are write-once:
// corrections go through Reverse, never through mutation.
type PostingEngineSvcFacade interface {
	// Post validates the batch against the chart of accounts, the journal
	// registry, the fiscal period state and the balance invariant, then
	// commits every line atomically. The precondition failures, in check
	// order: ErrClosedExercise, ErrAccountNotFound, ErrJournalNotFound,
	// UnbalancedEntryError, ErrDuplicateReference.
	Post(ctx context.Context, tenantID string, req dto.PostEntryRequest, actorID string) (*domain.Posting, error)

	// Reverse creates the offsetting posting for a committed reference, with
	// debit and credit legs swapped and reference "REV-<original>".
	Reverse(ctx context.Context, tenantID string, reference string, actorID string) (*domain.Posting, error)

	// GetByReference retrieves a committed posting with its lines.
	GetByReference(ctx context.Context, tenantID string, reference string) (*domain.Posting, error)
}
