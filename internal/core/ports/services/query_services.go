package services

import (
	"context"

	"github.com/gestika/ledger/internal/dto"
)

// LedgerQuerySvcFacade is the read side over committed entries. Every call is
// tenant scoped; there is no cross-tenant read path.
type LedgerQuerySvcFacade interface {
	// ListEntries retrieves committed entry records matching the filters,
	// ordered by entry date descending then creation time descending.
	ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// TrialBalance aggregates per-account totals for one exercise.
	TrialBalance(ctx context.Context, tenantID string, exerciseID string) (*dto.TrialBalanceResponse, error)
}
