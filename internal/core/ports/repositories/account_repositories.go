package repositories

import (
	"context"
	"time"

	"github.com/gestika/ledger/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
// Every operation is tenant scoped; an account belonging to another tenant
// behaves exactly like a missing account.
type AccountReader interface {
	// FindAccountByID retrieves a specific account within a tenant.
	FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code within a tenant.
	FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts of a tenant keyed by ID.
	// Absent IDs are simply missing from the map.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of a tenant's accounts ordered by code.
	ListAccounts(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Account, error)

	// HasChildAccounts reports whether any account references the given one as parent.
	HasChildAccounts(ctx context.Context, tenantID string, accountID string) (bool, error)

	// CountAccounts returns the number of accounts configured for a tenant.
	CountAccounts(ctx context.Context, tenantID string) (int64, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account. Returns ErrDuplicateCode when the
	// code is already taken within the tenant.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount soft-disables an account. Accounts are never removed.
	DeactivateAccount(ctx context.Context, tenantID string, accountID string, actorID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
