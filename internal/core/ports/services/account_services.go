package services

import (
	"context"

	"github.com/gestika/ledger/internal/core/domain"
	"github.com/gestika/ledger/internal/dto"
)

// ChartOfAccountsReaderSvc defines read operations over the chart of accounts.
type ChartOfAccountsReaderSvc interface {
	// GetAccountByID resolves an account within a tenant. An account of
	// another tenant is reported as ErrAccountNotFound, never leaked.
	GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// GetAccountsByIDs resolves multiple accounts at once (posting validation path).
	GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated account list ordered by code.
	ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error)
}

// ChartOfAccountsWriterSvc defines configuration operations over the chart.
type ChartOfAccountsWriterSvc interface {
	// CreateAccount adds an account to the tenant's chart.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)

	// UpdateAccount applies partial changes; code/type changes on system
	// accounts fail with ErrProtectedAccount.
	UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error)

	// DeactivateAccount soft-disables an account; rejected while child
	// accounts exist or when the account is system protected.
	DeactivateAccount(ctx context.Context, tenantID string, accountID string, actorID string) error
}

// ChartOfAccountsSvcFacade combines the chart-of-accounts service interfaces.
type ChartOfAccountsSvcFacade interface {
	ChartOfAccountsReaderSvc
	ChartOfAccountsWriterSvc
}
