package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gestika/ledger/internal/apperrors"
	"github.com/gestika/ledger/internal/core/domain"
	portsrepo "github.com/gestika/ledger/internal/core/ports/repositories"
	portssvc "github.com/gestika/ledger/internal/core/ports/services"
	"github.com/gestika/ledger/internal/dto"
	"github.com/gestika/ledger/internal/middleware"
	"github.com/google/uuid"
)

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates the chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.ChartOfAccountsSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.ChartOfAccountsSvcFacade = (*accountService)(nil)

// CreateAccount adds an account to the tenant's chart. The parent, when
// given, must resolve within the same tenant.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType := domain.AccountType(req.AccountType)
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	if req.ParentAccountID != nil {
		parent, err := s.accountRepo.FindAccountByID(ctx, tenantID, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidParent, *req.ParentAccountID)
			}
			return nil, err
		}
		if !parent.IsActive {
			return nil, fmt.Errorf("%w: parent %s is inactive", apperrors.ErrInvalidParent, parent.AccountID)
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		TenantID:        tenantID,
		Code:            req.Code,
		Label:           req.Label,
		AccountType:     accountType,
		ParentAccountID: req.ParentAccountID,
		IsSystem:        false,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		}
		return nil, err
	}

	logger.Info("Account created", slog.String("tenant_id", tenantID), slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID resolves an account within a tenant.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs resolves multiple accounts at once.
func (s *accountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		logger.Error("Failed to batch fetch accounts", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, err
	}
	return accounts, nil
}

// ListAccounts retrieves a paginated account list ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return &dto.ListAccountsResponse{Accounts: dto.ToAccountResponses(accounts)}, nil
}

// UpdateAccount applies partial changes to an account. Code and type changes
// on system accounts are rejected; those rows came from the seed and the
// posting rules depend on them.
func (s *accountService) UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	if account.IsSystem && (req.Code != nil || req.AccountType != nil) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrProtectedAccount, accountID)
	}

	if req.Code != nil {
		account.Code = *req.Code
	}
	if req.Label != nil {
		account.Label = *req.Label
	}
	if req.AccountType != nil {
		accountType := domain.AccountType(*req.AccountType)
		if !accountType.IsValid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		account.AccountType = accountType
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = actorID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated", slog.String("tenant_id", tenantID), slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount soft-disables an account. System accounts and accounts
// with children are protected; history referencing the account stays intact.
func (s *accountService) DeactivateAccount(ctx context.Context, tenantID string, accountID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	if account.IsSystem {
		return fmt.Errorf("%w: %s", apperrors.ErrProtectedAccount, accountID)
	}

	hasChildren, err := s.accountRepo.HasChildAccounts(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	if hasChildren {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountHasChildren, accountID)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, tenantID, accountID, actorID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to deactivate account in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deactivated", slog.String("tenant_id", tenantID), slog.String("account_id", accountID))
	return nil
}
