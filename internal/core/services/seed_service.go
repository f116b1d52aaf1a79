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
	"github.com/gestika/ledger/internal/middleware"
	"github.com/google/uuid"
)

// seedAccount is one line of the default chart of accounts.
type seedAccount struct {
	code       string
	label      string
	acctType   domain.AccountType
	parentCode string
}

// defaultAccounts is the French PCG subset every fresh tenant starts with.
// Codes follow the plan comptable general class numbering.
var defaultAccounts = []seedAccount{
	{code: "101", label: "Capital", acctType: domain.Liability},
	{code: "401", label: "Fournisseurs", acctType: domain.Liability},
	{code: "411", label: "Clients", acctType: domain.Asset},
	{code: "421", label: "Personnel - remunerations dues", acctType: domain.Liability},
	{code: "431", label: "Securite sociale", acctType: domain.Liability},
	{code: "445", label: "Etat - taxes sur le chiffre d'affaires", acctType: domain.Liability},
	{code: "4456", label: "TVA deductible", acctType: domain.Asset, parentCode: "445"},
	{code: "4457", label: "TVA collectee", acctType: domain.Liability, parentCode: "445"},
	{code: "512", label: "Banque", acctType: domain.Treasury},
	{code: "530", label: "Caisse", acctType: domain.Treasury},
	{code: "601", label: "Achats de matieres premieres", acctType: domain.Expense},
	{code: "607", label: "Achats de marchandises", acctType: domain.Expense},
	{code: "641", label: "Remunerations du personnel", acctType: domain.Expense},
	{code: "645", label: "Charges de securite sociale", acctType: domain.Expense},
	{code: "701", label: "Ventes de produits finis", acctType: domain.Revenue},
	{code: "707", label: "Ventes de marchandises", acctType: domain.Revenue},
	{code: "758", label: "Produits divers de gestion courante", acctType: domain.Revenue},
}

// defaultJournals is the standard journal set: ventes, achats, paie,
// tresorerie and operations diverses.
var defaultJournals = []struct {
	code  string
	label string
}{
	{code: "VT", label: "Journal des ventes"},
	{code: "AC", label: "Journal des achats"},
	{code: "PA", label: "Journal de paie"},
	{code: "TR", label: "Journal de tresorerie"},
	{code: "OD", label: "Operations diverses"},
}

type seedService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	journalRepo  portsrepo.JournalRepositoryFacade
	exerciseRepo portsrepo.ExerciseRepositoryFacade
}

// NewSeedService creates the tenant bootstrap seeder.
func NewSeedService(accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, exerciseRepo portsrepo.ExerciseRepositoryFacade) portssvc.SeederSvc {
	return &seedService{
		accountRepo:  accountRepo,
		journalRepo:  journalRepo,
		exerciseRepo: exerciseRepo,
	}
}

var _ portssvc.SeederSvc = (*seedService)(nil)

// SeedTenantDefaults populates a tenant with the default chart, journal set
// and an open exercise for the current calendar year. Idempotent: each block
// only runs when its target is still empty, so a retried provisioning call
// never duplicates configuration.
func (s *seedService) SeedTenantDefaults(ctx context.Context, tenantID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	count, err := s.accountRepo.CountAccounts(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to check existing accounts for tenant %s: %w", tenantID, err)
	}
	if count == 0 {
		if err := s.seedAccounts(ctx, tenantID, actorID, now); err != nil {
			return err
		}
		logger.Info("Seeded default chart of accounts", slog.String("tenant_id", tenantID), slog.Int("accounts", len(defaultAccounts)))
	}

	for _, j := range defaultJournals {
		_, err := s.journalRepo.FindJournalByCode(ctx, tenantID, j.code)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check journal %s for tenant %s: %w", j.code, tenantID, err)
		}
		journal := domain.Journal{
			JournalID: uuid.NewString(),
			TenantID:  tenantID,
			Code:      j.code,
			Label:     j.label,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
			// A concurrent seed run may have inserted it first.
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("failed to seed journal %s for tenant %s: %w", j.code, tenantID, err)
		}
	}

	if _, err := s.exerciseRepo.FindActiveExercise(ctx, tenantID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check active exercise for tenant %s: %w", tenantID, err)
		}
		year := now.Year()
		exercise := domain.FiscalExercise{
			ExerciseID: uuid.NewString(),
			TenantID:   tenantID,
			Year:       year,
			StartDate:  time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC),
			IsActive:   true,
			IsClosed:   false,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if err := s.exerciseRepo.SaveExercise(ctx, exercise); err != nil && !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("failed to seed exercise %d for tenant %s: %w", year, tenantID, err)
		}
	}

	return nil
}

func (s *seedService) seedAccounts(ctx context.Context, tenantID string, actorID string, now time.Time) error {
	// Two passes so parent references resolve regardless of declaration order.
	idsByCode := make(map[string]string, len(defaultAccounts))
	for _, sa := range defaultAccounts {
		idsByCode[sa.code] = uuid.NewString()
	}

	for _, sa := range defaultAccounts {
		var parentID *string
		if sa.parentCode != "" {
			id := idsByCode[sa.parentCode]
			parentID = &id
		}
		account := domain.Account{
			AccountID:       idsByCode[sa.code],
			TenantID:        tenantID,
			Code:            sa.code,
			Label:           sa.label,
			AccountType:     sa.acctType,
			ParentAccountID: parentID,
			IsSystem:        true,
			IsActive:        true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("failed to seed account %s for tenant %s: %w", sa.code, tenantID, err)
		}
	}
	return nil
}
