package services

import (
	portsrepo "github.com/gestika/ledger/internal/core/ports/repositories"
	portssvc "github.com/gestika/ledger/internal/core/ports/services"
	"github.com/gestika/ledger/internal/platform/audit"
	"github.com/gestika/ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, auditor audit.Notifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.PostingRepo)
	container.Exercise = NewExerciseService(repos.ExerciseRepo, repos.TenantRepo, auditor)

	seeder := NewSeedService(repos.AccountRepo, repos.JournalRepo, repos.ExerciseRepo)
	container.Tenant = NewTenantService(repos.TenantRepo, seeder, cfg.DefaultRoundingTolerance)

	container.Posting = NewPostingService(
		repos.PostingRepo,
		repos.ExerciseRepo,
		repos.TenantRepo,
		container.Account,
		container.Journal,
		auditor,
	)
	container.Query = NewQueryService(repos.QueryRepo, repos.ExerciseRepo)
	container.ProducerToken = NewProducerTokenService(repos.ProducerTokenRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ChartOfAccountsSvcFacade = (*accountService)(nil)
	_ portssvc.PostingEngineSvcFacade   = (*postingService)(nil)
	_ portssvc.FiscalPeriodSvcFacade    = (*exerciseService)(nil)
)
