package pgsql

import (
	portsrepo "github.com/gestika/ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	tenantRepo := newPgxTenantRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	exerciseRepo := newPgxExerciseRepository(dbPool)
	postingRepo := newPgxPostingRepository(dbPool)
	queryRepo := newPgxQueryRepository(dbPool)
	producerTokenRepo := newPgxProducerTokenRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TenantRepo:        tenantRepo,
		AccountRepo:       accountRepo,
		JournalRepo:       journalRepo,
		ExerciseRepo:      exerciseRepo,
		PostingRepo:       postingRepo,
		QueryRepo:         queryRepo,
		ProducerTokenRepo: producerTokenRepo,
	}
}
