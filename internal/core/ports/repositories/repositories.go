package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TenantRepo        TenantRepositoryFacade
	AccountRepo       AccountRepositoryFacade
	JournalRepo       JournalRepositoryFacade
	ExerciseRepo      ExerciseRepositoryFacade
	PostingRepo       PostingRepositoryFacade
	QueryRepo         QueryRepositoryFacade
	ProducerTokenRepo ProducerTokenRepositoryFacade
}
