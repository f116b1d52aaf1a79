package repositories

import (
	"context"
	"time"

	"github.com/gestika/ledger/internal/core/domain"
)

// ProducerTokenRepositoryFacade defines persistence for upstream credentials.
type ProducerTokenRepositoryFacade interface {
	// SaveToken persists a new producer token (hash only).
	SaveToken(ctx context.Context, token domain.ProducerToken) error

	// FindActiveTokensByTenant retrieves the active tokens of a tenant,
	// optionally narrowed to one source module.
	FindActiveTokensByTenant(ctx context.Context, tenantID string, sourceModule domain.SourceModule) ([]domain.ProducerToken, error)

	// TouchLastUsed records a successful authentication.
	TouchLastUsed(ctx context.Context, tokenID string, now time.Time) error
}
