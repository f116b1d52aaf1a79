package services

import (
	"context"

	"github.com/gestika/ledger/internal/core/domain"
	"github.com/gestika/ledger/internal/dto"
)

// ProducerTokenSvcFacade issues and verifies the credentials upstream
// modules present when posting.
type ProducerTokenSvcFacade interface {
	// IssueToken creates a token for one source module of a tenant. The plain
	// value is returned once and only its bcrypt hash is stored.
	IssueToken(ctx context.Context, tenantID string, req dto.CreateProducerTokenRequest, actorID string) (*dto.ProducerTokenResponse, error)

	// Authenticate verifies a presented plain token against the tenant's
	// active credentials and returns the matching token record.
	Authenticate(ctx context.Context, tenantID string, plainToken string) (*domain.ProducerToken, error)
}
