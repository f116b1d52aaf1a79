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
	"github.com/gestika/ledger/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// producerTokenBytes is the entropy of an issued token (hex doubles it on the wire).
const producerTokenBytes = 32

type producerTokenService struct {
	tokenRepo portsrepo.ProducerTokenRepositoryFacade
}

// NewProducerTokenService creates the upstream credential service.
func NewProducerTokenService(tokenRepo portsrepo.ProducerTokenRepositoryFacade) portssvc.ProducerTokenSvcFacade {
	return &producerTokenService{tokenRepo: tokenRepo}
}

var _ portssvc.ProducerTokenSvcFacade = (*producerTokenService)(nil)

// IssueToken creates a credential for one source module of a tenant. The
// plain value is returned once; only the bcrypt hash is stored.
func (s *producerTokenService) IssueToken(ctx context.Context, tenantID string, req dto.CreateProducerTokenRequest, actorID string) (*dto.ProducerTokenResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sourceModule := domain.SourceModule(req.SourceModule)
	if !sourceModule.IsValid() {
		return nil, fmt.Errorf("%w: unknown source module %q", apperrors.ErrValidation, req.SourceModule)
	}

	plainToken, err := utils.GenerateSecureRandomString(producerTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate producer token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash producer token: %w", err)
	}

	now := time.Now()
	token := domain.ProducerToken{
		TokenID:      uuid.NewString(),
		TenantID:     tenantID,
		SourceModule: sourceModule,
		TokenHash:    string(hash),
		Label:        req.Label,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.tokenRepo.SaveToken(ctx, token); err != nil {
		logger.Error("Failed to save producer token", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, err
	}

	logger.Info("Producer token issued",
		slog.String("tenant_id", tenantID),
		slog.String("token_id", token.TokenID),
		slog.String("source_module", req.SourceModule))
	resp := dto.ToProducerTokenResponse(&token, plainToken)
	return &resp, nil
}

// Authenticate verifies a presented plain token against the tenant's active
// credentials. Bcrypt comparison runs against every candidate hash because
// the plain value carries no token ID.
func (s *producerTokenService) Authenticate(ctx context.Context, tenantID string, plainToken string) (*domain.ProducerToken, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tokens, err := s.tokenRepo.FindActiveTokensByTenant(ctx, tenantID, "")
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to load producer tokens", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		}
		return nil, err
	}

	for i := range tokens {
		if bcrypt.CompareHashAndPassword([]byte(tokens[i].TokenHash), []byte(plainToken)) == nil {
			if touchErr := s.tokenRepo.TouchLastUsed(ctx, tokens[i].TokenID, time.Now()); touchErr != nil {
				logger.Warn("Failed to record producer token usage", slog.String("error", touchErr.Error()), slog.String("token_id", tokens[i].TokenID))
			}
			return &tokens[i], nil
		}
	}

	return nil, fmt.Errorf("%w: producer token rejected", apperrors.ErrForbidden)
}
