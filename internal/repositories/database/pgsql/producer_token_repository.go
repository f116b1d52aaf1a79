package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gestika/ledger/internal/apperrors"
	"github.com/gestika/ledger/internal/core/domain"
	portsrepo "github.com/gestika/ledger/internal/core/ports/repositories"
	"github.com/gestika/ledger/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const producerTokenColumns = `token_id, tenant_id, source_module, token_hash, label, is_active, last_used_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxProducerTokenRepository struct {
	pool *pgxpool.Pool
}

// newPgxProducerTokenRepository creates a new repository for producer credentials.
func newPgxProducerTokenRepository(pool *pgxpool.Pool) portsrepo.ProducerTokenRepositoryFacade {
	return &PgxProducerTokenRepository{pool: pool}
}

var _ portsrepo.ProducerTokenRepositoryFacade = (*PgxProducerTokenRepository)(nil)

func toDomainProducerToken(m models.ProducerToken) domain.ProducerToken {
	return domain.ProducerToken{
		TokenID:      m.TokenID,
		TenantID:     m.TenantID,
		SourceModule: domain.SourceModule(m.SourceModule),
		TokenHash:    m.TokenHash,
		Label:        m.Label,
		IsActive:     m.IsActive,
		LastUsedAt:   m.LastUsedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveToken persists a new producer token. Only the hash is stored.
func (r *PgxProducerTokenRepository) SaveToken(ctx context.Context, token domain.ProducerToken) error {
	query := `
		INSERT INTO producer_tokens (` + producerTokenColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		token.TokenID,
		token.TenantID,
		string(token.SourceModule),
		token.TokenHash,
		token.Label,
		token.IsActive,
		token.LastUsedAt,
		token.CreatedAt,
		token.CreatedBy,
		token.LastUpdatedAt,
		token.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save producer token %s: %w", token.TokenID, err)
	}
	return nil
}

// FindActiveTokensByTenant retrieves the active tokens of a tenant, optionally
// narrowed to one source module.
func (r *PgxProducerTokenRepository) FindActiveTokensByTenant(ctx context.Context, tenantID string, sourceModule domain.SourceModule) ([]domain.ProducerToken, error) {
	query := `
		SELECT ` + producerTokenColumns + `
		FROM producer_tokens
		WHERE tenant_id = $1 AND is_active = TRUE AND ($2 = '' OR source_module = $2)
		ORDER BY created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, tenantID, string(sourceModule))
	if err != nil {
		return nil, fmt.Errorf("failed to query producer tokens for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	tokens := []domain.ProducerToken{}
	for rows.Next() {
		var m models.ProducerToken
		err := rows.Scan(
			&m.TokenID,
			&m.TenantID,
			&m.SourceModule,
			&m.TokenHash,
			&m.Label,
			&m.IsActive,
			&m.LastUsedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan producer token row for tenant %s: %w", tenantID, err)
		}
		tokens = append(tokens, toDomainProducerToken(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating producer token rows for tenant %s: %w", tenantID, rows.Err())
	}

	return tokens, nil
}

// TouchLastUsed records a successful authentication against the token.
func (r *PgxProducerTokenRepository) TouchLastUsed(ctx context.Context, tokenID string, now time.Time) error {
	query := `
		UPDATE producer_tokens
		SET last_used_at = $2
		WHERE token_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, tokenID, now)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to touch producer token %s: %w", tokenID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
