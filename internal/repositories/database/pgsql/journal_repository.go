package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestika/ledger/internal/apperrors"
	"github.com/gestika/ledger/internal/core/domain"
	portsrepo "github.com/gestika/ledger/internal/core/ports/repositories"
	"github.com/gestika/ledger/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalColumns = `journal_id, tenant_id, code, label, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	pool *pgxpool.Pool
}

// newPgxJournalRepository creates a new repository for journal registry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{pool: pool}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func toDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID: m.JournalID,
		TenantID:  m.TenantID,
		Code:      m.Code,
		Label:     m.Label,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.TenantID,
		&m.Code,
		&m.Label,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveJournal inserts a new journal.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		journal.JournalID,
		journal.TenantID,
		journal.Code,
		journal.Label,
		journal.CreatedAt,
		journal.CreatedBy,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: code %s", apperrors.ErrDuplicateCode, journal.Code)
		}
		return fmt.Errorf("failed to save journal %s: %w", journal.JournalID, err)
	}
	return nil
}

// FindJournalByID retrieves a journal by its ID, scoped to the tenant.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE tenant_id = $1 AND journal_id = $2;
	`
	modelJournal, err := scanJournal(r.pool.QueryRow(ctx, query, tenantID, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJournalNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}

	domainJournal := toDomainJournal(modelJournal)
	return &domainJournal, nil
}

// FindJournalByCode retrieves a journal by its code, scoped to the tenant.
func (r *PgxJournalRepository) FindJournalByCode(ctx context.Context, tenantID string, code string) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE tenant_id = $1 AND code = $2;
	`
	modelJournal, err := scanJournal(r.pool.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJournalNotFound
		}
		return nil, fmt.Errorf("failed to find journal by code %s: %w", code, err)
	}

	domainJournal := toDomainJournal(modelJournal)
	return &domainJournal, nil
}

// DeleteJournal removes a journal row. The foreign key from postings backs
// up the service-level reference check, so a posting committed between the
// check and the delete still blocks the removal.
func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, tenantID string, journalID string) error {
	query := `DELETE FROM journals WHERE tenant_id = $1 AND journal_id = $2;`
	tag, err := r.pool.Exec(ctx, query, tenantID, journalID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: journal %s", apperrors.ErrJournalReferenced, journalID)
		}
		return fmt.Errorf("failed to delete journal %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrJournalNotFound
	}
	return nil
}

// ListJournals retrieves every journal of a tenant ordered by code.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, tenantID string) ([]domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE tenant_id = $1
		ORDER BY code;
	`
	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		modelJournal, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row for tenant %s: %w", tenantID, err)
		}
		journals = append(journals, toDomainJournal(modelJournal))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal rows for tenant %s: %w", tenantID, rows.Err())
	}

	return journals, nil
}
