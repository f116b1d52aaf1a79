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
	"github.com/shopspring/decimal"
)

const postingColumns = `posting_id, tenant_id, exercise_id, journal_id, entry_date, reference, source_module, source_id, label, reversal_of, created_at, created_by, last_updated_at, last_updated_by`

type PgxPostingRepository struct {
	BaseRepository
}

// newPgxPostingRepository creates a new repository for posting data.
func newPgxPostingRepository(pool *pgxpool.Pool) portsrepo.PostingRepositoryFacade {
	return &PgxPostingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PostingRepositoryFacade = (*PgxPostingRepository)(nil)

func toDomainPosting(m models.Posting) domain.Posting {
	return domain.Posting{
		PostingID:    m.PostingID,
		TenantID:     m.TenantID,
		ExerciseID:   m.ExerciseID,
		JournalID:    m.JournalID,
		EntryDate:    m.EntryDate,
		Reference:    m.Reference,
		SourceModule: domain.SourceModule(m.SourceModule),
		SourceID:     m.SourceID,
		Label:        m.Label,
		ReversalOf:   m.ReversalOf,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainEntryLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:    m.LineID,
		PostingID: m.PostingID,
		TenantID:  m.TenantID,
		AccountID: m.AccountID,
		LineNo:    m.LineNo,
		Debit:     m.Debit,
		Credit:    m.Credit,
		Label:     m.Label,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}

func scanPosting(row pgx.Row) (models.Posting, error) {
	var m models.Posting
	err := row.Scan(
		&m.PostingID,
		&m.TenantID,
		&m.ExerciseID,
		&m.JournalID,
		&m.EntryDate,
		&m.Reference,
		&m.SourceModule,
		&m.SourceID,
		&m.Label,
		&m.ReversalOf,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePosting writes the posting header and all its entry lines within one
// database transaction. Two storage-level guards live here:
//
//   - The target exercise row is locked FOR SHARE and re-checked inside the
//     transaction. CloseExercise takes FOR UPDATE on the same row, so a
//     posting can never commit into an exercise that is concurrently closing.
//   - The unique index on (tenant_id, exercise_id, reference) turns a
//     reference race into a commit-time conflict instead of a lost check.
func (r *PgxPostingRepository) SavePosting(ctx context.Context, posting domain.Posting, lines []domain.EntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `
		SELECT is_active, is_closed
		FROM fiscal_exercises
		WHERE tenant_id = $1 AND exercise_id = $2
		FOR SHARE;
	`
	var isActive, isClosed bool
	if err := tx.QueryRow(ctx, lockQuery, posting.TenantID, posting.ExerciseID).Scan(&isActive, &isClosed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrExerciseNotFound
		}
		return fmt.Errorf("failed to lock exercise %s for posting: %w", posting.ExerciseID, err)
	}
	if isClosed || !isActive {
		return fmt.Errorf("%w: exercise %s", apperrors.ErrClosedExercise, posting.ExerciseID)
	}

	headerQuery := `
		INSERT INTO postings (` + postingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, headerQuery,
		posting.PostingID,
		posting.TenantID,
		posting.ExerciseID,
		posting.JournalID,
		posting.EntryDate,
		posting.Reference,
		string(posting.SourceModule),
		posting.SourceID,
		posting.Label,
		posting.ReversalOf,
		posting.CreatedAt,
		posting.CreatedBy,
		posting.LastUpdatedAt,
		posting.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateReference, posting.Reference)
		}
		return fmt.Errorf("failed to insert posting %s: %w", posting.PostingID, err)
	}

	lineQuery := `
		INSERT INTO entry_lines (line_id, posting_id, tenant_id, account_id, line_no, debit, credit, label, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			posting.PostingID,
			line.TenantID,
			line.AccountID,
			line.LineNo,
			line.Debit,
			line.Credit,
			line.Label,
			line.CreatedAt,
			line.CreatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute entry line batch for posting %s: %w", posting.PostingID, err)
	}

	return r.Commit(ctx, tx)
}

// FindPostingByReference retrieves the most recent posting carrying the
// reference within a tenant, entry lines included.
func (r *PgxPostingRepository) FindPostingByReference(ctx context.Context, tenantID string, reference string) (*domain.Posting, error) {
	headerQuery := `
		SELECT ` + postingColumns + `
		FROM postings
		WHERE tenant_id = $1 AND reference = $2
		ORDER BY created_at DESC
		LIMIT 1;
	`
	modelPosting, err := scanPosting(r.Pool.QueryRow(ctx, headerQuery, tenantID, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: reference %s", apperrors.ErrNotFound, reference)
		}
		return nil, fmt.Errorf("failed to find posting by reference %s: %w", reference, err)
	}

	lineQuery := `
		SELECT line_id, posting_id, tenant_id, account_id, line_no, debit, credit, label, created_at, created_by
		FROM entry_lines
		WHERE posting_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, lineQuery, modelPosting.PostingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry lines for posting %s: %w", modelPosting.PostingID, err)
	}
	defer rows.Close()

	lines := []domain.EntryLine{}
	for rows.Next() {
		var m models.EntryLine
		err := rows.Scan(
			&m.LineID,
			&m.PostingID,
			&m.TenantID,
			&m.AccountID,
			&m.LineNo,
			&m.Debit,
			&m.Credit,
			&m.Label,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry line for posting %s: %w", modelPosting.PostingID, err)
		}
		lines = append(lines, toDomainEntryLine(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating entry lines for posting %s: %w", modelPosting.PostingID, rows.Err())
	}

	domainPosting := toDomainPosting(modelPosting)
	domainPosting.Lines = lines
	return &domainPosting, nil
}

// ReferenceExists reports whether the reference key is already used within
// the tenant and exercise.
func (r *PgxPostingRepository) ReferenceExists(ctx context.Context, tenantID string, exerciseID string, reference string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM postings WHERE tenant_id = $1 AND exercise_id = $2 AND reference = $3
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, tenantID, exerciseID, reference).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check reference %s: %w", reference, err)
	}
	return exists, nil
}

// SumsByReference re-reads the persisted debit and credit totals of a
// reference group. This is the post-commit verification read: it goes back to
// the database rather than trusting the in-memory batch.
func (r *PgxPostingRepository) SumsByReference(ctx context.Context, tenantID string, exerciseID string, reference string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM postings p
		JOIN entry_lines l ON l.posting_id = p.posting_id
		WHERE p.tenant_id = $1 AND p.exercise_id = $2 AND p.reference = $3;
	`
	var debits, credits decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, tenantID, exerciseID, reference).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum reference group %s: %w", reference, err)
	}
	return debits, credits, nil
}

// CountPostingsByJournal reports how many postings reference a journal.
func (r *PgxPostingRepository) CountPostingsByJournal(ctx context.Context, tenantID string, journalID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM postings WHERE tenant_id = $1 AND journal_id = $2;`
	if err := r.Pool.QueryRow(ctx, query, tenantID, journalID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count postings for journal %s: %w", journalID, err)
	}
	return count, nil
}
