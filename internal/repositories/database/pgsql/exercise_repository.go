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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const exerciseColumns = `exercise_id, tenant_id, year, start_date, end_date, is_active, is_closed, created_at, created_by, last_updated_at, last_updated_by`

type PgxExerciseRepository struct {
	BaseRepository
}

// newPgxExerciseRepository creates a new repository for fiscal exercise data.
func newPgxExerciseRepository(pool *pgxpool.Pool) portsrepo.ExerciseRepositoryFacade {
	return &PgxExerciseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExerciseRepositoryFacade = (*PgxExerciseRepository)(nil)

func toDomainExercise(m models.FiscalExercise) domain.FiscalExercise {
	return domain.FiscalExercise{
		ExerciseID: m.ExerciseID,
		TenantID:   m.TenantID,
		Year:       m.Year,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		IsActive:   m.IsActive,
		IsClosed:   m.IsClosed,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanExercise(row pgx.Row) (models.FiscalExercise, error) {
	var m models.FiscalExercise
	err := row.Scan(
		&m.ExerciseID,
		&m.TenantID,
		&m.Year,
		&m.StartDate,
		&m.EndDate,
		&m.IsActive,
		&m.IsClosed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveExercise inserts a new fiscal exercise. The year uniqueness and the
// single-open-exercise rule are both enforced by database constraints, so the
// constraint name tells the two apart.
func (r *PgxExerciseRepository) SaveExercise(ctx context.Context, exercise domain.FiscalExercise) error {
	query := `
		INSERT INTO fiscal_exercises (` + exerciseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		exercise.ExerciseID,
		exercise.TenantID,
		exercise.Year,
		exercise.StartDate,
		exercise.EndDate,
		exercise.IsActive,
		exercise.IsClosed,
		exercise.CreatedAt,
		exercise.CreatedBy,
		exercise.LastUpdatedAt,
		exercise.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "uq_fiscal_exercises_one_open" {
				return fmt.Errorf("%w: tenant %s", apperrors.ErrExerciseAlreadyActive, exercise.TenantID)
			}
			return fmt.Errorf("%w: year %d", apperrors.ErrDuplicateYear, exercise.Year)
		}
		return fmt.Errorf("failed to save exercise %s: %w", exercise.ExerciseID, err)
	}
	return nil
}

// FindExerciseByID retrieves an exercise by its ID, scoped to the tenant.
func (r *PgxExerciseRepository) FindExerciseByID(ctx context.Context, tenantID string, exerciseID string) (*domain.FiscalExercise, error) {
	query := `
		SELECT ` + exerciseColumns + `
		FROM fiscal_exercises
		WHERE tenant_id = $1 AND exercise_id = $2;
	`
	m, err := scanExercise(r.Pool.QueryRow(ctx, query, tenantID, exerciseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExerciseNotFound
		}
		return nil, fmt.Errorf("failed to find exercise by ID %s: %w", exerciseID, err)
	}

	d := toDomainExercise(m)
	return &d, nil
}

// FindActiveExercise retrieves the tenant's open active exercise, if any.
func (r *PgxExerciseRepository) FindActiveExercise(ctx context.Context, tenantID string) (*domain.FiscalExercise, error) {
	query := `
		SELECT ` + exerciseColumns + `
		FROM fiscal_exercises
		WHERE tenant_id = $1 AND is_active = TRUE AND is_closed = FALSE;
	`
	m, err := scanExercise(r.Pool.QueryRow(ctx, query, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no active exercise for tenant %s", apperrors.ErrNotFound, tenantID)
		}
		return nil, fmt.Errorf("failed to find active exercise for tenant %s: %w", tenantID, err)
	}

	d := toDomainExercise(m)
	return &d, nil
}

// ListExercises retrieves the exercise history of a tenant, newest year first.
func (r *PgxExerciseRepository) ListExercises(ctx context.Context, tenantID string) ([]domain.FiscalExercise, error) {
	query := `
		SELECT ` + exerciseColumns + `
		FROM fiscal_exercises
		WHERE tenant_id = $1
		ORDER BY year DESC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercises for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	exercises := []domain.FiscalExercise{}
	for rows.Next() {
		m, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exercise row for tenant %s: %w", tenantID, err)
		}
		exercises = append(exercises, toDomainExercise(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating exercise rows for tenant %s: %w", tenantID, rows.Err())
	}

	return exercises, nil
}

// CloseExercise transitions an exercise to its terminal closed state within a
// single database transaction. The exercise row is locked FOR UPDATE, which
// serializes the close against in-flight postings holding FOR SHARE on the
// same row: once this lock is granted every committed posting is visible and
// no new one can slip in.
func (r *PgxExerciseRepository) CloseExercise(ctx context.Context, tenantID string, exerciseID string, tolerance decimal.Decimal, actorID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `
		SELECT is_closed
		FROM fiscal_exercises
		WHERE tenant_id = $1 AND exercise_id = $2
		FOR UPDATE;
	`
	var isClosed bool
	if err := tx.QueryRow(ctx, lockQuery, tenantID, exerciseID).Scan(&isClosed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrExerciseNotFound
		}
		return fmt.Errorf("failed to lock exercise %s for close: %w", exerciseID, err)
	}
	if isClosed {
		return fmt.Errorf("%w: exercise %s", apperrors.ErrAlreadyClosed, exerciseID)
	}

	// Terminal sweep: every reference group must balance within tolerance.
	// One offender is enough to veto the close; report the first by reference.
	sweepQuery := `
		SELECT p.reference, SUM(l.debit), SUM(l.credit)
		FROM postings p
		JOIN entry_lines l ON l.posting_id = p.posting_id
		WHERE p.tenant_id = $1 AND p.exercise_id = $2
		GROUP BY p.reference
		HAVING ABS(SUM(l.debit) - SUM(l.credit)) > $3
		ORDER BY p.reference
		LIMIT 1;
	`
	var reference string
	var debits, credits decimal.Decimal
	err = tx.QueryRow(ctx, sweepQuery, tenantID, exerciseID, tolerance).Scan(&reference, &debits, &credits)
	if err == nil {
		return fmt.Errorf("%w: reference %s (debits=%s credits=%s)",
			apperrors.ErrUnbalancedExercise, reference, debits.String(), credits.String())
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to run balance sweep for exercise %s: %w", exerciseID, err)
	}

	updateQuery := `
		UPDATE fiscal_exercises
		SET is_closed = TRUE, is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND exercise_id = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery, tenantID, exerciseID, now, actorID); err != nil {
		return fmt.Errorf("failed to mark exercise %s closed: %w", exerciseID, err)
	}

	return r.Commit(ctx, tx)
}
