package repositories

import (
	"context"
	"time"

	"github.com/gestika/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExerciseRepositoryFacade defines persistence operations for fiscal exercises.
type ExerciseRepositoryFacade interface {
	// SaveExercise persists a new exercise. Returns ErrDuplicateYear when the
	// year already has an exercise record for the tenant, and
	// ErrExerciseAlreadyActive when another open exercise exists.
	SaveExercise(ctx context.Context, exercise domain.FiscalExercise) error

	// FindExerciseByID retrieves an exercise within a tenant.
	FindExerciseByID(ctx context.Context, tenantID string, exerciseID string) (*domain.FiscalExercise, error)

	// FindActiveExercise retrieves the tenant's currently active open exercise,
	// or ErrNotFound when none exists.
	FindActiveExercise(ctx context.Context, tenantID string) (*domain.FiscalExercise, error)

	// ListExercises retrieves the exercise history of a tenant, newest year first.
	ListExercises(ctx context.Context, tenantID string) ([]domain.FiscalExercise, error)

	// CloseExercise transitions an exercise to its terminal closed state inside
	// one database transaction: the exercise row is locked against in-flight
	// postings, every reference-key group is swept against the balance
	// tolerance, and only then is the closed flag set. Returns
	// ErrAlreadyClosed or ErrUnbalancedExercise on violation.
	CloseExercise(ctx context.Context, tenantID string, exerciseID string, tolerance decimal.Decimal, actorID string, now time.Time) error
}
