package services

import (
	"context"

	"github.com/gestika/ledger/internal/core/domain"
	"github.com/gestika/ledger/internal/dto"
)

// FiscalPeriodSvcFacade manages the exercise state machine of a tenant:
// NoExercise -> Active(year) -> Closed(year), close being terminal.
type FiscalPeriodSvcFacade interface {
	// OpenExercise opens the exercise for a year. Fails with
	// ErrExerciseAlreadyActive when another open exercise exists, or
	// ErrDuplicateYear when the year already has a record.
	OpenExercise(ctx context.Context, tenantID string, req dto.OpenExerciseRequest, actorID string) (*domain.FiscalExercise, error)

	// CloseExercise irreversibly freezes an exercise after the terminal
	// balance sweep. Fails with ErrAlreadyClosed or ErrUnbalancedExercise.
	CloseExercise(ctx context.Context, tenantID string, exerciseID string, actorID string) error

	// GetActiveExercise returns the currently open exercise, or nil when the
	// tenant has none.
	GetActiveExercise(ctx context.Context, tenantID string) (*domain.FiscalExercise, error)

	// GetExerciseByID resolves an exercise within a tenant.
	GetExerciseByID(ctx context.Context, tenantID string, exerciseID string) (*domain.FiscalExercise, error)

	// ListExercises retrieves the exercise history, newest year first.
	ListExercises(ctx context.Context, tenantID string) (*dto.ListExercisesResponse, error)
}
