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
	"github.com/gestika/ledger/internal/platform/audit"
	"github.com/google/uuid"
)

type exerciseService struct {
	exerciseRepo portsrepo.ExerciseRepositoryFacade
	tenantRepo   portsrepo.TenantRepositoryFacade
	auditor      audit.Notifier
}

// NewExerciseService creates the fiscal period manager.
func NewExerciseService(exerciseRepo portsrepo.ExerciseRepositoryFacade, tenantRepo portsrepo.TenantRepositoryFacade, auditor audit.Notifier) portssvc.FiscalPeriodSvcFacade {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		tenantRepo:   tenantRepo,
		auditor:      auditor,
	}
}

var _ portssvc.FiscalPeriodSvcFacade = (*exerciseService)(nil)

// OpenExercise opens the fiscal exercise for a year. Start and end dates
// default to the calendar year bounds.
func (s *exerciseService) OpenExercise(ctx context.Context, tenantID string, req dto.OpenExerciseRequest, actorID string) (*domain.FiscalExercise, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	startDate := time.Date(req.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	endDate := time.Date(req.Year, time.December, 31, 23, 59, 59, 0, time.UTC)
	if req.EndDate != nil {
		endDate = *req.EndDate
	}
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("%w: exercise end date must be after start date", apperrors.ErrValidation)
	}

	exercise := domain.FiscalExercise{
		ExerciseID: uuid.NewString(),
		TenantID:   tenantID,
		Year:       req.Year,
		StartDate:  startDate,
		EndDate:    endDate,
		IsActive:   true,
		IsClosed:   false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.exerciseRepo.SaveExercise(ctx, exercise); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to save exercise in repository", slog.String("error", err.Error()), slog.String("tenant_id", tenantID), slog.Int("year", req.Year))
		}
		return nil, err
	}

	logger.Info("Fiscal exercise opened", slog.String("tenant_id", tenantID), slog.String("exercise_id", exercise.ExerciseID), slog.Int("year", req.Year))
	return &exercise, nil
}

// CloseExercise irreversibly freezes an exercise. The storage layer runs the
// terminal balance sweep and serializes against in-flight postings; this
// layer resolves the tenant tolerance and emits the closure audit event.
func (s *exerciseService) CloseExercise(ctx context.Context, tenantID string, exerciseID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return err
	}

	if err := s.exerciseRepo.CloseExercise(ctx, tenantID, exerciseID, tenant.RoundingTolerance, actorID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to close exercise", slog.String("error", err.Error()), slog.String("exercise_id", exerciseID))
		}
		return err
	}

	logger.Info("Fiscal exercise closed", slog.String("tenant_id", tenantID), slog.String("exercise_id", exerciseID))
	if notifyErr := s.auditor.Notify(ctx, audit.Event{
		Kind:       audit.KindExerciseClosed,
		TenantID:   tenantID,
		ExerciseID: exerciseID,
		Detail:     "fiscal exercise closed by " + actorID,
		OccurredAt: time.Now(),
	}); notifyErr != nil {
		logger.Error("Failed to publish exercise close audit event", slog.String("error", notifyErr.Error()), slog.String("exercise_id", exerciseID))
	}

	return nil
}

// GetActiveExercise returns the currently open exercise or nil when none exists.
func (s *exerciseService) GetActiveExercise(ctx context.Context, tenantID string) (*domain.FiscalExercise, error) {
	exercise, err := s.exerciseRepo.FindActiveExercise(ctx, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return exercise, nil
}

// GetExerciseByID resolves an exercise within a tenant.
func (s *exerciseService) GetExerciseByID(ctx context.Context, tenantID string, exerciseID string) (*domain.FiscalExercise, error) {
	return s.exerciseRepo.FindExerciseByID(ctx, tenantID, exerciseID)
}

// ListExercises retrieves the exercise history, newest year first.
func (s *exerciseService) ListExercises(ctx context.Context, tenantID string) (*dto.ListExercisesResponse, error) {
	exercises, err := s.exerciseRepo.ListExercises(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return &dto.ListExercisesResponse{Exercises: dto.ToExerciseResponses(exercises)}, nil
}
