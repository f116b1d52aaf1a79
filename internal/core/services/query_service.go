package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gestika/ledger/internal/apperrors"
	"github.com/gestika/ledger/internal/core/domain"
	portsrepo "github.com/gestika/ledger/internal/core/ports/repositories"
	portssvc "github.com/gestika/ledger/internal/core/ports/services"
	"github.com/gestika/ledger/internal/dto"
	"github.com/gestika/ledger/internal/middleware"
)

type queryService struct {
	queryRepo    portsrepo.QueryRepositoryFacade
	exerciseRepo portsrepo.ExerciseRepositoryFacade
}

// NewQueryService creates the ledger read-side service.
func NewQueryService(queryRepo portsrepo.QueryRepositoryFacade, exerciseRepo portsrepo.ExerciseRepositoryFacade) portssvc.LedgerQuerySvcFacade {
	return &queryService{queryRepo: queryRepo, exerciseRepo: exerciseRepo}
}

var _ portssvc.LedgerQuerySvcFacade = (*queryService)(nil)

// ListEntries retrieves committed entry records matching the filters.
func (s *queryService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.EntryFilter{
		ExerciseID:   params.ExerciseID,
		JournalID:    params.JournalID,
		AccountID:    params.AccountID,
		SourceModule: domain.SourceModule(params.SourceModule),
		From:         params.From,
		To:           params.To,
	}

	records, nextToken, err := s.queryRepo.ListEntryRecords(ctx, tenantID, filter, params.Limit, params.NextToken)
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			logger.Error("Failed to list entry records", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		}
		return nil, err
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryRecordResponses(records),
		NextToken: nextToken,
	}, nil
}

// TrialBalance aggregates per-account totals for one exercise.
func (s *queryService) TrialBalance(ctx context.Context, tenantID string, exerciseID string) (*dto.TrialBalanceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Resolve the exercise first so an unknown ID reports not-found instead
	// of an empty report.
	if _, err := s.exerciseRepo.FindExerciseByID(ctx, tenantID, exerciseID); err != nil {
		return nil, err
	}

	rows, err := s.queryRepo.TrialBalance(ctx, tenantID, exerciseID)
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()), slog.String("exercise_id", exerciseID))
		return nil, err
	}

	resp := dto.ToTrialBalanceResponse(exerciseID, rows)
	return &resp, nil
}
