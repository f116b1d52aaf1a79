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
	"github.com/google/uuid"
)

type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	postingRepo portsrepo.PostingRepositoryFacade
}

// NewJournalService creates the journal registry service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, postingRepo portsrepo.PostingRepositoryFacade) portssvc.JournalRegistrySvcFacade {
	return &journalService{journalRepo: journalRepo, postingRepo: postingRepo}
}

var _ portssvc.JournalRegistrySvcFacade = (*journalService)(nil)

// CreateJournal registers a new journal for a tenant.
func (s *journalService) CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, actorID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	journal := domain.Journal{
		JournalID: uuid.NewString(),
		TenantID:  tenantID,
		Code:      req.Code,
		Label:     req.Label,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save journal in repository", slog.String("error", err.Error()), slog.String("journal_id", journal.JournalID))
		}
		return nil, err
	}

	logger.Info("Journal created", slog.String("tenant_id", tenantID), slog.String("journal_id", journal.JournalID), slog.String("code", journal.Code))
	return &journal, nil
}

// GetJournalByID resolves a journal within a tenant.
func (s *journalService) GetJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal by ID in repository", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, err
	}
	return journal, nil
}

// DeleteJournal removes a journal, but only while nothing references it: a
// journal with committed postings is frozen for good.
func (s *journalService) DeleteJournal(ctx context.Context, tenantID string, journalID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID); err != nil {
		return err
	}

	count, err := s.postingRepo.CountPostingsByJournal(ctx, tenantID, journalID)
	if err != nil {
		logger.Error("Failed to count postings for journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return fmt.Errorf("failed to count postings for journal %s: %w", journalID, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: journal %s has %d postings", apperrors.ErrJournalReferenced, journalID, count)
	}

	if err := s.journalRepo.DeleteJournal(ctx, tenantID, journalID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to delete journal in repository", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return err
	}

	logger.Info("Journal deleted", slog.String("tenant_id", tenantID), slog.String("journal_id", journalID))
	return nil
}

// ListJournals retrieves the tenant's journal set.
func (s *journalService) ListJournals(ctx context.Context, tenantID string) (*dto.ListJournalsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	journals, err := s.journalRepo.ListJournals(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to list journals from repository", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	return &dto.ListJournalsResponse{Journals: dto.ToJournalResponses(journals)}, nil
}
