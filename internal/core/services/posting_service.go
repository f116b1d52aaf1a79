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
	"github.com/gestika/ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

type postingService struct {
	postingRepo  portsrepo.PostingRepositoryFacade
	exerciseRepo portsrepo.ExerciseRepositoryFacade
	tenantRepo   portsrepo.TenantRepositoryFacade
	accountSvc   portssvc.ChartOfAccountsReaderSvc
	journalSvc   portssvc.JournalRegistrySvcFacade
	auditor      audit.Notifier
}

// NewPostingService creates the posting engine, the single write path into
// the ledger.
func NewPostingService(
	postingRepo portsrepo.PostingRepositoryFacade,
	exerciseRepo portsrepo.ExerciseRepositoryFacade,
	tenantRepo portsrepo.TenantRepositoryFacade,
	accountSvc portssvc.ChartOfAccountsReaderSvc,
	journalSvc portssvc.JournalRegistrySvcFacade,
	auditor audit.Notifier,
) portssvc.PostingEngineSvcFacade {
	return &postingService{
		postingRepo:  postingRepo,
		exerciseRepo: exerciseRepo,
		tenantRepo:   tenantRepo,
		accountSvc:   accountSvc,
		journalSvc:   journalSvc,
		auditor:      auditor,
	}
}

var _ portssvc.PostingEngineSvcFacade = (*postingService)(nil)

// Post validates and commits one entry batch. The precondition checks run in
// a fixed order so a request failing several of them always reports the same
// error: exercise state, then accounts, then journal, then balance, then
// reference uniqueness. The storage layer repeats the exercise and reference
// checks inside the commit transaction, so a race lost between check and
// commit still fails with the same error.
func (s *postingService) Post(ctx context.Context, tenantID string, req dto.PostEntryRequest, actorID string) (*domain.Posting, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	// 1. The target exercise must exist, be open, and contain the entry date.
	exercise, err := s.exerciseRepo.FindExerciseByID(ctx, tenantID, req.ExerciseID)
	if err != nil {
		return nil, err
	}
	if !exercise.IsOpen() {
		return nil, fmt.Errorf("%w: exercise %s", apperrors.ErrClosedExercise, req.ExerciseID)
	}
	if !exercise.Contains(req.EntryDate) {
		return nil, fmt.Errorf("%w: entry date %s falls outside exercise %d", apperrors.ErrValidation, req.EntryDate.Format("2006-01-02"), exercise.Year)
	}

	// 2. Every referenced account must exist in this tenant and be active.
	accountIDs := make([]string, 0, len(req.Lines))
	seen := make(map[string]bool, len(req.Lines))
	for _, line := range req.Lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, id)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	// 3. The journal must exist in this tenant.
	if _, err := s.journalSvc.GetJournalByID(ctx, tenantID, req.JournalID); err != nil {
		return nil, err
	}

	// 4. Structural validity and the balance invariant.
	now := time.Now()
	postingID := uuid.NewString()
	lines := make([]domain.EntryLine, len(req.Lines))
	for i, input := range req.Lines {
		lines[i] = domain.EntryLine{
			LineID:    uuid.NewString(),
			PostingID: postingID,
			TenantID:  tenantID,
			AccountID: input.AccountID,
			LineNo:    i + 1,
			Debit:     input.Debit,
			Credit:    input.Credit,
			Label:     input.Label,
			CreatedAt: now,
			CreatedBy: actorID,
		}
	}
	if err := accounting.ValidateLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	debits, credits, balanced := accounting.CheckBalance(lines, tenant.RoundingTolerance)
	if !balanced {
		return nil, apperrors.NewUnbalancedEntryError(debits, credits)
	}

	// 5. The reference key must be unused within the tenant and exercise.
	exists, err := s.postingRepo.ReferenceExists(ctx, tenantID, req.ExerciseID, req.Reference)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateReference, req.Reference)
	}

	posting := domain.Posting{
		PostingID:    postingID,
		TenantID:     tenantID,
		ExerciseID:   req.ExerciseID,
		JournalID:    req.JournalID,
		EntryDate:    req.EntryDate,
		Reference:    req.Reference,
		SourceModule: domain.SourceModule(req.SourceModule),
		SourceID:     req.SourceID,
		Label:        req.Label,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.postingRepo.SavePosting(ctx, posting, lines); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to commit posting", slog.String("error", err.Error()), slog.String("reference", req.Reference))
		}
		return nil, err
	}
	posting.Lines = lines

	s.verifyCommitted(ctx, tenant, posting)

	logger.Info("Posting committed",
		slog.String("tenant_id", tenantID),
		slog.String("posting_id", postingID),
		slog.String("reference", req.Reference),
		slog.String("source_module", req.SourceModule),
		slog.Int("lines", len(lines)))
	return &posting, nil
}

// verifyCommitted re-reads the persisted totals of the reference group after
// commit. An imbalance here means the storage layer broke atomicity; that is
// not recoverable by the caller, so it escalates to the operator audit
// channel instead of failing the request.
func (s *postingService) verifyCommitted(ctx context.Context, tenant *domain.Tenant, posting domain.Posting) {
	logger := middleware.GetLoggerFromCtx(ctx)

	debits, credits, err := s.postingRepo.SumsByReference(ctx, tenant.TenantID, posting.ExerciseID, posting.Reference)
	if err != nil {
		logger.Error("Post-commit verification read failed", slog.String("error", err.Error()), slog.String("reference", posting.Reference))
		return
	}
	if accounting.WithinTolerance(debits, credits, tenant.RoundingTolerance) {
		return
	}

	event := audit.Event{
		Kind:       audit.KindPostCommitImbalance,
		TenantID:   tenant.TenantID,
		ExerciseID: posting.ExerciseID,
		Reference:  posting.Reference,
		Detail:     fmt.Sprintf("persisted totals diverge: debits=%s credits=%s", debits.String(), credits.String()),
		OccurredAt: time.Now(),
	}
	if notifyErr := s.auditor.Notify(ctx, event); notifyErr != nil {
		logger.Error("Failed to publish post-commit imbalance audit event",
			slog.String("error", notifyErr.Error()),
			slog.String("reference", posting.Reference))
	}
}

// Reverse creates the offsetting posting for a committed reference: same
// lines with debit and credit swapped, reference prefixed with REV-, dated at
// the original entry date. The reversal lands in the same exercise, so a
// closed exercise rejects it like any other posting.
func (s *postingService) Reverse(ctx context.Context, tenantID string, reference string, actorID string) (*domain.Posting, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.postingRepo.FindPostingByReference(ctx, tenantID, reference)
	if err != nil {
		return nil, err
	}
	if original.ReversalOf != nil {
		return nil, fmt.Errorf("%w: %s is itself a reversal", apperrors.ErrValidation, reference)
	}

	exercise, err := s.exerciseRepo.FindExerciseByID(ctx, tenantID, original.ExerciseID)
	if err != nil {
		return nil, err
	}
	if !exercise.IsOpen() {
		return nil, fmt.Errorf("%w: exercise %s", apperrors.ErrClosedExercise, original.ExerciseID)
	}

	now := time.Now()
	reversalID := uuid.NewString()
	reversalRef := "REV-" + reference

	lines := make([]domain.EntryLine, len(original.Lines))
	for i, l := range original.Lines {
		lines[i] = domain.EntryLine{
			LineID:    uuid.NewString(),
			PostingID: reversalID,
			TenantID:  tenantID,
			AccountID: l.AccountID,
			LineNo:    l.LineNo,
			Debit:     l.Credit,
			Credit:    l.Debit,
			Label:     l.Label,
			CreatedAt: now,
			CreatedBy: actorID,
		}
	}

	reversal := domain.Posting{
		PostingID:    reversalID,
		TenantID:     tenantID,
		ExerciseID:   original.ExerciseID,
		JournalID:    original.JournalID,
		EntryDate:    original.EntryDate,
		Reference:    reversalRef,
		SourceModule: original.SourceModule,
		SourceID:     original.SourceID,
		Label:        "Reversal of " + reference,
		ReversalOf:   &original.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.postingRepo.SavePosting(ctx, reversal, lines); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to commit reversal", slog.String("error", err.Error()), slog.String("reference", reversalRef))
		}
		return nil, err
	}
	reversal.Lines = lines

	logger.Info("Posting reversed",
		slog.String("tenant_id", tenantID),
		slog.String("original_reference", reference),
		slog.String("reversal_reference", reversalRef))
	return &reversal, nil
}

// GetByReference retrieves a committed posting with its lines.
func (s *postingService) GetByReference(ctx context.Context, tenantID string, reference string) (*domain.Posting, error) {
	return s.postingRepo.FindPostingByReference(ctx, tenantID, reference)
}
