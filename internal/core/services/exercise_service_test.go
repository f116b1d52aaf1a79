package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/gestika/ledger/internal/apperrors"
	"github.com/gestika/ledger/internal/core/domain"
	portssvc "github.com/gestika/ledger/internal/core/ports/services"
	"github.com/gestika/ledger/internal/core/services"
	"github.com/gestika/ledger/internal/dto"
	"github.com/gestika/ledger/internal/platform/audit"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type ExerciseServiceTestSuite struct {
	suite.Suite
	mockExerciseRepo *MockExerciseRepository
	mockTenantRepo   *MockTenantRepository
	mockAuditor      *MockAuditNotifier
	service          portssvc.FiscalPeriodSvcFacade

	tenantID string
	actorID  string
	tenant   domain.Tenant
}

func (suite *ExerciseServiceTestSuite) SetupTest() {
	suite.mockExerciseRepo = new(MockExerciseRepository)
	suite.mockTenantRepo = new(MockTenantRepository)
	suite.mockAuditor = new(MockAuditNotifier)
	suite.service = services.NewExerciseService(suite.mockExerciseRepo, suite.mockTenantRepo, suite.mockAuditor)

	suite.tenantID = uuid.NewString()
	suite.actorID = uuid.NewString()
	suite.tenant = domain.Tenant{
		TenantID:          suite.tenantID,
		Name:              "Test SARL",
		CurrencyCode:      "EUR",
		RoundingTolerance: decimal.NewFromFloat(0.01),
		IsActive:          true,
	}
}

// --- Test Cases ---

func (suite *ExerciseServiceTestSuite) TestOpenExercise_DefaultsToCalendarYear() {
	ctx := context.Background()
	req := dto.OpenExerciseRequest{Year: 2024}

	var saved domain.FiscalExercise
	suite.mockExerciseRepo.On("SaveExercise", ctx, mock.AnythingOfType("domain.FiscalExercise")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.FiscalExercise) }).
		Return(nil).Once()

	exercise, err := suite.service.OpenExercise(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(exercise)
	suite.Equal(2024, exercise.Year)
	suite.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), saved.StartDate)
	suite.Equal(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), saved.EndDate)
	suite.True(saved.IsActive)
	suite.False(saved.IsClosed)
	suite.Equal(suite.actorID, saved.CreatedBy)
	suite.mockExerciseRepo.AssertExpectations(suite.T())
}

func (suite *ExerciseServiceTestSuite) TestOpenExercise_ExplicitBounds() {
	ctx := context.Background()
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	req := dto.OpenExerciseRequest{Year: 2024, StartDate: &start, EndDate: &end}

	suite.mockExerciseRepo.On("SaveExercise", ctx, mock.MatchedBy(func(e domain.FiscalExercise) bool {
		return e.StartDate.Equal(start) && e.EndDate.Equal(end)
	})).Return(nil).Once()

	_, err := suite.service.OpenExercise(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.mockExerciseRepo.AssertExpectations(suite.T())
}

func (suite *ExerciseServiceTestSuite) TestOpenExercise_EndBeforeStart() {
	ctx := context.Background()
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	req := dto.OpenExerciseRequest{Year: 2024, StartDate: &start, EndDate: &end}

	_, err := suite.service.OpenExercise(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExerciseRepo.AssertNotCalled(suite.T(), "SaveExercise", mock.Anything, mock.Anything)
}

func (suite *ExerciseServiceTestSuite) TestOpenExercise_AnotherExerciseActive() {
	ctx := context.Background()
	req := dto.OpenExerciseRequest{Year: 2025}

	suite.mockExerciseRepo.On("SaveExercise", ctx, mock.Anything).
		Return(apperrors.ErrExerciseAlreadyActive).Once()

	_, err := suite.service.OpenExercise(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExerciseAlreadyActive)
}

func (suite *ExerciseServiceTestSuite) TestCloseExercise_Success() {
	ctx := context.Background()
	exerciseID := uuid.NewString()

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(&suite.tenant, nil).Once()
	suite.mockExerciseRepo.On("CloseExercise", ctx, suite.tenantID, exerciseID, suite.tenant.RoundingTolerance, suite.actorID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockAuditor.On("Notify", ctx, mock.MatchedBy(func(e audit.Event) bool {
		return e.Kind == audit.KindExerciseClosed && e.ExerciseID == exerciseID
	})).Return(nil).Once()

	err := suite.service.CloseExercise(ctx, suite.tenantID, exerciseID, suite.actorID)

	suite.Require().NoError(err)
	suite.mockExerciseRepo.AssertExpectations(suite.T())
	suite.mockAuditor.AssertExpectations(suite.T())
}

func (suite *ExerciseServiceTestSuite) TestCloseExercise_PassesTenantTolerance() {
	ctx := context.Background()
	exerciseID := uuid.NewString()
	suite.tenant.RoundingTolerance = decimal.NewFromFloat(0.05)

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(&suite.tenant, nil).Once()
	suite.mockExerciseRepo.On("CloseExercise", ctx, suite.tenantID, exerciseID, decimal.NewFromFloat(0.05), suite.actorID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockAuditor.On("Notify", ctx, mock.Anything).Return(nil).Once()

	err := suite.service.CloseExercise(ctx, suite.tenantID, exerciseID, suite.actorID)

	suite.Require().NoError(err)
	suite.mockExerciseRepo.AssertExpectations(suite.T())
}

func (suite *ExerciseServiceTestSuite) TestCloseExercise_AlreadyClosed() {
	ctx := context.Background()
	exerciseID := uuid.NewString()

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(&suite.tenant, nil).Once()
	suite.mockExerciseRepo.On("CloseExercise", ctx, suite.tenantID, exerciseID, mock.Anything, suite.actorID, mock.Anything).
		Return(apperrors.ErrAlreadyClosed).Once()

	err := suite.service.CloseExercise(ctx, suite.tenantID, exerciseID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyClosed)
	suite.mockAuditor.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything)
}

func (suite *ExerciseServiceTestSuite) TestCloseExercise_UnbalancedReferenceBlocks() {
	ctx := context.Background()
	exerciseID := uuid.NewString()

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(&suite.tenant, nil).Once()
	suite.mockExerciseRepo.On("CloseExercise", ctx, suite.tenantID, exerciseID, mock.Anything, suite.actorID, mock.Anything).
		Return(apperrors.ErrUnbalancedExercise).Once()

	err := suite.service.CloseExercise(ctx, suite.tenantID, exerciseID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedExercise)
	suite.mockAuditor.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything)
}

func (suite *ExerciseServiceTestSuite) TestCloseExercise_AuditFailureDoesNotFailClose() {
	ctx := context.Background()
	exerciseID := uuid.NewString()

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(&suite.tenant, nil).Once()
	suite.mockExerciseRepo.On("CloseExercise", ctx, suite.tenantID, exerciseID, mock.Anything, suite.actorID, mock.Anything).
		Return(nil).Once()
	suite.mockAuditor.On("Notify", ctx, mock.Anything).Return(assert.AnError).Once()

	err := suite.service.CloseExercise(ctx, suite.tenantID, exerciseID, suite.actorID)

	suite.Require().NoError(err)
}

func (suite *ExerciseServiceTestSuite) TestGetActiveExercise_NoneIsNotAnError() {
	ctx := context.Background()

	suite.mockExerciseRepo.On("FindActiveExercise", ctx, suite.tenantID).
		Return(nil, apperrors.ErrNotFound).Once()

	exercise, err := suite.service.GetActiveExercise(ctx, suite.tenantID)

	suite.Require().NoError(err)
	suite.Nil(exercise)
}

func (suite *ExerciseServiceTestSuite) TestGetActiveExercise_Found() {
	ctx := context.Background()
	active := domain.FiscalExercise{
		ExerciseID: uuid.NewString(),
		TenantID:   suite.tenantID,
		Year:       2024,
		IsActive:   true,
	}

	suite.mockExerciseRepo.On("FindActiveExercise", ctx, suite.tenantID).Return(&active, nil).Once()

	exercise, err := suite.service.GetActiveExercise(ctx, suite.tenantID)

	suite.Require().NoError(err)
	suite.Require().NotNil(exercise)
	suite.Equal(active.ExerciseID, exercise.ExerciseID)
}

// --- Run Test Suite ---
func TestExerciseService(t *testing.T) {
	suite.Run(t, new(ExerciseServiceTestSuite))
}
