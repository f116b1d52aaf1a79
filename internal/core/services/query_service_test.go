package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/gestika/ledger/internal/apperrors"
	"github.com/gestika/ledger/internal/core/domain"
	portsrepo "github.com/gestika/ledger/internal/core/ports/repositories"
	portssvc "github.com/gestika/ledger/internal/core/ports/services"
	"github.com/gestika/ledger/internal/core/services"
	"github.com/gestika/ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock QueryRepository ---
type MockQueryRepository struct {
	mock.Mock
}

var _ portsrepo.QueryRepositoryFacade = (*MockQueryRepository)(nil)

func (m *MockQueryRepository) ListEntryRecords(ctx context.Context, tenantID string, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.EntryRecord, *string, error) {
	args := m.Called(ctx, tenantID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.EntryRecord), returnedNextToken, args.Error(2)
}

func (m *MockQueryRepository) TrialBalance(ctx context.Context, tenantID string, exerciseID string) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, tenantID, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Test Suite Setup ---
type QueryServiceTestSuite struct {
	suite.Suite
	mockQueryRepo    *MockQueryRepository
	mockExerciseRepo *MockExerciseRepository
	service          portssvc.LedgerQuerySvcFacade

	tenantID string
}

func (suite *QueryServiceTestSuite) SetupTest() {
	suite.mockQueryRepo = new(MockQueryRepository)
	suite.mockExerciseRepo = new(MockExerciseRepository)
	suite.service = services.NewQueryService(suite.mockQueryRepo, suite.mockExerciseRepo)

	suite.tenantID = uuid.NewString()
}

// --- Test Cases ---

func (suite *QueryServiceTestSuite) TestListEntries_MapsFiltersAndToken() {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	exerciseID := uuid.NewString()
	params := dto.ListEntriesParams{
		ExerciseID:   exerciseID,
		SourceModule: "SALES",
		From:         &from,
		Limit:        25,
	}
	records := []domain.EntryRecord{
		{
			LineID:       uuid.NewString(),
			TenantID:     suite.tenantID,
			ExerciseID:   exerciseID,
			JournalCode:  "VT",
			AccountCode:  "411",
			Debit:        decimal.NewFromInt(120),
			Credit:       decimal.Zero,
			Reference:    "INV-2024-001",
			SourceModule: domain.SourceSales,
		},
	}

	suite.mockQueryRepo.On("ListEntryRecords", ctx, suite.tenantID, mock.MatchedBy(func(f portsrepo.EntryFilter) bool {
		return f.ExerciseID == exerciseID && f.SourceModule == domain.SourceSales && f.From != nil && f.From.Equal(from)
	}), 25, (*string)(nil)).Return(records, "next-page-token", nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.tenantID, params)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Entries, 1)
	suite.Equal("INV-2024-001", resp.Entries[0].Reference)
	suite.Equal("411", resp.Entries[0].AccountCode)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page-token", *resp.NextToken)
	suite.mockQueryRepo.AssertExpectations(suite.T())
}

func (suite *QueryServiceTestSuite) TestListEntries_EmptyPage() {
	ctx := context.Background()

	suite.mockQueryRepo.On("ListEntryRecords", ctx, suite.tenantID, mock.Anything, 0, (*string)(nil)).
		Return([]domain.EntryRecord{}, nil, nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.tenantID, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Empty(resp.Entries)
	suite.Nil(resp.NextToken)
}

func (suite *QueryServiceTestSuite) TestTrialBalance_UnknownExercise() {
	ctx := context.Background()
	exerciseID := uuid.NewString()

	suite.mockExerciseRepo.On("FindExerciseByID", ctx, suite.tenantID, exerciseID).
		Return(nil, apperrors.ErrExerciseNotFound).Once()

	_, err := suite.service.TrialBalance(ctx, suite.tenantID, exerciseID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockQueryRepo.AssertNotCalled(suite.T(), "TrialBalance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QueryServiceTestSuite) TestTrialBalance_TotalsAndBalance() {
	ctx := context.Background()
	exercise := domain.FiscalExercise{
		ExerciseID: uuid.NewString(),
		TenantID:   suite.tenantID,
		Year:       2024,
		IsActive:   true,
	}
	rows := []domain.TrialBalanceRow{
		{AccountCode: "411", AccountType: domain.Asset, Debits: decimal.NewFromInt(120), Credits: decimal.Zero, Balance: decimal.NewFromInt(120)},
		{AccountCode: "4457", AccountType: domain.Liability, Debits: decimal.Zero, Credits: decimal.NewFromInt(20), Balance: decimal.NewFromInt(-20)},
		{AccountCode: "701", AccountType: domain.Revenue, Debits: decimal.Zero, Credits: decimal.NewFromInt(100), Balance: decimal.NewFromInt(-100)},
	}

	suite.mockExerciseRepo.On("FindExerciseByID", ctx, suite.tenantID, exercise.ExerciseID).Return(&exercise, nil).Once()
	suite.mockQueryRepo.On("TrialBalance", ctx, suite.tenantID, exercise.ExerciseID).Return(rows, nil).Once()

	resp, err := suite.service.TrialBalance(ctx, suite.tenantID, exercise.ExerciseID)

	suite.Require().NoError(err)
	suite.Equal(exercise.ExerciseID, resp.ExerciseID)
	suite.Require().Len(resp.Rows, 3)
	// A fully posted ledger yields equal grand totals.
	suite.Equal("120", resp.Debits.String())
	suite.Equal("120", resp.Credits.String())
}

// --- Run Test Suite ---
func TestQueryService(t *testing.T) {
	suite.Run(t, new(QueryServiceTestSuite))
}
