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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, tenantID string, accountID string, actorID string, now time.Time) error {
	args := m.Called(ctx, tenantID, accountID, actorID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasChildAccounts(ctx context.Context, tenantID string, accountID string) (bool, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) CountAccounts(ctx context.Context, tenantID string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.ChartOfAccountsSvcFacade

	tenantID string
	actorID  string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)

	suite.tenantID = uuid.NewString()
	suite.actorID = uuid.NewString()
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "622",
		Label:       "Honoraires",
		AccountType: "EXPENSE",
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "622" && a.AccountType == domain.Expense && a.IsActive && !a.IsSystem
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.tenantID, account.TenantID)
	suite.Equal(suite.actorID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "622", Label: "Honoraires", AccountType: "GOODWILL"}

	_, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:        "44562",
		Label:       "TVA sur immobilisations",
		AccountType: "ASSET",
		ParentAccountID: &parentID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, parentID).
		Return(nil, apperrors.ErrAccountNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InactiveParent() {
	ctx := context.Background()
	parent := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "445",
		AccountType: domain.Liability,
		IsActive:    false,
	}
	req := dto.CreateAccountRequest{
		Code:            "44571",
		Label:           "TVA collectée",
		AccountType:     "LIABILITY",
		ParentAccountID: &parent.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, parent.AccountID).Return(&parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "411", Label: "Clients", AccountType: "ASSET"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.Anything).
		Return(apperrors.ErrDuplicateCode).Once()

	_, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateCode)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PatchesGivenFields() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "622",
		Label:       "Honoraires",
		AccountType: domain.Expense,
		IsActive:    true,
	}
	newLabel := "Honoraires et conseils"
	req := dto.UpdateAccountRequest{Label: &newLabel}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, existing.AccountID).Return(&existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Label == newLabel && a.Code == "622" && a.LastUpdatedBy == suite.actorID
	})).Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, suite.tenantID, existing.AccountID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(newLabel, account.Label)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_SystemAccountCodeChangeRejected() {
	ctx := context.Background()
	system := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "411",
		AccountType: domain.Asset,
		IsSystem:    true,
		IsActive:    true,
	}
	newCode := "412"
	req := dto.UpdateAccountRequest{Code: &newCode}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, system.AccountID).Return(&system, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.tenantID, system.AccountID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrProtectedAccount)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_SystemAccountLabelChangeAllowed() {
	ctx := context.Background()
	system := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "411",
		Label:       "Clients",
		AccountType: domain.Asset,
		IsSystem:    true,
		IsActive:    true,
	}
	newLabel := "Clients et comptes rattachés"
	req := dto.UpdateAccountRequest{Label: &newLabel}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, system.AccountID).Return(&system, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.Anything).Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, suite.tenantID, system.AccountID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(newLabel, account.Label)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "622",
		AccountType: domain.Expense,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("HasChildAccounts", ctx, suite.tenantID, account.AccountID).Return(false, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, suite.tenantID, account.AccountID, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.tenantID, account.AccountID, suite.actorID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_SystemProtected() {
	ctx := context.Background()
	system := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "512",
		AccountType: domain.Treasury,
		IsSystem:    true,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, system.AccountID).Return(&system, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.tenantID, system.AccountID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrProtectedAccount)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_ChildrenBlock() {
	ctx := context.Background()
	parent := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "445",
		AccountType: domain.Liability,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, parent.AccountID).Return(&parent, nil).Once()
	suite.mockAccountRepo.On("HasChildAccounts", ctx, suite.tenantID, parent.AccountID).Return(true, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.tenantID, parent.AccountID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountHasChildren)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFoundPassthrough() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).
		Return(nil, apperrors.ErrAccountNotFound).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.tenantID, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
