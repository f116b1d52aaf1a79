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
	"golang.org/x/crypto/bcrypt"
)

// --- Mock ProducerTokenRepository ---
type MockProducerTokenRepository struct {
	mock.Mock
}

var _ portsrepo.ProducerTokenRepositoryFacade = (*MockProducerTokenRepository)(nil)

func (m *MockProducerTokenRepository) SaveToken(ctx context.Context, token domain.ProducerToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockProducerTokenRepository) FindActiveTokensByTenant(ctx context.Context, tenantID string, sourceModule domain.SourceModule) ([]domain.ProducerToken, error) {
	args := m.Called(ctx, tenantID, sourceModule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProducerToken), args.Error(1)
}

func (m *MockProducerTokenRepository) TouchLastUsed(ctx context.Context, tokenID string, now time.Time) error {
	args := m.Called(ctx, tokenID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type ProducerTokenServiceTestSuite struct {
	suite.Suite
	mockTokenRepo *MockProducerTokenRepository
	service       portssvc.ProducerTokenSvcFacade

	tenantID string
	actorID  string
}

func (suite *ProducerTokenServiceTestSuite) SetupTest() {
	suite.mockTokenRepo = new(MockProducerTokenRepository)
	suite.service = services.NewProducerTokenService(suite.mockTokenRepo)

	suite.tenantID = uuid.NewString()
	suite.actorID = uuid.NewString()
}

// tokenFor builds a stored-token record around a known plain value. MinCost
// keeps the suite fast.
func (suite *ProducerTokenServiceTestSuite) tokenFor(plain string, module domain.SourceModule) domain.ProducerToken {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	suite.Require().NoError(err)
	return domain.ProducerToken{
		TokenID:      uuid.NewString(),
		TenantID:     suite.tenantID,
		SourceModule: module,
		TokenHash:    string(hash),
		IsActive:     true,
	}
}

// --- Test Cases ---

func (suite *ProducerTokenServiceTestSuite) TestIssueToken_StoresHashReturnsPlainOnce() {
	ctx := context.Background()
	req := dto.CreateProducerTokenRequest{SourceModule: "SALES", Label: "sales connector"}

	var saved domain.ProducerToken
	suite.mockTokenRepo.On("SaveToken", ctx, mock.AnythingOfType("domain.ProducerToken")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.ProducerToken) }).
		Return(nil).Once()

	resp, err := suite.service.IssueToken(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.Token)
	suite.Equal("SALES", resp.SourceModule)
	suite.NotEqual(resp.Token, saved.TokenHash)
	// The stored hash must verify against the returned plain value.
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(saved.TokenHash), []byte(resp.Token)))
	suite.True(saved.IsActive)
}

func (suite *ProducerTokenServiceTestSuite) TestIssueToken_UnknownModule() {
	ctx := context.Background()
	req := dto.CreateProducerTokenRequest{SourceModule: "CRM"}

	_, err := suite.service.IssueToken(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "SaveToken", mock.Anything, mock.Anything)
}

func (suite *ProducerTokenServiceTestSuite) TestAuthenticate_MatchingToken() {
	ctx := context.Background()
	plain := "a-known-plain-token-value"
	stored := suite.tokenFor(plain, domain.SourceSales)
	decoy := suite.tokenFor("some-other-token", domain.SourcePayroll)

	suite.mockTokenRepo.On("FindActiveTokensByTenant", ctx, suite.tenantID, domain.SourceModule("")).
		Return([]domain.ProducerToken{decoy, stored}, nil).Once()
	suite.mockTokenRepo.On("TouchLastUsed", ctx, stored.TokenID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	token, err := suite.service.Authenticate(ctx, suite.tenantID, plain)

	suite.Require().NoError(err)
	suite.Require().NotNil(token)
	suite.Equal(stored.TokenID, token.TokenID)
	suite.Equal(domain.SourceSales, token.SourceModule)
	suite.mockTokenRepo.AssertExpectations(suite.T())
}

func (suite *ProducerTokenServiceTestSuite) TestAuthenticate_NoMatchIsForbidden() {
	ctx := context.Background()
	stored := suite.tokenFor("the-real-token", domain.SourceSales)

	suite.mockTokenRepo.On("FindActiveTokensByTenant", ctx, suite.tenantID, domain.SourceModule("")).
		Return([]domain.ProducerToken{stored}, nil).Once()

	_, err := suite.service.Authenticate(ctx, suite.tenantID, "a-guessed-token")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "TouchLastUsed", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProducerTokenServiceTestSuite) TestAuthenticate_TouchFailureDoesNotBlock() {
	ctx := context.Background()
	plain := "a-known-plain-token-value"
	stored := suite.tokenFor(plain, domain.SourceSales)

	suite.mockTokenRepo.On("FindActiveTokensByTenant", ctx, suite.tenantID, domain.SourceModule("")).
		Return([]domain.ProducerToken{stored}, nil).Once()
	suite.mockTokenRepo.On("TouchLastUsed", ctx, stored.TokenID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrInternal).Once()

	token, err := suite.service.Authenticate(ctx, suite.tenantID, plain)

	suite.Require().NoError(err)
	suite.NotNil(token)
}

// --- Run Test Suite ---
func TestProducerTokenService(t *testing.T) {
	suite.Run(t, new(ProducerTokenServiceTestSuite))
}
