package services_test

import (
	"context"
	"testing"

	"github.com/gestika/ledger/internal/apperrors"
	"github.com/gestika/ledger/internal/core/domain"
	portssvc "github.com/gestika/ledger/internal/core/ports/services"
	"github.com/gestika/ledger/internal/core/services"
	"github.com/gestika/ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockPostingRepo *MockPostingRepository
	service         portssvc.JournalRegistrySvcFacade

	tenantID string
	actorID  string
	journal  domain.Journal
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockPostingRepo = new(MockPostingRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockPostingRepo)

	suite.tenantID = uuid.NewString()
	suite.actorID = uuid.NewString()
	suite.journal = domain.Journal{
		JournalID: uuid.NewString(),
		TenantID:  suite.tenantID,
		Code:      "OD",
		Label:     "Opérations diverses",
	}
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{Code: "VT", Label: "Ventes"}
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.TenantID == suite.tenantID && j.Code == "VT" && j.CreatedBy == suite.actorID
	})).Return(nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.NotEmpty(journal.JournalID)
	suite.Equal("VT", journal.Code)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{Code: "VT", Label: "Ventes"}
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.Anything).
		Return(apperrors.ErrDuplicateCode).Once()

	_, err := suite.service.CreateJournal(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- DeleteJournal ---

func (suite *JournalServiceTestSuite) TestDeleteJournal_UnreferencedIsDeleted() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, suite.journal.JournalID).
		Return(&suite.journal, nil).Once()
	suite.mockPostingRepo.On("CountPostingsByJournal", ctx, suite.tenantID, suite.journal.JournalID).
		Return(int64(0), nil).Once()
	suite.mockJournalRepo.On("DeleteJournal", ctx, suite.tenantID, suite.journal.JournalID).
		Return(nil).Once()

	err := suite.service.DeleteJournal(ctx, suite.tenantID, suite.journal.JournalID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteJournal_ReferencedIsRefused() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, suite.journal.JournalID).
		Return(&suite.journal, nil).Once()
	suite.mockPostingRepo.On("CountPostingsByJournal", ctx, suite.tenantID, suite.journal.JournalID).
		Return(int64(3), nil).Once()

	err := suite.service.DeleteJournal(ctx, suite.tenantID, suite.journal.JournalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrJournalReferenced)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteJournal_UnknownJournal() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, "missing").
		Return(nil, apperrors.ErrJournalNotFound).Once()

	err := suite.service.DeleteJournal(ctx, suite.tenantID, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrJournalNotFound)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "CountPostingsByJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteJournal_PostingCommittedDuringDelete() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, suite.journal.JournalID).
		Return(&suite.journal, nil).Once()
	suite.mockPostingRepo.On("CountPostingsByJournal", ctx, suite.tenantID, suite.journal.JournalID).
		Return(int64(0), nil).Once()
	// The foreign key catches what the count check missed.
	suite.mockJournalRepo.On("DeleteJournal", ctx, suite.tenantID, suite.journal.JournalID).
		Return(apperrors.ErrJournalReferenced).Once()

	err := suite.service.DeleteJournal(ctx, suite.tenantID, suite.journal.JournalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrJournalReferenced)
}

// --- Run Test Suite ---
func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
