package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/core/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LoanServiceTestSuite struct {
	suite.Suite
	loanRepo    *MockLoanRepository
	articleRepo *MockArticleRepository
	benefRepo   *MockBeneficiaryRepository
	tx          *fakeTxManager
	dashboard   *recordingInvalidator
	now         time.Time
	caller      domain.Caller
	service     portssvc.LoanSvcFacade
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.loanRepo = new(MockLoanRepository)
	suite.articleRepo = new(MockArticleRepository)
	suite.benefRepo = new(MockBeneficiaryRepository)
	suite.tx = &fakeTxManager{}
	suite.dashboard = &recordingInvalidator{}
	suite.now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	suite.caller = domain.Caller{UserID: testUserID, Role: domain.RoleVolunteer, AgencyID: strPtr(testAgencyID)}
	suite.service = services.NewLoanService(
		suite.tx,
		suite.loanRepo,
		suite.articleRepo,
		suite.benefRepo,
		services.WithLoanDashboard(suite.dashboard),
		services.WithLoanClock(func() time.Time { return suite.now }),
	)
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}

func (suite *LoanServiceTestSuite) beneficiary() *domain.Beneficiary {
	return &domain.Beneficiary{BeneficiaryID: "beneficiary-1", AgencyID: testAgencyID, FirstName: "Marie", LastName: "Dubois"}
}

func (suite *LoanServiceTestSuite) TestCreateLoan_Success() {
	ctx := context.Background()
	req := dto.CreateLoanRequest{BeneficiaryID: "beneficiary-1", ArticleIDs: []string{"A", "B"}, ContractSigned: true}
	articles := []domain.Article{
		{ArticleID: "A", AgencyID: testAgencyID, Name: "Wheelchair", Status: domain.ArticleAvailable, State: domain.StateGood},
		{ArticleID: "B", AgencyID: testAgencyID, Name: "Crutches", Status: domain.ArticleAvailable, State: domain.StateNew},
	}

	suite.benefRepo.On("FindBeneficiaryByID", mock.Anything, "beneficiary-1").Return(suite.beneficiary(), nil).Once()
	suite.articleRepo.On("FindArticlesByIDs", mock.Anything, []string{"A", "B"}).Return(articles, nil).Once()
	suite.loanRepo.On("SaveLoan", mock.Anything,
		mock.MatchedBy(func(l domain.Loan) bool {
			return l.AgencyID == testAgencyID && l.LoanedBy == testUserID && l.LoanDate.Equal(suite.now) && l.ContractSigned && !l.IsClosed()
		}),
		mock.MatchedBy(func(links []domain.LoanArticle) bool {
			return len(links) == 2 && links[0].ArticleName == "Wheelchair" && links[1].ArticleID == "B"
		}),
	).Return(nil).Once()
	suite.articleRepo.On("UpdateArticleStatus", mock.Anything, "A", domain.ArticleOnLoan, (*domain.ArticleState)(nil), testUserID, suite.now).Return(nil).Once()
	suite.articleRepo.On("UpdateArticleStatus", mock.Anything, "B", domain.ArticleOnLoan, (*domain.ArticleState)(nil), testUserID, suite.now).Return(nil).Once()

	result, err := suite.service.CreateLoan(ctx, suite.caller, "", req)

	suite.Require().NoError(err)
	suite.NotEmpty(result.Loan.LoanID)
	suite.Len(result.Articles, 2)
	for _, la := range result.Articles {
		suite.Equal(result.Loan.LoanID, la.LoanID)
		suite.True(la.IsOpen())
	}
	suite.Equal(1, suite.tx.calls)
	suite.Equal([]string{testAgencyID}, suite.dashboard.agencies)
	suite.loanRepo.AssertExpectations(suite.T())
	suite.articleRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCreateLoan_ArticleNotAvailable() {
	req := dto.CreateLoanRequest{BeneficiaryID: "beneficiary-1", ArticleIDs: []string{"A"}}
	articles := []domain.Article{
		{ArticleID: "A", AgencyID: testAgencyID, Name: "Wheelchair", Status: domain.ArticleOnLoan, State: domain.StateGood},
	}

	suite.benefRepo.On("FindBeneficiaryByID", mock.Anything, "beneficiary-1").Return(suite.beneficiary(), nil).Once()
	suite.articleRepo.On("FindArticlesByIDs", mock.Anything, []string{"A"}).Return(articles, nil).Once()

	result, err := suite.service.CreateLoan(context.Background(), suite.caller, "", req)

	suite.Nil(result)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.loanRepo.AssertNotCalled(suite.T(), "SaveLoan", mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.dashboard.agencies)
}

func (suite *LoanServiceTestSuite) TestCreateLoan_RejectsBadInput() {
	tests := []struct {
		name string
		req  dto.CreateLoanRequest
	}{
		{"duplicate article", dto.CreateLoanRequest{BeneficiaryID: "beneficiary-1", ArticleIDs: []string{"A", "A"}}},
		{"no article", dto.CreateLoanRequest{BeneficiaryID: "beneficiary-1"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.CreateLoan(context.Background(), suite.caller, "", tt.req)
			suite.Require().Error(err)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.Equal(0, suite.tx.calls)
}

func (suite *LoanServiceTestSuite) TestCreateLoan_BeneficiaryOfAnotherAgency() {
	other := suite.beneficiary()
	other.AgencyID = "another-agency"
	suite.benefRepo.On("FindBeneficiaryByID", mock.Anything, "beneficiary-1").Return(other, nil).Once()

	_, err := suite.service.CreateLoan(context.Background(), suite.caller, "",
		dto.CreateLoanRequest{BeneficiaryID: "beneficiary-1", ArticleIDs: []string{"A"}})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.articleRepo.AssertNotCalled(suite.T(), "FindArticlesByIDs", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCreateLoan_VolunteerCannotTargetAnotherAgency() {
	_, err := suite.service.CreateLoan(context.Background(), suite.caller, "another-agency",
		dto.CreateLoanRequest{BeneficiaryID: "beneficiary-1", ArticleIDs: []string{"A"}})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LoanServiceTestSuite) TestListLoans_PassesFilterAndToken() {
	token := "next"
	loans := []domain.Loan{{LoanID: testLoanID, AgencyID: testAgencyID}}
	filter := domain.LoanFilter{Status: "overdue", Limit: 20}
	suite.loanRepo.On("ListLoans", mock.Anything, testAgencyID, filter, suite.now).Return(loans, &token, nil).Once()

	resp, err := suite.service.ListLoans(context.Background(), suite.caller, "", dto.ListLoansParams{Status: "overdue", Limit: 20})

	suite.Require().NoError(err)
	suite.Len(resp.Loans, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next", *resp.NextToken)
}

func (suite *LoanServiceTestSuite) TestUpdateLoan_EditsNotesAndContract() {
	loan := &domain.Loan{LoanID: testLoanID, AgencyID: testAgencyID, LoanDate: suite.now.AddDate(0, 0, -3)}
	notes := "called the family"
	signed := true
	suite.loanRepo.On("FindLoanByID", mock.Anything, testLoanID).Return(loan, nil).Once()
	suite.loanRepo.On("UpdateLoanDetails", mock.Anything, mock.MatchedBy(func(l domain.Loan) bool {
		return l.Notes == notes && l.ContractSigned
	})).Return(nil).Once()

	updated, err := suite.service.UpdateLoan(context.Background(), suite.caller, testLoanID,
		dto.UpdateLoanRequest{Notes: &notes, ContractSigned: &signed})

	suite.Require().NoError(err)
	suite.Equal(notes, updated.Notes)
	suite.Equal(1, suite.tx.calls)
	suite.Equal([]string{testAgencyID}, suite.dashboard.agencies)
	suite.loanRepo.AssertExpectations(suite.T())
	suite.loanRepo.AssertNotCalled(suite.T(), "UpdateLoan", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestUpdateLoan_NeverWritesClosureColumns() {
	returnedAt := suite.now.Add(-time.Hour)
	closed := &domain.Loan{
		LoanID:           testLoanID,
		AgencyID:         testAgencyID,
		LoanDate:         suite.now.AddDate(0, 0, -3),
		ActualReturnDate: &returnedAt,
		ReturnedBy:       strPtr(testUserID),
		Notes:            "Partial return on 2025-03-09: 1 article(s) returned",
	}
	notes := closed.Notes + "\ncalled the family"
	suite.loanRepo.On("FindLoanByID", mock.Anything, testLoanID).Return(closed, nil).Once()
	suite.loanRepo.On("UpdateLoanDetails", mock.Anything, mock.MatchedBy(func(l domain.Loan) bool {
		return l.Notes == notes
	})).Return(nil).Once()

	updated, err := suite.service.UpdateLoan(context.Background(), suite.caller, testLoanID, dto.UpdateLoanRequest{Notes: &notes})

	suite.Require().NoError(err)
	suite.True(updated.IsClosed())
	suite.Equal(1, suite.tx.calls)
	suite.loanRepo.AssertNotCalled(suite.T(), "UpdateLoan", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestUpdateLoan_ExpectedDateBeforeLoanDate() {
	loan := &domain.Loan{LoanID: testLoanID, AgencyID: testAgencyID, LoanDate: suite.now}
	early := suite.now.AddDate(0, 0, -1)
	suite.loanRepo.On("FindLoanByID", mock.Anything, testLoanID).Return(loan, nil).Once()

	_, err := suite.service.UpdateLoan(context.Background(), suite.caller, testLoanID, dto.UpdateLoanRequest{ExpectedReturnDate: &early})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.loanRepo.AssertNotCalled(suite.T(), "UpdateLoanDetails", mock.Anything, mock.Anything)
	suite.Empty(suite.dashboard.agencies)
}
