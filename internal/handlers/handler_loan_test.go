package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/SscSPs/loandesk_backend/internal/handlers"
	"github.com/SscSPs/loandesk_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LoanSvcFacade ---
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) GetLoan(ctx context.Context, caller domain.Caller, loanID string) (*domain.LoanWithArticles, error) {
	args := m.Called(ctx, caller, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanWithArticles), args.Error(1)
}

func (m *MockLoanService) ListLoans(ctx context.Context, caller domain.Caller, agencyID string, params dto.ListLoansParams) (*dto.ListLoansResponse, error) {
	args := m.Called(ctx, caller, agencyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLoansResponse), args.Error(1)
}

func (m *MockLoanService) CreateLoan(ctx context.Context, caller domain.Caller, agencyID string, req dto.CreateLoanRequest) (*domain.LoanWithArticles, error) {
	args := m.Called(ctx, caller, agencyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanWithArticles), args.Error(1)
}

func (m *MockLoanService) UpdateLoan(ctx context.Context, caller domain.Caller, loanID string, req dto.UpdateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, caller, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) QuickReturn(ctx context.Context, caller domain.Caller, loanID string, state *domain.ArticleState) (*domain.LoanWithArticles, error) {
	args := m.Called(ctx, caller, loanID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanWithArticles), args.Error(1)
}

func (m *MockLoanService) FullReturn(ctx context.Context, caller domain.Caller, loanID string, entries []domain.ReturnEntry) (*domain.LoanWithArticles, error) {
	args := m.Called(ctx, caller, loanID, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanWithArticles), args.Error(1)
}

func (m *MockLoanService) PartialReturn(ctx context.Context, caller domain.Caller, loanID string, returnDate time.Time, selected []string, entries []domain.ReturnEntry) (*domain.LoanWithArticles, error) {
	args := m.Called(ctx, caller, loanID, returnDate, selected, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanWithArticles), args.Error(1)
}

var _ portssvc.LoanSvcFacade = (*MockLoanService)(nil)

// --- Test Suite ---
type LoanHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockLoans *MockLoanService
	volunteer domain.Caller
	loanID    string
	token     string
}

func (suite *LoanHandlerTestSuite) SetupSuite() {
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *LoanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockLoans = new(MockLoanService)
	suite.loanID = uuid.NewString()

	agency := uuid.NewString()
	suite.volunteer = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleVolunteer, AgencyID: &agency}
	suite.token = generateTestToken(suite.T(), suite.volunteer.UserID)
	resolver := fakeCallerResolver{callers: map[string]domain.Caller{suite.volunteer.UserID: suite.volunteer}}

	api := suite.router.Group("/api/v1",
		middleware.AuthMiddleware(testJWTSecret),
		middleware.CallerMiddleware(resolver))
	handlers.RegisterLoanRoutes(api, suite.mockLoans, nil)
}

func TestLoanHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LoanHandlerTestSuite))
}

func (suite *LoanHandlerTestSuite) do(method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req, _ = http.NewRequest(method, "/api/v1"+path, nil)
	} else {
		req, _ = http.NewRequest(method, "/api/v1"+path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LoanHandlerTestSuite) openLoan(closed bool) *domain.LoanWithArticles {
	loan := domain.Loan{LoanID: suite.loanID, AgencyID: *suite.volunteer.AgencyID}
	if closed {
		now := time.Now()
		loan.ActualReturnDate = &now
		loan.ReturnedBy = &suite.volunteer.UserID
	}
	return &domain.LoanWithArticles{Loan: loan, Articles: []domain.LoanArticle{{LoanID: suite.loanID, ArticleID: uuid.NewString()}}}
}

func (suite *LoanHandlerTestSuite) TestQuickReturn_EmptyBodyDefaultsInService() {
	suite.mockLoans.On("QuickReturn", mock.Anything, suite.volunteer, suite.loanID, (*domain.ArticleState)(nil)).
		Return(suite.openLoan(true), nil).Once()

	w := suite.do(http.MethodPost, "/loans/"+suite.loanID+"/return/quick", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoanResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(suite.loanID, resp.LoanID)
	suite.NotNil(resp.ActualReturnDate)
	suite.Len(resp.Articles, 1)
	suite.mockLoans.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestQuickReturn_WithState() {
	state := domain.StateNeedsRepair
	suite.mockLoans.On("QuickReturn", mock.Anything, suite.volunteer, suite.loanID, &state).
		Return(suite.openLoan(true), nil).Once()

	w := suite.do(http.MethodPost, "/loans/"+suite.loanID+"/return/quick", []byte(`{"returnState":"needs_repair"}`))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLoans.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestQuickReturn_UnknownState() {
	w := suite.do(http.MethodPost, "/loans/"+suite.loanID+"/return/quick", []byte(`{"returnState":"broken"}`))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLoans.AssertNotCalled(suite.T(), "QuickReturn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanHandlerTestSuite) TestQuickReturn_ClosedLoan() {
	suite.mockLoans.On("QuickReturn", mock.Anything, suite.volunteer, suite.loanID, (*domain.ArticleState)(nil)).
		Return(nil, apperrors.NewAppError(http.StatusConflict, "Loan is already closed", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/loans/"+suite.loanID+"/return/quick", nil)

	suite.Equal(http.StatusConflict, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Loan is already closed", resp.Error)
}

func (suite *LoanHandlerTestSuite) TestPartialReturn_PassesSelectionAndEntries() {
	a, b := uuid.NewString(), uuid.NewString()
	returnDate := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	body, err := json.Marshal(dto.PartialReturnRequest{
		ReturnDate:       &returnDate,
		SelectedArticles: []string{a, b},
		Entries: []dto.ReturnEntryRequest{
			{ArticleID: a, ReturnState: domain.StateGood},
			{ArticleID: b, ReturnState: domain.StateUsed, Notes: "scratched"},
		},
	})
	suite.Require().NoError(err)

	wantEntries := []domain.ReturnEntry{
		{ArticleID: a, State: domain.StateGood},
		{ArticleID: b, State: domain.StateUsed, Notes: "scratched"},
	}
	suite.mockLoans.On("PartialReturn", mock.Anything, suite.volunteer, suite.loanID,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(returnDate) }),
		[]string{a, b}, wantEntries).
		Return(suite.openLoan(false), nil).Once()

	w := suite.do(http.MethodPost, "/loans/"+suite.loanID+"/return/partial", body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoanResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Nil(resp.ActualReturnDate)
	suite.mockLoans.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestPartialReturn_RejectsEmptySelection() {
	body := []byte(`{"selectedArticles":[],"entries":[{"articleID":"` + uuid.NewString() + `","returnState":"good"}]}`)

	w := suite.do(http.MethodPost, "/loans/"+suite.loanID+"/return/partial", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLoans.AssertNotCalled(suite.T(), "PartialReturn", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanHandlerTestSuite) TestFullReturn_ServiceValidationError() {
	a := uuid.NewString()
	body := []byte(`{"entries":[{"articleID":"` + a + `","returnState":"good"}]}`)
	suite.mockLoans.On("FullReturn", mock.Anything, suite.volunteer, suite.loanID, mock.Anything).
		Return(nil, apperrors.NewValidationFailedError("missing return entry for an article still on loan")).Once()

	w := suite.do(http.MethodPost, "/loans/"+suite.loanID+"/return/full", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("missing return entry for an article still on loan", resp.Error)
}

func (suite *LoanHandlerTestSuite) TestGetLoan_NotFound() {
	suite.mockLoans.On("GetLoan", mock.Anything, suite.volunteer, suite.loanID).
		Return(nil, apperrors.NewNotFoundError("Loan not found")).Once()

	w := suite.do(http.MethodGet, "/loans/"+suite.loanID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LoanHandlerTestSuite) TestListLoans_PassesFilter() {
	params := dto.ListLoansParams{Status: "overdue", Limit: 20}
	suite.mockLoans.On("ListLoans", mock.Anything, suite.volunteer, "", params).
		Return(&dto.ListLoansResponse{Loans: []domain.Loan{{LoanID: suite.loanID}}}, nil).Once()

	w := suite.do(http.MethodGet, "/loans?status=overdue", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListLoansResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Loans, 1)
	suite.mockLoans.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestListLoans_InvalidStatus() {
	w := suite.do(http.MethodGet, "/loans?status=lost", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}
