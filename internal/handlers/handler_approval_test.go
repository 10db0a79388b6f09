package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// generateTestToken creates a signed JWT for the given subject.
func generateTestToken(t *testing.T, userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "loandesk-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

// fakeCallerResolver resolves callers from a fixed table.
type fakeCallerResolver struct {
	callers map[string]domain.Caller
}

func (f fakeCallerResolver) ResolveCaller(ctx context.Context, userID string) (*domain.Caller, error) {
	caller, ok := f.callers[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &caller, nil
}

// --- Mock ApprovalSvc ---
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) ApproveAdminRequest(ctx context.Context, caller domain.Caller, requestID string) error {
	return m.Called(ctx, caller, requestID).Error(0)
}

func (m *MockApprovalService) ApproveVolunteerRequest(ctx context.Context, caller domain.Caller, requestID string) error {
	return m.Called(ctx, caller, requestID).Error(0)
}

func (m *MockApprovalService) RejectAdminRequest(ctx context.Context, caller domain.Caller, requestID string) error {
	return m.Called(ctx, caller, requestID).Error(0)
}

func (m *MockApprovalService) RejectVolunteerRequest(ctx context.Context, caller domain.Caller, requestID string) error {
	return m.Called(ctx, caller, requestID).Error(0)
}

var _ portssvc.ApprovalSvc = (*MockApprovalService)(nil)

// --- Test Suite ---
type ApprovalHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockApproval *MockApprovalService
	superadmin   domain.Caller
	admin        domain.Caller
	requestID    string
}

func (suite *ApprovalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockApproval = new(MockApprovalService)
	suite.requestID = uuid.NewString()

	agency := uuid.NewString()
	suite.superadmin = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleSuperadmin}
	suite.admin = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleAdmin, AgencyID: &agency}
	resolver := fakeCallerResolver{callers: map[string]domain.Caller{
		suite.superadmin.UserID: suite.superadmin,
		suite.admin.UserID:      suite.admin,
	}}

	functions := suite.router.Group("/functions/v1",
		middleware.AuthMiddleware(testJWTSecret),
		middleware.CallerMiddleware(resolver))
	handlers.RegisterApprovalRoutes(functions, suite.mockApproval, nil)
}

func TestApprovalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalHandlerTestSuite))
}

func (suite *ApprovalHandlerTestSuite) post(path string, userID string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodPost, "/functions/v1"+path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ApprovalHandlerTestSuite) decodeError(w *httptest.ResponseRecorder) string {
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func (suite *ApprovalHandlerTestSuite) TestApproveAdmin_Success() {
	suite.mockApproval.On("ApproveAdminRequest", mock.Anything, suite.superadmin, suite.requestID).Return(nil).Once()

	w := suite.post("/approve-admin", suite.superadmin.UserID, gin.H{"request_id": suite.requestID})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MessageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Admin request approved", resp.Message)
	suite.mockApproval.AssertExpectations(suite.T())
}

func (suite *ApprovalHandlerTestSuite) TestApproveVolunteer_PassesCaller() {
	suite.mockApproval.On("ApproveVolunteerRequest", mock.Anything, suite.admin, suite.requestID).Return(nil).Once()

	w := suite.post("/approve-volunteer", suite.admin.UserID, gin.H{"request_id": suite.requestID})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockApproval.AssertExpectations(suite.T())
}

func (suite *ApprovalHandlerTestSuite) TestErrorsMapToStatus() {
	tests := []struct {
		name    string
		path    string
		method  string
		err     error
		status  int
		message string
	}{
		{"forbidden", "/approve-admin", "ApproveAdminRequest", apperrors.NewForbiddenError("only a superadmin can approve admin requests"), http.StatusForbidden, "only a superadmin can approve admin requests"},
		{"not found", "/reject-admin", "RejectAdminRequest", apperrors.NewNotFoundError("signup request not found"), http.StatusNotFound, "signup request not found"},
		{"not pending", "/reject-volunteer", "RejectVolunteerRequest", apperrors.NewAppError(http.StatusConflict, "request already approved", apperrors.ErrRequestNotPending), http.StatusConflict, "request already approved"},
		{"internal", "/approve-volunteer", "ApproveVolunteerRequest", errors.New("connection reset"), http.StatusInternalServerError, "Failed to process request"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockApproval.On(tt.method, mock.Anything, suite.admin, suite.requestID).Return(tt.err).Once()

			w := suite.post(tt.path, suite.admin.UserID, gin.H{"request_id": suite.requestID})

			suite.Equal(tt.status, w.Code)
			suite.Equal(tt.message, suite.decodeError(w))
		})
	}
}

func (suite *ApprovalHandlerTestSuite) TestInvalidBody() {
	for _, body := range []any{gin.H{}, gin.H{"request_id": "not-a-uuid"}} {
		w := suite.post("/approve-admin", suite.superadmin.UserID, body)
		suite.Equal(http.StatusBadRequest, w.Code)
		suite.NotEmpty(suite.decodeError(w))
	}
	suite.mockApproval.AssertNotCalled(suite.T(), "ApproveAdminRequest", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalHandlerTestSuite) TestMissingToken() {
	w := suite.post("/approve-admin", "", gin.H{"request_id": suite.requestID})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.NotEmpty(suite.decodeError(w))
}

func (suite *ApprovalHandlerTestSuite) TestUserWithoutProfile() {
	w := suite.post("/approve-admin", uuid.NewString(), gin.H{"request_id": suite.requestID})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockApproval.AssertNotCalled(suite.T(), "ApproveAdminRequest", mock.Anything, mock.Anything, mock.Anything)
}
