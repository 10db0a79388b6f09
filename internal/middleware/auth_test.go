package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/SscSPs/loandesk_backend/internal/middleware"
	"github.com/SscSPs/loandesk_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

type stubResolver struct {
	caller *domain.Caller
	err    error
}

func (s stubResolver) ResolveCaller(ctx context.Context, userID string) (*domain.Caller, error) {
	return s.caller, s.err
}

func newRouter(resolver middleware.CallerResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", middleware.AuthMiddleware(secret), middleware.CallerMiddleware(resolver), func(c *gin.Context) {
		caller, ok := middleware.GetCallerFromContext(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, string(caller.Role)+":"+caller.UserID)
	})
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAndCallerMiddleware(t *testing.T) {
	agency := "agency-1"
	admin := &domain.Caller{UserID: "user-1", Role: domain.RoleAdmin, AgencyID: &agency}

	valid, _, err := utils.GenerateJWT("user-1", secret, time.Hour, "loandesk")
	require.NoError(t, err)
	expired, _, err := utils.GenerateJWT("user-1", secret, -time.Minute, "loandesk")
	require.NoError(t, err)
	foreign, _, err := utils.GenerateJWT("user-1", "another-secret", time.Hour, "loandesk")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		resolver stubResolver
		status   int
		body     string
	}{
		{"valid token", "Bearer " + valid, stubResolver{caller: admin}, http.StatusOK, "admin:user-1"},
		{"missing header", "", stubResolver{caller: admin}, http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic " + valid, stubResolver{caller: admin}, http.StatusUnauthorized, "Bearer {token}"},
		{"expired token", "Bearer " + expired, stubResolver{caller: admin}, http.StatusUnauthorized, "Token has expired"},
		{"wrong signature", "Bearer " + foreign, stubResolver{caller: admin}, http.StatusUnauthorized, "Invalid token"},
		{"no profile", "Bearer " + valid, stubResolver{err: apperrors.NewNotFoundError("profile not found")}, http.StatusForbidden, "No profile for this account"},
		{"profile lookup fails", "Bearer " + valid, stubResolver{err: errors.New("db down")}, http.StatusInternalServerError, "Failed to load profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newRouter(tt.resolver), tt.header)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}
