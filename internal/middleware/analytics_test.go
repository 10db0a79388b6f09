package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/SscSPs/loandesk_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRouteEvent(t *testing.T) {
	tests := []struct {
		method string
		path   string
		event  string
		ok     bool
	}{
		{http.MethodPost, "/api/v1/loans", "loan_opened", true},
		{http.MethodPatch, "/api/v1/articles/:article_id", "article_updated", true},
		{http.MethodDelete, "/api/v1/finance/transactions/:transaction_id", "transaction_removed", true},
		{http.MethodPost, "/api/v1/messages", "message_sent", true},
		{http.MethodGet, "/api/v1/loans", "", false},
		{http.MethodPost, "/api/v1/loans/:loan_id/return/quick", "", false},
		{http.MethodPost, "/functions/v1/approve-admin", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			event, ok := middleware.RouteEvent(tt.method, tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.event, event)
		})
	}
}

func TestEventProperties_CallerAndRouteIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	agency := "agency-1"

	var props map[string]any
	r := gin.New()
	r.PATCH("/api/v1/loans/:loan_id", func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithCaller(c.Request.Context(),
			domain.Caller{UserID: "user-1", Role: domain.RoleVolunteer, AgencyID: &agency}))
		props = middleware.EventProperties(c, map[string]any{"kind": "full"})
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/loans/loan-9", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, map[string]any{
		"kind":      "full",
		"role":      "volunteer",
		"agency_id": "agency-1",
		"loan_id":   "loan-9",
	}, props)
}

func TestAnalyticsMiddleware_DisabledClientPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/loans", middleware.AnalyticsMiddleware(nil), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/loans", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}
