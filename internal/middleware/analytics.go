package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/loandesk_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// routeEvents names the product events recorded for successful writes.
// Loan returns and signup reviews are recorded by their handlers, which know the outcome.
var routeEvents = map[string]string{
	"POST /api/v1/articles":                               "article_registered",
	"PATCH /api/v1/articles/:article_id":                  "article_updated",
	"DELETE /api/v1/articles/:article_id":                 "article_removed",
	"POST /api/v1/beneficiaries":                          "beneficiary_registered",
	"PATCH /api/v1/beneficiaries/:beneficiary_id":         "beneficiary_updated",
	"DELETE /api/v1/beneficiaries/:beneficiary_id":        "beneficiary_removed",
	"POST /api/v1/donors":                                 "donor_registered",
	"PATCH /api/v1/donors/:donor_id":                      "donor_updated",
	"DELETE /api/v1/donors/:donor_id":                     "donor_removed",
	"POST /api/v1/loans":                                  "loan_opened",
	"PATCH /api/v1/loans/:loan_id":                        "loan_updated",
	"POST /api/v1/finance/transactions":                   "transaction_recorded",
	"DELETE /api/v1/finance/transactions/:transaction_id": "transaction_removed",
	"POST /api/v1/messages":                               "message_sent",
}

// RouteEvent returns the event recorded for a route, if any.
func RouteEvent(method string, fullPath string) (string, bool) {
	event, ok := routeEvents[method+" "+fullPath]
	return event, ok
}

// AnalyticsMiddleware records a loan desk event for every successful write
// listed in routeEvents, tagged with the caller's agency and role.
func AnalyticsMiddleware(client *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !client.IsInitialized() || len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		event, ok := RouteEvent(c.Request.Method, c.FullPath())
		if !ok {
			return
		}
		TrackEvent(c, client, event, map[string]any{"status_code": c.Writer.Status()})
	}
}

// TrackEvent records a loan desk event on behalf of the authenticated caller.
// Route ids such as loan_id are copied into the properties.
func TrackEvent(c *gin.Context, client *utils.PosthogClientWrapper, event string, props map[string]any) {
	if !client.IsInitialized() {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}
	client.Enqueue(userID, event, EventProperties(c, props))
}

// EventProperties merges the caller's agency, role and the route ids into props.
func EventProperties(c *gin.Context, props map[string]any) map[string]any {
	if props == nil {
		props = make(map[string]any)
	}
	if caller, ok := GetCallerFromContext(c); ok {
		props["role"] = string(caller.Role)
		if caller.AgencyID != nil {
			props["agency_id"] = *caller.AgencyID
		}
	}
	for _, p := range c.Params {
		if strings.HasSuffix(p.Key, "_id") {
			props[p.Key] = p.Value
		}
	}
	return props
}
