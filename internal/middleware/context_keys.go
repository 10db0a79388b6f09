package middleware

import (
	"context"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// callerKey holds the domain.Caller resolved from the user's profile.
const callerKey = contextKey("caller")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// WithCaller returns a copy of ctx carrying the caller.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// GetCallerFromContext retrieves the caller set by CallerMiddleware.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	caller, ok := c.Request.Context().Value(callerKey).(domain.Caller)
	return caller, ok
}
