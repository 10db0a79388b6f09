package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// CallerResolver loads the caller for an authenticated user id.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, userID string) (*domain.Caller, error)
}

// CallerMiddleware turns the authenticated user id into a domain.Caller.
// It must run after AuthMiddleware.
func CallerMiddleware(resolver CallerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		caller, err := resolver.ResolveCaller(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("No profile for authenticated user")
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No profile for this account"})
				return
			}
			logger.Error("Failed to resolve caller", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
			return
		}

		ctx := WithCaller(c.Request.Context(), *caller)
		ctx = WithLogger(ctx, logger.With(slog.String("role", string(caller.Role))))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
