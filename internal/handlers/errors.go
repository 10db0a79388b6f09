package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/SscSPs/loandesk_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes err as {"error": ...} with the status it maps to.
// Internal errors are logged and answered with fallback so no detail leaks.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)

	message := fallback
	var appErr *apperrors.AppError
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error(fallback, slog.String("error", err.Error()))
	case errors.As(err, &appErr):
		message = appErr.Message
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	default:
		message = err.Error()
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{Error: message})
}

// bindError answers a failed ShouldBind* call.
func bindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request: " + err.Error()})
}

// callerFrom returns the caller set by CallerMiddleware, answering 401 when it is missing.
func callerFrom(c *gin.Context) (domain.Caller, bool) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Caller not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return domain.Caller{}, false
	}
	return caller, true
}
