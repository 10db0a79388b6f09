package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/SscSPs/loandesk_backend/internal/middleware"
)

// dashboardInvalidator is implemented by the dashboard service.
type dashboardInvalidator interface {
	Invalidate(ctx context.Context, agencyID string)
}

// BaseService provides common functionality for all services
type BaseService struct {
	Dashboard dashboardInvalidator
	Now       func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// now returns the service clock in UTC.
func (s *BaseService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// invalidateDashboard drops the cached dashboard of an agency after a write.
func (s *BaseService) invalidateDashboard(ctx context.Context, agencyID string) {
	if s.Dashboard != nil {
		s.Dashboard.Invalidate(ctx, agencyID)
	}
}

// resolveAgency picks the agency a call acts on. An empty request means the
// caller's own agency; only superadmins may name another one.
func (s *BaseService) resolveAgency(ctx context.Context, caller domain.Caller, requested string) (string, error) {
	if requested == "" {
		if caller.AgencyID == nil {
			return "", apperrors.NewValidationFailedError("agency_id is required for users without an agency")
		}
		return *caller.AgencyID, nil
	}
	if caller.IsSuperadmin() || caller.BelongsTo(requested) {
		return requested, nil
	}
	s.LogDebug(ctx, "Caller tried to act on another agency",
		slog.String("user_id", caller.UserID),
		slog.String("agency_id", requested))
	return "", apperrors.NewForbiddenError("you do not belong to this agency")
}

// canSee reports whether a row owned by agencyID is visible to the caller.
// Rows of other agencies are reported as not found.
func canSee(caller domain.Caller, agencyID string) bool {
	return caller.IsSuperadmin() || caller.BelongsTo(agencyID)
}
