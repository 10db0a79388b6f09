package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
)

// DashboardReader aggregates the per-agency counts shown on the dashboard.
type DashboardReader interface {
	DashboardCounts(ctx context.Context, agencyID string, now time.Time) (*domain.DashboardCounts, error)
}

// DashboardCache stores computed dashboards per agency.
// A miss is reported as (nil, false, nil).
type DashboardCache interface {
	GetDashboard(ctx context.Context, agencyID string) (*domain.DashboardStats, bool, error)
	SetDashboard(ctx context.Context, stats domain.DashboardStats, ttl time.Duration) error
	InvalidateDashboard(ctx context.Context, agencyID string) error
}
