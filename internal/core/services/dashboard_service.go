package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
)

// dashboardService computes the agency overview and caches it aside.
// Cache failures are logged and never fail the request.
type dashboardService struct {
	BaseService
	reader      portsrepo.DashboardReader
	financeRepo portsrepo.FinanceReader
	cache       portsrepo.DashboardCache
	ttl         time.Duration
}

func NewDashboardService(reader portsrepo.DashboardReader, financeRepo portsrepo.FinanceReader, cache portsrepo.DashboardCache, ttl time.Duration) portssvc.DashboardSvcFacade {
	return &dashboardService{reader: reader, financeRepo: financeRepo, cache: cache, ttl: ttl}
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

func (s *dashboardService) GetDashboard(ctx context.Context, caller domain.Caller, agencyID string) (*domain.DashboardStats, error) {
	agencyID, err := s.resolveAgency(ctx, caller, agencyID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		stats, found, err := s.cache.GetDashboard(ctx, agencyID)
		if err != nil {
			s.LogError(ctx, err, "Dashboard cache read failed", slog.String("agency_id", agencyID))
		} else if found {
			return stats, nil
		}
	}

	now := s.now()
	counts, err := s.reader.DashboardCounts(ctx, agencyID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to count dashboard figures", slog.String("agency_id", agencyID))
		return nil, err
	}
	from, to := monthBounds(now)
	totals, err := s.financeRepo.SumByCategory(ctx, agencyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum month transactions", slog.String("agency_id", agencyID))
		return nil, err
	}

	stats := domain.BuildDashboard(agencyID, *counts, domain.Summarize(from, to, totals), now)
	if s.cache != nil {
		if err := s.cache.SetDashboard(ctx, stats, s.ttl); err != nil {
			s.LogError(ctx, err, "Dashboard cache write failed", slog.String("agency_id", agencyID))
		}
	}
	return &stats, nil
}

func (s *dashboardService) Invalidate(ctx context.Context, agencyID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDashboard(ctx, agencyID); err != nil {
		s.LogError(ctx, err, "Dashboard cache invalidation failed", slog.String("agency_id", agencyID))
	}
}
