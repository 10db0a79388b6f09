package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/SscSPs/loandesk_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_CacheHit(t *testing.T) {
	reader := new(MockDashboardReader)
	finance := new(MockFinanceRepository)
	cache := new(MockDashboardCache)
	svc := services.NewDashboardService(reader, finance, cache, time.Minute)
	caller := domain.Caller{UserID: testUserID, Role: domain.RoleVolunteer, AgencyID: strPtr(testAgencyID)}

	cached := &domain.DashboardStats{AgencyID: testAgencyID, OpenLoans: 4}
	cache.On("GetDashboard", mock.Anything, testAgencyID).Return(cached, true, nil).Once()

	stats, err := svc.GetDashboard(context.Background(), caller, "")

	require.NoError(t, err)
	assert.Equal(t, 4, stats.OpenLoans)
	reader.AssertNotCalled(t, "DashboardCounts", mock.Anything, mock.Anything, mock.Anything)
}

func TestDashboardService_MissComputesAndStores(t *testing.T) {
	reader := new(MockDashboardReader)
	finance := new(MockFinanceRepository)
	cache := new(MockDashboardCache)
	svc := services.NewDashboardService(reader, finance, cache, 90*time.Second)
	caller := domain.Caller{UserID: testUserID, Role: domain.RoleAdmin, AgencyID: strPtr(testAgencyID)}

	counts := &domain.DashboardCounts{
		ArticlesByStatus: map[domain.ArticleStatus]int{domain.ArticleAvailable: 5, domain.ArticleOnLoan: 3},
		OpenLoans:        2,
		OverdueLoans:     1,
		Beneficiaries:    7,
		Donors:           2,
	}
	totals := []domain.CategoryTotal{
		{Kind: domain.Income, Category: "donation", Total: decimal.RequireFromString("250.00")},
		{Kind: domain.Expense, Category: "repairs", Total: decimal.RequireFromString("75.50")},
	}

	cache.On("GetDashboard", mock.Anything, testAgencyID).Return(nil, false, nil).Once()
	reader.On("DashboardCounts", mock.Anything, testAgencyID, mock.AnythingOfType("time.Time")).Return(counts, nil).Once()
	finance.On("SumByCategory", mock.Anything, testAgencyID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(totals, nil).Once()
	cache.On("SetDashboard", mock.Anything, mock.MatchedBy(func(s domain.DashboardStats) bool {
		return s.AgencyID == testAgencyID && s.TotalArticles == 8
	}), 90*time.Second).Return(nil).Once()

	stats, err := svc.GetDashboard(context.Background(), caller, "")

	require.NoError(t, err)
	assert.Equal(t, 8, stats.TotalArticles)
	assert.Equal(t, 0, stats.ArticlesByStatus[domain.ArticleMaintenance])
	assert.Equal(t, 1, stats.OverdueLoans)
	assert.True(t, stats.MonthBalance.Equal(decimal.RequireFromString("174.50")))
	cache.AssertExpectations(t)
}

func TestDashboardService_CacheErrorFallsBackToDatabase(t *testing.T) {
	reader := new(MockDashboardReader)
	finance := new(MockFinanceRepository)
	cache := new(MockDashboardCache)
	svc := services.NewDashboardService(reader, finance, cache, time.Minute)
	caller := domain.Caller{UserID: testUserID, Role: domain.RoleVolunteer, AgencyID: strPtr(testAgencyID)}

	cache.On("GetDashboard", mock.Anything, testAgencyID).Return(nil, false, assert.AnError).Once()
	reader.On("DashboardCounts", mock.Anything, testAgencyID, mock.Anything).Return(&domain.DashboardCounts{}, nil).Once()
	finance.On("SumByCategory", mock.Anything, testAgencyID, mock.Anything, mock.Anything).Return(nil, nil).Once()
	cache.On("SetDashboard", mock.Anything, mock.Anything, time.Minute).Return(assert.AnError).Once()

	stats, err := svc.GetDashboard(context.Background(), caller, "")

	require.NoError(t, err)
	assert.True(t, stats.MonthBalance.IsZero())
}

func TestDashboardService_ReadErrorIsReturned(t *testing.T) {
	reader := new(MockDashboardReader)
	finance := new(MockFinanceRepository)
	svc := services.NewDashboardService(reader, finance, nil, time.Minute)
	caller := domain.Caller{UserID: testUserID, Role: domain.RoleVolunteer, AgencyID: strPtr(testAgencyID)}

	reader.On("DashboardCounts", mock.Anything, testAgencyID, mock.Anything).Return(nil, assert.AnError).Once()

	_, err := svc.GetDashboard(context.Background(), caller, "")

	assert.ErrorIs(t, err, assert.AnError)
	finance.AssertNotCalled(t, "SumByCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDashboardService_Invalidate(t *testing.T) {
	cache := new(MockDashboardCache)
	svc := services.NewDashboardService(new(MockDashboardReader), new(MockFinanceRepository), cache, time.Minute)
	cache.On("InvalidateDashboard", mock.Anything, testAgencyID).Return(nil).Once()

	svc.Invalidate(context.Background(), testAgencyID)

	cache.AssertExpectations(t)
}
