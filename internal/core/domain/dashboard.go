package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats is the per-agency overview shown on the home screen.
type DashboardStats struct {
	AgencyID         string                `json:"agencyID"`
	ArticlesByStatus map[ArticleStatus]int `json:"articlesByStatus"`
	TotalArticles    int                   `json:"totalArticles"`
	OpenLoans        int                   `json:"openLoans"`
	OverdueLoans     int                   `json:"overdueLoans"`
	Beneficiaries    int                   `json:"beneficiaries"`
	Donors           int                   `json:"donors"`
	MonthIncome      decimal.Decimal       `json:"monthIncome"`
	MonthExpense     decimal.Decimal       `json:"monthExpense"`
	MonthBalance     decimal.Decimal       `json:"monthBalance"`
	GeneratedAt      time.Time             `json:"generatedAt"`
}

// DashboardCounts is the raw material the repository returns for the dashboard.
type DashboardCounts struct {
	ArticlesByStatus map[ArticleStatus]int
	OpenLoans        int
	OverdueLoans     int
	Beneficiaries    int
	Donors           int
}

// BuildDashboard combines counts and the month's finance summary.
func BuildDashboard(agencyID string, counts DashboardCounts, month FinanceSummary, now time.Time) DashboardStats {
	byStatus := make(map[ArticleStatus]int, len(ArticleStatuses))
	total := 0
	for _, s := range ArticleStatuses {
		byStatus[s] = counts.ArticlesByStatus[s]
		total += counts.ArticlesByStatus[s]
	}
	return DashboardStats{
		AgencyID:         agencyID,
		ArticlesByStatus: byStatus,
		TotalArticles:    total,
		OpenLoans:        counts.OpenLoans,
		OverdueLoans:     counts.OverdueLoans,
		Beneficiaries:    counts.Beneficiaries,
		Donors:           counts.Donors,
		MonthIncome:      month.TotalIncome,
		MonthExpense:     month.TotalExpense,
		MonthBalance:     month.Balance,
		GeneratedAt:      now,
	}
}
