package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	totals := []domain.CategoryTotal{
		{Kind: domain.Income, Category: "donation", Total: decimal.RequireFromString("150.50")},
		{Kind: domain.Income, Category: "grant", Total: decimal.RequireFromString("1000")},
		{Kind: domain.Expense, Category: "repairs", Total: decimal.RequireFromString("75.25")},
	}

	summary := domain.Summarize(from, to, totals)

	assert.True(t, decimal.RequireFromString("1150.50").Equal(summary.TotalIncome))
	assert.True(t, decimal.RequireFromString("75.25").Equal(summary.TotalExpense))
	assert.True(t, decimal.RequireFromString("1075.25").Equal(summary.Balance))
	assert.Len(t, summary.ByCategory, 3)
}

func TestSummarize_Empty(t *testing.T) {
	summary := domain.Summarize(time.Time{}, time.Time{}, nil)
	assert.True(t, summary.Balance.IsZero())
	assert.NotNil(t, summary.ByCategory)
}

func TestFinancialTransaction_SignedAmount(t *testing.T) {
	in := domain.FinancialTransaction{Kind: domain.Income, Amount: decimal.NewFromInt(10)}
	out := domain.FinancialTransaction{Kind: domain.Expense, Amount: decimal.NewFromInt(10)}
	assert.True(t, decimal.NewFromInt(10).Equal(in.SignedAmount()))
	assert.True(t, decimal.NewFromInt(-10).Equal(out.SignedAmount()))
}

func TestCaller(t *testing.T) {
	agency := "ag-1"
	admin := domain.Caller{UserID: "u1", Role: domain.RoleAdmin, AgencyID: &agency}
	super := domain.Caller{UserID: "u2", Role: domain.RoleSuperadmin}
	vol := domain.Caller{UserID: "u3", Role: domain.RoleVolunteer, AgencyID: &agency}

	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsSuperadmin())
	assert.True(t, super.IsAdmin())
	assert.True(t, super.IsSuperadmin())
	assert.False(t, vol.IsAdmin())
	assert.True(t, vol.BelongsTo("ag-1"))
	assert.False(t, super.BelongsTo("ag-1"))
}
