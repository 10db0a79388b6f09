package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the direction of a money movement.
type TransactionKind string

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

// Valid reports whether k is a known kind.
func (k TransactionKind) Valid() bool {
	return k == Income || k == Expense
}

// FinancialTransaction is one income or expense line of an agency.
type FinancialTransaction struct {
	TransactionID   string          `json:"transactionID" db:"transaction_id"`
	AgencyID        string          `json:"agencyID" db:"agency_id"`
	Kind            TransactionKind `json:"kind" db:"kind"`
	Amount          decimal.Decimal `json:"amount" db:"amount"` // always positive
	Category        string          `json:"category" db:"category"`
	Description     string          `json:"description" db:"description"`
	DonorID         *string         `json:"donorID,omitempty" db:"donor_id"`
	TransactionDate time.Time       `json:"transactionDate" db:"transaction_date"`
	AuditFields
}

// SignedAmount is positive for income and negative for expenses.
func (t FinancialTransaction) SignedAmount() decimal.Decimal {
	if t.Kind == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionFilter narrows transaction listings. Zero times mean unbounded.
type TransactionFilter struct {
	Kind  *TransactionKind
	From  time.Time
	To    time.Time
	Limit int
}

// CategoryTotal is the sum of one kind/category pair.
type CategoryTotal struct {
	Kind     TransactionKind `json:"kind" db:"kind"`
	Category string          `json:"category" db:"category"`
	Total    decimal.Decimal `json:"total" db:"total"`
}

// FinanceSummary aggregates the transactions of a period.
type FinanceSummary struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
	ByCategory   []CategoryTotal `json:"byCategory"`
}

// Summarize folds category totals into a summary.
func Summarize(from, to time.Time, totals []CategoryTotal) FinanceSummary {
	summary := FinanceSummary{
		From:         from,
		To:           to,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		ByCategory:   totals,
	}
	if summary.ByCategory == nil {
		summary.ByCategory = []CategoryTotal{}
	}
	for _, t := range totals {
		switch t.Kind {
		case Income:
			summary.TotalIncome = summary.TotalIncome.Add(t.Total)
		case Expense:
			summary.TotalExpense = summary.TotalExpense.Add(t.Total)
		}
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary
}
