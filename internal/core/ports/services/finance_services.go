package services

import (
	"context"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/SscSPs/loandesk_backend/internal/dto"
)

// FinanceSvcFacade records money movements and summarises them.
type FinanceSvcFacade interface {
	CreateTransaction(ctx context.Context, caller domain.Caller, agencyID string, req dto.CreateTransactionRequest) (*domain.FinancialTransaction, error)
	ListTransactions(ctx context.Context, caller domain.Caller, agencyID string, params dto.ListTransactionsParams) ([]domain.FinancialTransaction, error)
	DeleteTransaction(ctx context.Context, caller domain.Caller, transactionID string) error
	// Summary totals [from, to). Zero bounds default to the current month.
	Summary(ctx context.Context, caller domain.Caller, agencyID string, from time.Time, to time.Time) (*domain.FinanceSummary, error)
}

// MessageSvcFacade sends and lists internal messages.
type MessageSvcFacade interface {
	SendMessage(ctx context.Context, caller domain.Caller, req dto.SendMessageRequest) (*domain.Message, error)
	ListMessages(ctx context.Context, caller domain.Caller, params dto.ListMessagesParams) ([]domain.Message, error)
	MarkRead(ctx context.Context, caller domain.Caller, messageID string) error
	UnreadCount(ctx context.Context, caller domain.Caller) (int, error)
}

// DashboardSvcFacade computes the agency overview.
type DashboardSvcFacade interface {
	GetDashboard(ctx context.Context, caller domain.Caller, agencyID string) (*domain.DashboardStats, error)
	// Invalidate drops the cached dashboard after a write.
	Invalidate(ctx context.Context, agencyID string)
}
