package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/google/uuid"
)

type financeService struct {
	BaseService
	financeRepo portsrepo.FinanceRepositoryFacade
	donorRepo   portsrepo.DonorReader
}

func NewFinanceService(financeRepo portsrepo.FinanceRepositoryFacade, donorRepo portsrepo.DonorReader, dashboard dashboardInvalidator) portssvc.FinanceSvcFacade {
	return &financeService{
		BaseService: BaseService{Dashboard: dashboard},
		financeRepo: financeRepo,
		donorRepo:   donorRepo,
	}
}

var _ portssvc.FinanceSvcFacade = (*financeService)(nil)

func (s *financeService) CreateTransaction(ctx context.Context, caller domain.Caller, agencyID string, req dto.CreateTransactionRequest) (*domain.FinancialTransaction, error) {
	agencyID, err := s.resolveAgency(ctx, caller, agencyID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, apperrors.NewForbiddenError("only admins can record transactions")
	}
	if !req.Kind.Valid() {
		return nil, apperrors.NewValidationFailedError("kind must be income or expense")
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationFailedError("amount must be greater than zero")
	}
	if req.DonorID != nil {
		donor, err := s.donorRepo.FindDonorByID(ctx, *req.DonorID)
		if err != nil || donor.AgencyID != agencyID {
			return nil, apperrors.NewValidationFailedError("donor not found")
		}
	}

	now := s.now()
	date := now
	if req.TransactionDate != nil {
		date = req.TransactionDate.UTC()
	}

	txn := domain.FinancialTransaction{
		TransactionID:   uuid.NewString(),
		AgencyID:        agencyID,
		Kind:            req.Kind,
		Amount:          req.Amount.Round(2),
		Category:        strings.TrimSpace(req.Category),
		Description:     req.Description,
		DonorID:         req.DonorID,
		TransactionDate: date,
		AuditFields:     domain.NewAuditFields(caller.UserID, now),
	}
	if err := s.financeRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("agency_id", agencyID))
		return nil, err
	}
	s.invalidateDashboard(ctx, agencyID)
	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("kind", string(txn.Kind)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

func (s *financeService) ListTransactions(ctx context.Context, caller domain.Caller, agencyID string, params dto.ListTransactionsParams) ([]domain.FinancialTransaction, error) {
	agencyID, err := s.resolveAgency(ctx, caller, agencyID)
	if err != nil {
		return nil, err
	}
	filter := domain.TransactionFilter{Kind: params.Kind, Limit: params.Limit}
	if params.From != nil {
		filter.From = *params.From
	}
	if params.To != nil {
		// the bound is a calendar day, inclusive
		filter.To = params.To.AddDate(0, 0, 1)
	}
	return s.financeRepo.ListTransactions(ctx, agencyID, filter)
}

func (s *financeService) DeleteTransaction(ctx context.Context, caller domain.Caller, transactionID string) error {
	txn, err := s.financeRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if !canSee(caller, txn.AgencyID) {
		return apperrors.NewNotFoundError("transaction not found")
	}
	if !caller.IsAdmin() {
		return apperrors.NewForbiddenError("only admins can delete transactions")
	}
	if err := s.financeRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}
	s.invalidateDashboard(ctx, txn.AgencyID)
	return nil
}

func (s *financeService) Summary(ctx context.Context, caller domain.Caller, agencyID string, from time.Time, to time.Time) (*domain.FinanceSummary, error) {
	agencyID, err := s.resolveAgency(ctx, caller, agencyID)
	if err != nil {
		return nil, err
	}
	if from.IsZero() && to.IsZero() {
		from, to = monthBounds(s.now())
	}
	if to.IsZero() {
		to = s.now()
	}
	if !from.Before(to) {
		return nil, apperrors.NewValidationFailedError("from must be before to")
	}

	totals, err := s.financeRepo.SumByCategory(ctx, agencyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum transactions", slog.String("agency_id", agencyID))
		return nil, err
	}
	summary := domain.Summarize(from, to, totals)
	return &summary, nil
}

// monthBounds returns [first day of the month, first day of the next month) in UTC.
func monthBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
