package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/google/uuid"
)

// loanService implements the LoanSvcFacade interface
type loanService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	loanRepo        portsrepo.LoanRepositoryFacade
	articleRepo     portsrepo.ArticleRepositoryFacade
	beneficiaryRepo portsrepo.BeneficiaryReader
}

// LoanServiceOption is a functional option for configuring the loan service
type LoanServiceOption func(*loanService)

// WithLoanDashboard invalidates the agency dashboard after loan writes.
func WithLoanDashboard(d dashboardInvalidator) LoanServiceOption {
	return func(s *loanService) {
		s.Dashboard = d
	}
}

// WithLoanClock overrides the time source.
func WithLoanClock(now func() time.Time) LoanServiceOption {
	return func(s *loanService) {
		s.Now = now
	}
}

// NewLoanService creates a new loan service with the provided options
func NewLoanService(
	txManager portsrepo.TransactionManager,
	loanRepo portsrepo.LoanRepositoryFacade,
	articleRepo portsrepo.ArticleRepositoryFacade,
	beneficiaryRepo portsrepo.BeneficiaryReader,
	options ...LoanServiceOption,
) portssvc.LoanSvcFacade {
	svc := &loanService{
		txManager:       txManager,
		loanRepo:        loanRepo,
		articleRepo:     articleRepo,
		beneficiaryRepo: beneficiaryRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func (s *loanService) CreateLoan(ctx context.Context, caller domain.Caller, agencyID string, req dto.CreateLoanRequest) (*domain.LoanWithArticles, error) {
	agencyID, err := s.resolveAgency(ctx, caller, agencyID)
	if err != nil {
		return nil, err
	}

	articleIDs, err := uniqueIDs(req.ArticleIDs)
	if err != nil {
		return nil, err
	}
	if len(articleIDs) == 0 {
		return nil, apperrors.NewValidationFailedError("a loan needs at least one article")
	}

	now := s.now()
	loanDate := now
	if req.LoanDate != nil {
		loanDate = req.LoanDate.UTC()
	}
	if req.ExpectedReturnDate != nil && req.ExpectedReturnDate.Before(loanDate) {
		return nil, apperrors.NewValidationFailedError("expected return date is before the loan date")
	}

	var result *domain.LoanWithArticles
	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		beneficiary, err := s.beneficiaryRepo.FindBeneficiaryByID(ctx, req.BeneficiaryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationFailedError("beneficiary not found")
			}
			return err
		}
		if beneficiary.AgencyID != agencyID {
			return apperrors.NewValidationFailedError("beneficiary not found")
		}

		articles, err := s.articleRepo.FindArticlesByIDs(ctx, articleIDs)
		if err != nil {
			return err
		}
		if len(articles) != len(articleIDs) {
			return apperrors.NewValidationFailedError("one or more articles do not exist")
		}

		loan := domain.Loan{
			LoanID:             uuid.NewString(),
			AgencyID:           agencyID,
			BeneficiaryID:      beneficiary.BeneficiaryID,
			LoanedBy:           caller.UserID,
			LoanDate:           loanDate,
			ExpectedReturnDate: req.ExpectedReturnDate,
			ContractSigned:     req.ContractSigned,
			Notes:              req.Notes,
			AuditFields:        domain.NewAuditFields(caller.UserID, now),
		}

		links := make([]domain.LoanArticle, 0, len(articles))
		for _, article := range articles {
			if article.AgencyID != agencyID {
				return apperrors.NewValidationFailedError("one or more articles do not exist")
			}
			if !article.IsLendable() {
				return apperrors.NewAppError(409, fmt.Sprintf("article %q is %s", article.Name, article.Status), apperrors.ErrConflict)
			}
			links = append(links, domain.LoanArticle{
				LoanArticleID: uuid.NewString(),
				LoanID:        loan.LoanID,
				ArticleID:     article.ArticleID,
				ArticleName:   article.Name,
			})
		}

		if err := s.loanRepo.SaveLoan(ctx, loan, links); err != nil {
			return err
		}
		for _, link := range links {
			if err := s.articleRepo.UpdateArticleStatus(ctx, link.ArticleID, domain.ArticleOnLoan, nil, caller.UserID, now); err != nil {
				return err
			}
		}

		result = &domain.LoanWithArticles{Loan: loan, Articles: links}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create loan",
			slog.String("agency_id", agencyID),
			slog.String("beneficiary_id", req.BeneficiaryID))
		return nil, err
	}

	s.invalidateDashboard(ctx, agencyID)
	s.LogInfo(ctx, "Loan created",
		slog.String("loan_id", result.Loan.LoanID),
		slog.Int("articles", len(result.Articles)))
	return result, nil
}

func (s *loanService) GetLoan(ctx context.Context, caller domain.Caller, loanID string) (*domain.LoanWithArticles, error) {
	loan, err := s.findVisibleLoan(ctx, caller, loanID)
	if err != nil {
		return nil, err
	}
	articles, err := s.loanRepo.FindLoanArticles(ctx, loanID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load loan articles", slog.String("loan_id", loanID))
		return nil, err
	}
	return &domain.LoanWithArticles{Loan: *loan, Articles: articles}, nil
}

func (s *loanService) ListLoans(ctx context.Context, caller domain.Caller, agencyID string, params dto.ListLoansParams) (*dto.ListLoansResponse, error) {
	agencyID, err := s.resolveAgency(ctx, caller, agencyID)
	if err != nil {
		return nil, err
	}

	filter := domain.LoanFilter{
		Status:        params.Status,
		BeneficiaryID: params.BeneficiaryID,
		Limit:         params.Limit,
		NextToken:     params.NextToken,
	}
	loans, nextToken, err := s.loanRepo.ListLoans(ctx, agencyID, filter, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans", slog.String("agency_id", agencyID))
		return nil, err
	}
	if loans == nil {
		loans = []domain.Loan{}
	}
	return &dto.ListLoansResponse{Loans: loans, NextToken: nextToken}, nil
}

func (s *loanService) UpdateLoan(ctx context.Context, caller domain.Caller, loanID string, req dto.UpdateLoanRequest) (*domain.Loan, error) {
	var loan *domain.Loan
	// The loan row stays locked until commit so a concurrent return cannot be overwritten.
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		loan, err = s.findVisibleLoan(ctx, caller, loanID)
		if err != nil {
			return err
		}

		if req.Notes != nil {
			loan.Notes = *req.Notes
		}
		if req.ContractSigned != nil {
			loan.ContractSigned = *req.ContractSigned
		}
		if req.ExpectedReturnDate != nil {
			if req.ExpectedReturnDate.Before(loan.LoanDate) {
				return apperrors.NewValidationFailedError("expected return date is before the loan date")
			}
			loan.ExpectedReturnDate = req.ExpectedReturnDate
		}
		loan.Touch(caller.UserID, s.now())

		return s.loanRepo.UpdateLoanDetails(ctx, *loan)
	})
	if err != nil {
		if apperrors.StatusCode(err) >= 500 {
			s.LogError(ctx, err, "Failed to update loan", slog.String("loan_id", loanID))
		}
		return nil, err
	}
	s.invalidateDashboard(ctx, loan.AgencyID)
	return loan, nil
}

func (s *loanService) findVisibleLoan(ctx context.Context, caller domain.Caller, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find loan", slog.String("loan_id", loanID))
		}
		return nil, err
	}
	if !canSee(caller, loan.AgencyID) {
		return nil, apperrors.NewNotFoundError("loan not found")
	}
	return loan, nil
}

// uniqueIDs rejects repeated ids.
func uniqueIDs(ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, apperrors.NewValidationFailedError("article " + id + " is listed more than once")
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
