package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
)

func (s *loanService) QuickReturn(ctx context.Context, caller domain.Caller, loanID string, state *domain.ArticleState) (*domain.LoanWithArticles, error) {
	condition := domain.StateGood
	if state != nil {
		if !state.Valid() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid return state %q", *state))
		}
		condition = *state
	}

	return s.runReturn(ctx, caller, loanID, "quick", func(ctx context.Context, loan *domain.Loan, articles []domain.LoanArticle) error {
		if loan.IsClosed() {
			return apperrors.NewAppError(409, "loan is already closed", apperrors.ErrConflict)
		}
		at := s.now()
		for i := range articles {
			if !articles[i].IsOpen() {
				continue
			}
			if err := s.closeArticle(ctx, caller, &articles[i], at, condition, ""); err != nil {
				return err
			}
		}
		return s.settle(ctx, caller, loan, articles, at, 0)
	})
}

func (s *loanService) FullReturn(ctx context.Context, caller domain.Caller, loanID string, entries []domain.ReturnEntry) (*domain.LoanWithArticles, error) {
	byArticle, err := indexEntries(entries)
	if err != nil {
		return nil, err
	}

	return s.runReturn(ctx, caller, loanID, "full", func(ctx context.Context, loan *domain.Loan, articles []domain.LoanArticle) error {
		if loan.IsClosed() {
			return apperrors.NewAppError(409, "loan is already closed", apperrors.ErrConflict)
		}

		open := make(map[string]struct{})
		for _, la := range domain.OpenArticles(articles) {
			open[la.ArticleID] = struct{}{}
			if _, ok := byArticle[la.ArticleID]; !ok {
				return apperrors.NewValidationFailedError(fmt.Sprintf("missing return state for article %q", la.ArticleName))
			}
		}
		for articleID := range byArticle {
			if _, ok := open[articleID]; !ok {
				return apperrors.NewValidationFailedError("article " + articleID + " is not out on this loan")
			}
		}

		at := s.now()
		for i := range articles {
			if !articles[i].IsOpen() {
				continue
			}
			entry := byArticle[articles[i].ArticleID]
			if err := s.closeArticle(ctx, caller, &articles[i], at, entry.State, entry.Notes); err != nil {
				return err
			}
		}
		return s.settle(ctx, caller, loan, articles, at, 0)
	})
}

func (s *loanService) PartialReturn(ctx context.Context, caller domain.Caller, loanID string, returnDate time.Time, selected []string, entries []domain.ReturnEntry) (*domain.LoanWithArticles, error) {
	if len(selected) == 0 {
		return nil, apperrors.NewValidationFailedError("select at least one article to return")
	}
	if len(entries) == 0 {
		return nil, apperrors.NewValidationFailedError("provide the return state of the selected articles")
	}
	selected, err := uniqueIDs(selected)
	if err != nil {
		return nil, err
	}
	byArticle, err := indexEntries(entries)
	if err != nil {
		return nil, err
	}

	chosen := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		chosen[id] = struct{}{}
		if _, ok := byArticle[id]; !ok {
			return nil, apperrors.NewValidationFailedError("missing return state for article " + id)
		}
	}
	for articleID := range byArticle {
		if _, ok := chosen[articleID]; !ok {
			return nil, apperrors.NewValidationFailedError("return state given for unselected article " + articleID)
		}
	}

	if returnDate.IsZero() {
		returnDate = s.now()
	}
	returnDate = returnDate.UTC()

	return s.runReturn(ctx, caller, loanID, "partial", func(ctx context.Context, loan *domain.Loan, articles []domain.LoanArticle) error {
		position := make(map[string]int, len(articles))
		for i, la := range articles {
			position[la.ArticleID] = i
		}

		returned := 0
		for _, articleID := range selected {
			i, ok := position[articleID]
			if !ok {
				return apperrors.NewValidationFailedError("article " + articleID + " is not part of this loan")
			}
			if !articles[i].IsOpen() {
				s.LogDebug(ctx, "Skipping article already returned",
					slog.String("loan_id", loan.LoanID),
					slog.String("article_id", articleID))
				continue
			}
			entry := byArticle[articleID]
			if err := s.closeArticle(ctx, caller, &articles[i], returnDate, entry.State, entry.Notes); err != nil {
				return err
			}
			returned++
		}
		return s.settle(ctx, caller, loan, articles, returnDate, returned)
	})
}

type returnStep func(ctx context.Context, loan *domain.Loan, articles []domain.LoanArticle) error

// runReturn loads the loan and all its articles under lock and applies step in one transaction.
func (s *loanService) runReturn(ctx context.Context, caller domain.Caller, loanID string, kind string, step returnStep) (*domain.LoanWithArticles, error) {
	var result *domain.LoanWithArticles
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		loan, err := s.findVisibleLoan(ctx, caller, loanID)
		if err != nil {
			return err
		}
		articles, err := s.loanRepo.FindLoanArticles(ctx, loanID)
		if err != nil {
			return err
		}
		if err := step(ctx, loan, articles); err != nil {
			return err
		}
		result = &domain.LoanWithArticles{Loan: *loan, Articles: articles}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Loan return failed",
			slog.String("loan_id", loanID),
			slog.String("kind", kind))
		return nil, err
	}

	s.invalidateDashboard(ctx, result.Loan.AgencyID)
	s.LogInfo(ctx, "Loan return recorded",
		slog.String("loan_id", loanID),
		slog.String("kind", kind),
		slog.Bool("closed", result.Loan.IsClosed()))
	return result, nil
}

// closeArticle closes one LoanArticle and puts its article back in stock in the returned condition.
func (s *loanService) closeArticle(ctx context.Context, caller domain.Caller, la *domain.LoanArticle, at time.Time, state domain.ArticleState, notes string) error {
	la.Close(at, caller.UserID, state, notes)
	if err := s.loanRepo.CloseLoanArticle(ctx, *la); err != nil {
		return err
	}
	return s.articleRepo.UpdateArticleStatus(ctx, la.ArticleID, domain.ArticleAvailable, &state, caller.UserID, at)
}

// settle re-derives closure from every article of the loan and persists the loan
// when anything changed. returned > 0 marks a partial return and adds an audit line.
func (s *loanService) settle(ctx context.Context, caller domain.Caller, loan *domain.Loan, articles []domain.LoanArticle, at time.Time, returned int) error {
	wasClosed := loan.IsClosed()
	closed := loan.Settle(articles, at, caller.UserID)

	if returned > 0 {
		if closed {
			loan.AppendNote(domain.FinalReturnNote(at, returned))
		} else {
			loan.AppendNote(domain.PartialReturnNote(at, returned))
		}
	}
	if wasClosed == closed && returned == 0 {
		return nil
	}

	loan.Touch(caller.UserID, s.now())
	return s.loanRepo.UpdateLoan(ctx, *loan)
}

// indexEntries maps entries by article and validates their conditions.
func indexEntries(entries []domain.ReturnEntry) (map[string]domain.ReturnEntry, error) {
	byArticle := make(map[string]domain.ReturnEntry, len(entries))
	for _, e := range entries {
		if !e.State.Valid() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid return state %q for article %s", e.State, e.ArticleID))
		}
		if _, dup := byArticle[e.ArticleID]; dup {
			return nil, apperrors.NewValidationFailedError("article " + e.ArticleID + " has more than one return entry")
		}
		byArticle[e.ArticleID] = e
	}
	return byArticle, nil
}
