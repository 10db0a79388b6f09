package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/google/uuid"
)

type articleService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	articleRepo portsrepo.ArticleRepositoryFacade
	donorRepo   portsrepo.DonorReader
}

// NewArticleService creates the inventory service.
// Edits and deletes lock the article row so they cannot race the loan workflow.
func NewArticleService(txManager portsrepo.TransactionManager, articleRepo portsrepo.ArticleRepositoryFacade, donorRepo portsrepo.DonorReader, dashboard dashboardInvalidator) portssvc.ArticleSvcFacade {
	return &articleService{
		BaseService: BaseService{Dashboard: dashboard},
		txManager:   txManager,
		articleRepo: articleRepo,
		donorRepo:   donorRepo,
	}
}

var _ portssvc.ArticleSvcFacade = (*articleService)(nil)

func (s *articleService) CreateArticle(ctx context.Context, caller domain.Caller, agencyID string, req dto.CreateArticleRequest) (*domain.Article, error) {
	agencyID, err := s.resolveAgency(ctx, caller, agencyID)
	if err != nil {
		return nil, err
	}
	if req.DonorID != nil {
		if err := s.checkDonor(ctx, agencyID, *req.DonorID); err != nil {
			return nil, err
		}
	}

	article := domain.Article{
		ArticleID:   uuid.NewString(),
		AgencyID:    agencyID,
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		Status:      domain.ArticleAvailable,
		State:       req.State,
		DonorID:     req.DonorID,
		DonatedAt:   req.DonatedAt,
		AuditFields: domain.NewAuditFields(caller.UserID, s.now()),
	}
	if err := s.articleRepo.SaveArticle(ctx, article); err != nil {
		s.LogError(ctx, err, "Failed to save article", slog.String("agency_id", agencyID))
		return nil, err
	}
	s.invalidateDashboard(ctx, agencyID)
	s.LogInfo(ctx, "Article created", slog.String("article_id", article.ArticleID))
	return &article, nil
}

func (s *articleService) GetArticle(ctx context.Context, caller domain.Caller, articleID string) (*domain.Article, error) {
	article, err := s.articleRepo.FindArticleByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !canSee(caller, article.AgencyID) {
		return nil, apperrors.NewNotFoundError("article not found")
	}
	return article, nil
}

func (s *articleService) ListArticles(ctx context.Context, caller domain.Caller, agencyID string, params dto.ListArticlesParams) ([]domain.Article, error) {
	agencyID, err := s.resolveAgency(ctx, caller, agencyID)
	if err != nil {
		return nil, err
	}
	return s.articleRepo.ListArticles(ctx, agencyID, domain.ArticleFilter{
		Status:   params.Status,
		Category: params.Category,
		Search:   strings.TrimSpace(params.Search),
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
}

func (s *articleService) UpdateArticle(ctx context.Context, caller domain.Caller, articleID string, req dto.UpdateArticleRequest) (*domain.Article, error) {
	var article *domain.Article
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		article, err = s.GetArticle(ctx, caller, articleID)
		if err != nil {
			return err
		}

		if req.Status != nil && *req.Status != article.Status {
			// on_loan is owned by the loan workflow in both directions.
			if *req.Status == domain.ArticleOnLoan || article.Status == domain.ArticleOnLoan {
				return apperrors.NewAppError(409, "loan status is managed through loans", apperrors.ErrConflict)
			}
			article.Status = *req.Status
		}
		if req.Name != nil {
			article.Name = strings.TrimSpace(*req.Name)
		}
		if req.Category != nil {
			article.Category = strings.TrimSpace(*req.Category)
		}
		if req.Description != nil {
			article.Description = *req.Description
		}
		if req.State != nil {
			article.State = *req.State
		}
		article.Touch(caller.UserID, s.now())

		return s.articleRepo.UpdateArticle(ctx, *article)
	})
	if err != nil {
		if apperrors.StatusCode(err) >= 500 {
			s.LogError(ctx, err, "Failed to update article", slog.String("article_id", articleID))
		}
		return nil, err
	}
	s.invalidateDashboard(ctx, article.AgencyID)
	return article, nil
}

func (s *articleService) DeleteArticle(ctx context.Context, caller domain.Caller, articleID string) error {
	var agencyID string
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		article, err := s.GetArticle(ctx, caller, articleID)
		if err != nil {
			return err
		}
		if article.Status == domain.ArticleOnLoan {
			return apperrors.NewAppError(409, "article is on loan", apperrors.ErrConflict)
		}
		agencyID = article.AgencyID
		return s.articleRepo.DeleteArticle(ctx, articleID)
	})
	if err != nil {
		if apperrors.StatusCode(err) >= 500 {
			s.LogError(ctx, err, "Failed to delete article", slog.String("article_id", articleID))
		}
		return err
	}
	s.invalidateDashboard(ctx, agencyID)
	return nil
}

func (s *articleService) checkDonor(ctx context.Context, agencyID string, donorID string) error {
	donor, err := s.donorRepo.FindDonorByID(ctx, donorID)
	if errors.Is(err, apperrors.ErrNotFound) || (err == nil && donor.AgencyID != agencyID) {
		return apperrors.NewValidationFailedError("donor not found")
	}
	return err
}
