package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
)

// ArticleReader defines read operations for article data
type ArticleReader interface {
	// FindArticleByID retrieves a specific article by its ID.
	FindArticleByID(ctx context.Context, articleID string) (*domain.Article, error)

	// FindArticlesByIDs retrieves the given articles, locking them for update when called inside a transaction.
	FindArticlesByIDs(ctx context.Context, articleIDs []string) ([]domain.Article, error)

	// ListArticles retrieves the articles of an agency matching the filter.
	ListArticles(ctx context.Context, agencyID string, filter domain.ArticleFilter) ([]domain.Article, error)
}

// ArticleWriter defines write operations for article data
type ArticleWriter interface {
	SaveArticle(ctx context.Context, article domain.Article) error
	UpdateArticle(ctx context.Context, article domain.Article) error

	// UpdateArticleStatus moves an article to a new status and, when state is set, records its condition.
	UpdateArticleStatus(ctx context.Context, articleID string, status domain.ArticleStatus, state *domain.ArticleState, userID string, at time.Time) error

	DeleteArticle(ctx context.Context, articleID string) error
}

// ArticleRepositoryFacade combines all article-related repository interfaces
type ArticleRepositoryFacade interface {
	ArticleReader
	ArticleWriter
}
