package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxArticleRepository struct {
	BaseRepository
}

// newPgxArticleRepository creates a new repository for article data.
func newPgxArticleRepository(pool *pgxpool.Pool) portsrepo.ArticleRepositoryFacade {
	return &PgxArticleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ArticleRepositoryFacade = (*PgxArticleRepository)(nil)

var FULL_ARTICLE_SELECT_QUERY = `
SELECT
	a.article_id, a.agency_id, a.name, a.category, a.description, a.status, a.state,
	a.donor_id, a.donated_at, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
FROM articles a
`

func (r *PgxArticleRepository) getArticles(ctx context.Context, filterQuery string, args ...any) ([]domain.Article, error) {
	return collect[domain.Article](ctx, r.db(ctx), "articles", FULL_ARTICLE_SELECT_QUERY+filterQuery, args...)
}

func (r *PgxArticleRepository) SaveArticle(ctx context.Context, article domain.Article) error {
	query := `
		INSERT INTO articles (
			article_id, agency_id, name, category, description, status, state,
			donor_id, donated_at, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		article.ArticleID,
		article.AgencyID,
		article.Name,
		article.Category,
		article.Description,
		article.Status,
		article.State,
		article.DonorID,
		article.DonatedAt,
		article.CreatedAt,
		article.CreatedBy,
		article.LastUpdatedAt,
		article.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "article "+article.ArticleID)
	}
	return nil
}

func (r *PgxArticleRepository) FindArticleByID(ctx context.Context, articleID string) (*domain.Article, error) {
	articles, err := r.getArticles(ctx, `WHERE a.article_id = $1`+lockClause(ctx), articleID)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &articles[0], nil
}

func (r *PgxArticleRepository) FindArticlesByIDs(ctx context.Context, articleIDs []string) ([]domain.Article, error) {
	if len(articleIDs) == 0 {
		return []domain.Article{}, nil
	}
	// ORDER BY keeps lock acquisition order stable across concurrent loans.
	return r.getArticles(ctx, `WHERE a.article_id = ANY($1) ORDER BY a.article_id`+lockClause(ctx), articleIDs)
}

func (r *PgxArticleRepository) ListArticles(ctx context.Context, agencyID string, filter domain.ArticleFilter) ([]domain.Article, error) {
	conditions := []string{"a.agency_id = $1"}
	args := []any{agencyID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("a.category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(a.name ILIKE $%d OR a.description ILIKE $%d)", len(args), len(args)))
	}

	limit, offset := page(filter.Limit, filter.Offset)
	args = append(args, limit, offset)
	query := "WHERE " + strings.Join(conditions, " AND ") +
		fmt.Sprintf(" ORDER BY a.name, a.article_id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.getArticles(ctx, query, args...)
}

func (r *PgxArticleRepository) UpdateArticle(ctx context.Context, article domain.Article) error {
	query := `
		UPDATE articles
		SET name = $1, category = $2, description = $3, status = $4, state = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE article_id = $8;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		article.Name,
		article.Category,
		article.Description,
		article.Status,
		article.State,
		article.LastUpdatedAt,
		article.LastUpdatedBy,
		article.ArticleID,
	)
	if err != nil {
		return mapWriteError(err, "article "+article.ArticleID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("article not found")
	}
	return nil
}

func (r *PgxArticleRepository) UpdateArticleStatus(ctx context.Context, articleID string, status domain.ArticleStatus, state *domain.ArticleState, userID string, at time.Time) error {
	query := `
		UPDATE articles
		SET status = $1, state = COALESCE($2, state), last_updated_at = $3, last_updated_by = $4
		WHERE article_id = $5;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, status, state, at, userID, articleID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of article "+articleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("article " + articleID + " not found")
	}
	return nil
}

func (r *PgxArticleRepository) DeleteArticle(ctx context.Context, articleID string) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `DELETE FROM articles WHERE article_id = $1;`, articleID)
	if err != nil {
		return mapDeleteError(err, "article "+articleID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("article not found")
	}
	return nil
}
