package dto

import (
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
)

// CreateArticleRequest registers a donated article.
type CreateArticleRequest struct {
	Name        string              `json:"name" binding:"required,max=200"`
	Category    string              `json:"category" binding:"required,max=100"`
	Description string              `json:"description"`
	State       domain.ArticleState `json:"state" binding:"required,articlestate"`
	DonorID     *string             `json:"donorID" binding:"omitempty,uuid"`
	DonatedAt   *time.Time          `json:"donatedAt"`
}

// UpdateArticleRequest edits an article. Status cannot be set to on_loan by hand.
type UpdateArticleRequest struct {
	Name        *string               `json:"name" binding:"omitempty,max=200"`
	Category    *string               `json:"category" binding:"omitempty,max=100"`
	Description *string               `json:"description"`
	State       *domain.ArticleState  `json:"state" binding:"omitempty,articlestate"`
	Status      *domain.ArticleStatus `json:"status" binding:"omitempty,articlestatus"`
}

// ListArticlesParams defines query parameters for listing articles.
type ListArticlesParams struct {
	Status   *domain.ArticleStatus `form:"status" binding:"omitempty,articlestatus"`
	Category string                `form:"category"`
	Search   string                `form:"search"`
	Limit    int                   `form:"limit,default=50" binding:"min=1,max=200"`
	Offset   int                   `form:"offset,default=0" binding:"min=0"`
}

// ListArticlesResponse wraps the list of articles.
type ListArticlesResponse struct {
	Articles []domain.Article `json:"articles"`
}
