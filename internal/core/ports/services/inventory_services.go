package services

import (
	"context"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/SscSPs/loandesk_backend/internal/dto"
)

// ArticleSvcFacade manages the article inventory of an agency.
type ArticleSvcFacade interface {
	CreateArticle(ctx context.Context, caller domain.Caller, agencyID string, req dto.CreateArticleRequest) (*domain.Article, error)
	GetArticle(ctx context.Context, caller domain.Caller, articleID string) (*domain.Article, error)
	ListArticles(ctx context.Context, caller domain.Caller, agencyID string, params dto.ListArticlesParams) ([]domain.Article, error)
	UpdateArticle(ctx context.Context, caller domain.Caller, articleID string, req dto.UpdateArticleRequest) (*domain.Article, error)
	DeleteArticle(ctx context.Context, caller domain.Caller, articleID string) error
}

// BeneficiarySvcFacade manages beneficiaries.
type BeneficiarySvcFacade interface {
	CreateBeneficiary(ctx context.Context, caller domain.Caller, agencyID string, req dto.CreateBeneficiaryRequest) (*domain.Beneficiary, error)
	GetBeneficiary(ctx context.Context, caller domain.Caller, beneficiaryID string) (*domain.Beneficiary, error)
	ListBeneficiaries(ctx context.Context, caller domain.Caller, agencyID string, params dto.ListParams) ([]domain.Beneficiary, error)
	UpdateBeneficiary(ctx context.Context, caller domain.Caller, beneficiaryID string, req dto.UpdateBeneficiaryRequest) (*domain.Beneficiary, error)
	DeleteBeneficiary(ctx context.Context, caller domain.Caller, beneficiaryID string) error
}

// DonorSvcFacade manages donors.
type DonorSvcFacade interface {
	CreateDonor(ctx context.Context, caller domain.Caller, agencyID string, req dto.CreateDonorRequest) (*domain.Donor, error)
	GetDonor(ctx context.Context, caller domain.Caller, donorID string) (*domain.Donor, error)
	ListDonors(ctx context.Context, caller domain.Caller, agencyID string, params dto.ListParams) ([]domain.Donor, error)
	UpdateDonor(ctx context.Context, caller domain.Caller, donorID string, req dto.UpdateDonorRequest) (*domain.Donor, error)
	DeleteDonor(ctx context.Context, caller domain.Caller, donorID string) error
}
