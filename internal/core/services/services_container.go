package services

import (
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Dashboard first: every writing service invalidates it.
	container.Dashboard = NewDashboardService(repos.DashboardRepo, repos.FinanceRepo, repos.DashboardCache, cfg.DashboardCacheTTL)

	container.Profile = NewProfileService(repos.ProfileRepo, repos.AgencyRepo)
	container.Article = NewArticleService(repos.TxManager, repos.ArticleRepo, repos.DonorRepo, container.Dashboard)
	container.Beneficiary = NewBeneficiaryService(repos.BeneficiaryRepo, container.Dashboard)
	container.Donor = NewDonorService(repos.DonorRepo, container.Dashboard)
	container.Finance = NewFinanceService(repos.FinanceRepo, repos.DonorRepo, container.Dashboard)
	container.Message = NewMessageService(repos.MessageRepo, repos.ProfileRepo)

	container.Loan = NewLoanService(
		repos.TxManager,
		repos.LoanRepo,
		repos.ArticleRepo,
		repos.BeneficiaryRepo,
		WithLoanDashboard(container.Dashboard),
	)

	container.Signup = NewSignupService(
		repos.TxManager,
		repos.SignupRepo,
		repos.ProfileRepo,
		repos.AgencyRepo,
		repos.Identity,
		WithInviteRedirectURL(cfg.InviteRedirectURL),
	)

	container.TokenService = NewTokenService(cfg)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	container.Auth = NewAuthService(repos.Identity, container.TokenService, container.GoogleOAuthHandler)

	return container
}
