package pgsql

import (
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx repositories. The identity provider and the
// dashboard cache are built outside this package and passed in.
func NewRepositoryProvider(dbPool *pgxpool.Pool, identity portsrepo.IdentityProvider, cache portsrepo.DashboardCache) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       &BaseRepository{Pool: dbPool},
		ArticleRepo:     newPgxArticleRepository(dbPool),
		BeneficiaryRepo: newPgxBeneficiaryRepository(dbPool),
		LoanRepo:        newPgxLoanRepository(dbPool),
		SignupRepo:      newPgxSignupRequestRepository(dbPool),
		ProfileRepo:     newPgxProfileRepository(dbPool),
		AgencyRepo:      newPgxAgencyRepository(dbPool),
		DonorRepo:       newPgxDonorRepository(dbPool),
		FinanceRepo:     newPgxFinanceRepository(dbPool),
		MessageRepo:     newPgxMessageRepository(dbPool),
		DashboardRepo:   newDashboardRepository(dbPool),
		Identity:        identity,
		DashboardCache:  cache,
	}
}
