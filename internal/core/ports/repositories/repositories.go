package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager       TransactionManager
	ArticleRepo     ArticleRepositoryFacade
	BeneficiaryRepo BeneficiaryRepositoryFacade
	LoanRepo        LoanRepositoryFacade
	SignupRepo      SignupRequestRepositoryFacade
	ProfileRepo     ProfileRepositoryFacade
	AgencyRepo      AgencyRepositoryFacade
	DonorRepo       DonorRepositoryFacade
	FinanceRepo     FinanceRepositoryFacade
	MessageRepo     MessageRepositoryFacade
	DashboardRepo   DashboardReader

	// Identity and DashboardCache live outside the database package.
	Identity       IdentityProvider
	DashboardCache DashboardCache
}
