package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Loan        LoanSvcFacade
	Signup      SignupSvcFacade
	Profile     ProfileSvcFacade
	Article     ArticleSvcFacade
	Beneficiary BeneficiarySvcFacade
	Donor       DonorSvcFacade
	Finance     FinanceSvcFacade
	Message     MessageSvcFacade
	Dashboard   DashboardSvcFacade

	Auth               AuthSvcFacade
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
