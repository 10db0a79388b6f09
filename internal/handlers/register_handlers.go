package handlers

import (
	"github.com/SscSPs/loandesk_backend/cmd/docs"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/middleware"
	"github.com/SscSPs/loandesk_backend/internal/platform/config"
	"github.com/SscSPs/loandesk_backend/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouterDeps carries the infrastructure the routes need besides the services.
type RouterDeps struct {
	DB              Pinger
	Posthog         *utils.PosthogClientWrapper
	LoginLimiter    *limiter.Limiter
	FunctionLimiter *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouterDeps,
) {
	health := &healthHandler{db: deps.DB}
	r.GET("/health", health.getHealth)

	public := r.Group("/api/v1")
	registerAuthRoutes(public, services, deps.LoginLimiter)
	registerPublicSignupRoutes(public, services.Signup, middleware.RateLimit(deps.LoginLimiter))

	setupAPIV1Routes(r, cfg, services, deps)
	setupFunctionRoutes(r, cfg, services, deps)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// authenticated returns the middleware chain of every protected group.
func authenticated(cfg *config.Config, services *portssvc.ServiceContainer, deps RouterDeps) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.CallerMiddleware(services.Profile),
		middleware.AnalyticsMiddleware(deps.Posthog),
	}
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, deps RouterDeps) {
	v1 := r.Group("/api/v1", authenticated(cfg, services, deps)...)

	registerProfileRoutes(v1, services.Profile)
	registerSignupReviewRoutes(v1, services.Signup)
	registerArticleRoutes(v1, services.Article)
	registerBeneficiaryRoutes(v1, services.Beneficiary)
	registerDonorRoutes(v1, services.Donor)
	RegisterLoanRoutes(v1, services.Loan, deps.Posthog)
	registerFinanceRoutes(v1, services.Finance)
	registerMessageRoutes(v1, services.Message)
	registerDashboardRoutes(v1, services.Dashboard)
}

// setupFunctionRoutes exposes the signup review endpoints under /functions/v1.
func setupFunctionRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, deps RouterDeps) {
	chain := authenticated(cfg, services, deps)
	if deps.FunctionLimiter != nil {
		chain = append(chain, middleware.RateLimit(deps.FunctionLimiter))
	}
	functions := r.Group("/functions/v1", chain...)
	RegisterApprovalRoutes(functions, services.Signup, deps.Posthog)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
