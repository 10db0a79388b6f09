package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/SscSPs/loandesk_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// AuthHandler handles password login and invitation acceptance.
type AuthHandler struct {
	authService portssvc.AuthSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvcFacade) *AuthHandler {
	return &AuthHandler{authService: as}
}

// registerAuthRoutes sets up the public authentication routes.
// loginLimiter throttles login and invite acceptance per client IP.
func registerAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, loginLimiter *limiter.Limiter) {
	h := NewAuthHandler(services.Auth)
	limit := middleware.RateLimit(loginLimiter)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", limit, h.Login)
		auth.POST("/accept-invite", limit, h.AcceptInvite)
	}
	registerGoogleOAuthRoutes(auth, services)
}

// Login godoc
// @Summary User login
// @Description Authenticates with email and password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	token, expiresAt, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// AcceptInvite godoc
// @Summary Accept an invitation
// @Description Sets the password of an invited account and signs it in.
// @Tags auth
// @Accept json
// @Produce json
// @Param invite body dto.AcceptInviteRequest true "Invitation token and new password"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid or used invitation"
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/auth/accept-invite [post]
func (h *AuthHandler) AcceptInvite(c *gin.Context) {
	var req dto.AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, expiresAt, err := h.authService.AcceptInvite(c.Request.Context(), req.Token, req.Password)
	if err != nil {
		respondError(c, err, "Failed to accept invitation")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invitation accepted", slog.Time("expires_at", expiresAt))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}
