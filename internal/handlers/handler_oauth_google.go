package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/SscSPs/loandesk_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler handles Google sign-in for accounts that already exist.
type GoogleOAuthHandler struct {
	authService portssvc.AuthSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(authService portssvc.AuthSvcFacade) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{authService: authService}
}

// ExchangeCodeGoogle handles the POST request from the frontend containing the authorization code from Google.
// The code is exchanged for Google tokens, the ID token is validated and an application JWT is returned.
// @Summary Exchange authorization code for access token
// @Description Only accounts created by an approved signup request can sign in with Google.
// @Tags oauth
// @Accept  json
// @Produce  json
// @Param   code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 401 {object} dto.ErrorResponse "Invalid Google ID token"
// @Failure 403 {object} dto.ErrorResponse "No account for this Google user"
// @Failure 504 {object} dto.ErrorResponse "Google did not answer"
// @Router /api/v1/auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	logger.InfoContext(ctx, "Received authorization code, attempting to exchange for token with Google")
	token, expiresAt, err := h.authService.LoginWithGoogle(ctx, req.Code)
	if err != nil {
		respondError(c, err, "Failed to process Google sign-in")
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.Auth)
	googleRoutes := rg.Group("/google")
	{
		googleRoutes.POST("/exchange-code", h.ExchangeCodeGoogle)
	}
}
