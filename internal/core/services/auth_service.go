package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/platform/config"
	"github.com/SscSPs/loandesk_backend/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService signs access tokens for identities.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given identity.
func (s *tokenService) GenerateAccessToken(ctx context.Context, identity *domain.Identity) (string, time.Time, error) {
	return utils.GenerateJWT(identity.IdentityID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
}

// --- GoogleOAuthHandlerSvcFacade Implementation ---

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg *config.Config
	// oauth2Config is configured at initialization time
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns the payload if valid.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}
	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}

// authService authenticates identities through the identity provider and signs tokens.
type authService struct {
	BaseService
	identity portsrepo.IdentityProvider
	tokens   portssvc.TokenSvcFacade
	google   portssvc.GoogleOAuthHandlerSvcFacade
}

func NewAuthService(identity portsrepo.IdentityProvider, tokens portssvc.TokenSvcFacade, google portssvc.GoogleOAuthHandlerSvcFacade) portssvc.AuthSvcFacade {
	return &authService{identity: identity, tokens: tokens, google: google}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, email string, password string) (string, time.Time, error) {
	ident, err := s.identity.VerifyPassword(ctx, normalizeEmail(email), password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			s.LogDebug(ctx, "Login rejected")
		} else {
			s.LogError(ctx, err, "Login failed")
		}
		return "", time.Time{}, err
	}
	return s.issue(ctx, ident)
}

func (s *authService) AcceptInvite(ctx context.Context, token string, password string) (string, time.Time, error) {
	ident, err := s.identity.AcceptInvite(ctx, token, password)
	if err != nil {
		return "", time.Time{}, err
	}
	s.LogInfo(ctx, "Invitation accepted", slog.String("identity_id", ident.IdentityID))
	return s.issue(ctx, ident)
}

func (s *authService) LoginWithGoogle(ctx context.Context, code string) (string, time.Time, error) {
	oauthToken, err := s.google.ExchangeCodeForToken(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Google code exchange failed")
		return "", time.Time{}, apperrors.NewUnauthorizedError("could not sign in with Google")
	}
	rawIDToken, ok := oauthToken.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", time.Time{}, apperrors.NewUnauthorizedError("Google did not return an ID token")
	}
	payload, err := s.google.ValidateGoogleIDToken(ctx, rawIDToken)
	if err != nil {
		s.LogError(ctx, err, "Google ID token rejected")
		return "", time.Time{}, apperrors.NewUnauthorizedError("could not sign in with Google")
	}

	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		return "", time.Time{}, apperrors.NewUnauthorizedError("Google account email is not verified")
	}

	ident, err := s.identity.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", time.Time{}, apperrors.NewForbiddenError("no account exists for this Google address; submit a signup request first")
		}
		return "", time.Time{}, err
	}
	if ident.GoogleSubject == nil || *ident.GoogleSubject != payload.Subject {
		if err := s.identity.LinkGoogleSubject(ctx, ident.IdentityID, payload.Subject); err != nil {
			return "", time.Time{}, err
		}
	}
	return s.issue(ctx, ident)
}

func (s *authService) issue(ctx context.Context, ident *domain.Identity) (string, time.Time, error) {
	token, expiresAt, err := s.tokens.GenerateAccessToken(ctx, ident)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("identity_id", ident.IdentityID))
		return "", time.Time{}, apperrors.NewInternalServerError("failed to issue token")
	}
	return token, expiresAt, nil
}
