package services

import (
	"context"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues access tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, identity *domain.Identity) (string, time.Time, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// AuthSvcFacade authenticates identities and returns signed access tokens.
type AuthSvcFacade interface {
	Login(ctx context.Context, email string, password string) (string, time.Time, error)
	AcceptInvite(ctx context.Context, token string, password string) (string, time.Time, error)
	// LoginWithGoogle exchanges an authorization code; only already-known identities may sign in.
	LoginWithGoogle(ctx context.Context, code string) (string, time.Time, error)
}
