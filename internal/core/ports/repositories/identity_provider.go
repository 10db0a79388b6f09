package repositories

import (
	"context"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
)

// IdentityProvider manages authentication identities. Profiles share their IDs.
type IdentityProvider interface {
	// FindUserByEmail returns apperrors.ErrNotFound when no identity has the email.
	FindUserByEmail(ctx context.Context, email string) (*domain.Identity, error)

	// InviteUserByEmail creates an unconfirmed identity and mails it an invite link.
	InviteUserByEmail(ctx context.Context, email string, redirectURL string) (*domain.Identity, error)

	GetUserByID(ctx context.Context, identityID string) (*domain.Identity, error)

	// DeleteUser removes an identity. Used to undo an invite.
	DeleteUser(ctx context.Context, identityID string) error

	// AcceptInvite sets the password of an invited identity and confirms it.
	AcceptInvite(ctx context.Context, token string, password string) (*domain.Identity, error)

	// VerifyPassword returns the identity when the password matches, apperrors.ErrUnauthorized otherwise.
	VerifyPassword(ctx context.Context, email string, password string) (*domain.Identity, error)

	// LinkGoogleSubject binds a Google account to an existing identity, confirming it.
	LinkGoogleSubject(ctx context.Context, identityID string, subject string) error
}

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, to string, subject string, body string) error
}
