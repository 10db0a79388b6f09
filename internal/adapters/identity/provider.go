package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	"github.com/SscSPs/loandesk_backend/internal/middleware"
	"github.com/SscSPs/loandesk_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxProvider keeps identities in the auth_users table. It never joins the
// caller's transaction: an invite must survive or be deleted on its own.
type PgxProvider struct {
	pool   *pgxpool.Pool
	mailer portsrepo.Mailer
}

var _ portsrepo.IdentityProvider = (*PgxProvider)(nil)

// NewPgxProvider returns an identity provider that sends invitations through mailer.
func NewPgxProvider(pool *pgxpool.Pool, mailer portsrepo.Mailer) *PgxProvider {
	return &PgxProvider{pool: pool, mailer: mailer}
}

const selectIdentity = `
SELECT identity_id, email, password_hash, invited_at, confirmed_at, google_subject, created_at
FROM auth_users
`

func (p *PgxProvider) findOne(ctx context.Context, where string, args ...any) (*domain.Identity, error) {
	rows, err := p.pool.Query(ctx, selectIdentity+where, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query identities", err)
	}
	ident, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Identity])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read identity", err)
	}
	return &ident, nil
}

func (p *PgxProvider) FindUserByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return p.findOne(ctx, `WHERE lower(email) = lower($1)`, strings.TrimSpace(email))
}

func (p *PgxProvider) GetUserByID(ctx context.Context, identityID string) (*domain.Identity, error) {
	return p.findOne(ctx, `WHERE identity_id = $1`, identityID)
}

func (p *PgxProvider) InviteUserByEmail(ctx context.Context, email string, redirectURL string) (*domain.Identity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()
	ident := domain.Identity{
		IdentityID: uuid.NewString(),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		InvitedAt:  &now,
		CreatedAt:  now,
	}

	token, secretHash, err := utils.NewInviteToken(ident.IdentityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to create invite token", err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO auth_users (identity_id, email, invite_token_hash, invited_at, created_at)
		VALUES ($1, $2, $3, $4, $5);`,
		ident.IdentityID, ident.Email, secretHash, ident.InvitedAt, ident.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewConflictError("an account with this email already exists")
		}
		return nil, apperrors.NewAppError(500, "failed to create identity", err)
	}

	link, err := inviteLink(redirectURL, token)
	if err == nil {
		err = p.mailer.Send(ctx, ident.Email, "You have been invited to Loan Desk",
			fmt.Sprintf("Your account request was approved.\n\nSet your password here: %s\n", link))
	}
	if err != nil {
		// The identity is useless without its invite; remove it so a retry starts clean.
		if delErr := p.DeleteUser(ctx, ident.IdentityID); delErr != nil {
			logger.Error("Failed to remove identity after invite mail failure",
				slog.String("identity_id", ident.IdentityID), slog.String("error", delErr.Error()))
		}
		return nil, apperrors.NewAppError(502, "failed to send invitation email", err)
	}

	logger.Info("Identity invited", slog.String("identity_id", ident.IdentityID))
	return &ident, nil
}

func inviteLink(redirectURL string, token string) (string, error) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return "", fmt.Errorf("invalid invite redirect url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (p *PgxProvider) DeleteUser(ctx context.Context, identityID string) error {
	cmdTag, err := p.pool.Exec(ctx, `DELETE FROM auth_users WHERE identity_id = $1;`, identityID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete identity "+identityID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (p *PgxProvider) AcceptInvite(ctx context.Context, token string, password string) (*domain.Identity, error) {
	identityID, secret, err := utils.ParseInviteToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid invitation token")
	}

	var secretHash *string
	err = p.pool.QueryRow(ctx, `SELECT invite_token_hash FROM auth_users WHERE identity_id = $1`, identityID).Scan(&secretHash)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && secretHash == nil) {
		return nil, apperrors.NewUnauthorizedError("invalid invitation token")
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read invitation", err)
	}
	if !utils.CheckPasswordHash(secret, *secretHash) {
		return nil, apperrors.NewUnauthorizedError("invalid invitation token")
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}
	_, err = p.pool.Exec(ctx, `
		UPDATE auth_users
		SET password_hash = $1, invite_token_hash = NULL, confirmed_at = COALESCE(confirmed_at, NOW())
		WHERE identity_id = $2;`, passwordHash, identityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to accept invitation", err)
	}
	return p.GetUserByID(ctx, identityID)
}

func (p *PgxProvider) VerifyPassword(ctx context.Context, email string, password string) (*domain.Identity, error) {
	ident, err := p.FindUserByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if ident.PasswordHash == nil || !utils.CheckPasswordHash(password, *ident.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}
	return ident, nil
}

func (p *PgxProvider) LinkGoogleSubject(ctx context.Context, identityID string, subject string) error {
	_, err := p.pool.Exec(ctx, `
		UPDATE auth_users
		SET google_subject = $1, invite_token_hash = NULL, confirmed_at = COALESCE(confirmed_at, NOW())
		WHERE identity_id = $2;`, subject, identityID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("this Google account is linked to another user")
		}
		return apperrors.NewAppError(500, "failed to link Google account", err)
	}
	return nil
}
