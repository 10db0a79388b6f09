package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMessageRepository struct {
	BaseRepository
}

func newPgxMessageRepository(pool *pgxpool.Pool) portsrepo.MessageRepositoryFacade {
	return &PgxMessageRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MessageRepositoryFacade = (*PgxMessageRepository)(nil)

var FULL_MESSAGE_SELECT_QUERY = `
SELECT m.message_id, m.agency_id, m.sender_id, m.recipient_id, m.subject, m.body, m.read_at, m.created_at
FROM messages m
`

func (r *PgxMessageRepository) SaveMessage(ctx context.Context, msg domain.Message) error {
	query := `
		INSERT INTO messages (message_id, agency_id, sender_id, recipient_id, subject, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db(ctx).Exec(ctx, query, msg.MessageID, msg.AgencyID, msg.SenderID, msg.RecipientID, msg.Subject, msg.Body, msg.CreatedAt)
	if err != nil {
		return mapWriteError(err, "message "+msg.MessageID)
	}
	return nil
}

func (r *PgxMessageRepository) ListMessages(ctx context.Context, userID string, box domain.Mailbox, limit int, offset int) ([]domain.Message, error) {
	limit, offset = page(limit, offset)
	column := "m.recipient_id"
	if box == domain.Outbox {
		column = "m.sender_id"
	}
	return collect[domain.Message](ctx, r.db(ctx), "messages",
		FULL_MESSAGE_SELECT_QUERY+`WHERE `+column+` = $1 ORDER BY m.created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
}

func (r *PgxMessageRepository) MarkMessageRead(ctx context.Context, messageID string, recipientID string, at time.Time) error {
	cmdTag, err := r.db(ctx).Exec(ctx,
		`UPDATE messages SET read_at = COALESCE(read_at, $1) WHERE message_id = $2 AND recipient_id = $3;`,
		at, messageID, recipientID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark message "+messageID+" as read", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("message not found")
	}
	return nil
}

func (r *PgxMessageRepository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	var count int
	err := r.db(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND read_at IS NULL`, recipientID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count unread messages", err)
	}
	return count, nil
}
