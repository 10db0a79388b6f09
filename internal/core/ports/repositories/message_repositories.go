package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
)

// MessageRepositoryFacade defines persistence for internal messages
type MessageRepositoryFacade interface {
	SaveMessage(ctx context.Context, msg domain.Message) error
	ListMessages(ctx context.Context, userID string, box domain.Mailbox, limit int, offset int) ([]domain.Message, error)

	// MarkMessageRead stamps read_at when recipientID is the recipient and the message is unread.
	MarkMessageRead(ctx context.Context, messageID string, recipientID string, at time.Time) error
	CountUnread(ctx context.Context, recipientID string) (int, error)
}
