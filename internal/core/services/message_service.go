package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/google/uuid"
)

type messageService struct {
	BaseService
	messageRepo portsrepo.MessageRepositoryFacade
	profileRepo portsrepo.ProfileReader
}

func NewMessageService(messageRepo portsrepo.MessageRepositoryFacade, profileRepo portsrepo.ProfileReader) portssvc.MessageSvcFacade {
	return &messageService{messageRepo: messageRepo, profileRepo: profileRepo}
}

var _ portssvc.MessageSvcFacade = (*messageService)(nil)

func (s *messageService) SendMessage(ctx context.Context, caller domain.Caller, req dto.SendMessageRequest) (*domain.Message, error) {
	if caller.AgencyID == nil {
		return nil, apperrors.NewForbiddenError("messages are only available inside an agency")
	}
	if req.RecipientID == caller.UserID {
		return nil, apperrors.NewValidationFailedError("cannot send a message to yourself")
	}

	recipient, err := s.profileRepo.FindProfileByID(ctx, req.RecipientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("recipient not found")
		}
		return nil, err
	}
	if recipient.AgencyID == nil || *recipient.AgencyID != *caller.AgencyID {
		return nil, apperrors.NewValidationFailedError("recipient not found")
	}

	msg := domain.Message{
		MessageID:   uuid.NewString(),
		AgencyID:    *caller.AgencyID,
		SenderID:    caller.UserID,
		RecipientID: recipient.ProfileID,
		Subject:     strings.TrimSpace(req.Subject),
		Body:        req.Body,
		CreatedAt:   s.now(),
	}
	if err := s.messageRepo.SaveMessage(ctx, msg); err != nil {
		s.LogError(ctx, err, "Failed to save message")
		return nil, err
	}
	s.LogDebug(ctx, "Message sent", slog.String("message_id", msg.MessageID))
	return &msg, nil
}

func (s *messageService) ListMessages(ctx context.Context, caller domain.Caller, params dto.ListMessagesParams) ([]domain.Message, error) {
	box := params.Box
	if box == "" {
		box = domain.Inbox
	}
	return s.messageRepo.ListMessages(ctx, caller.UserID, box, params.Limit, params.Offset)
}

func (s *messageService) MarkRead(ctx context.Context, caller domain.Caller, messageID string) error {
	return s.messageRepo.MarkMessageRead(ctx, messageID, caller.UserID, s.now())
}

func (s *messageService) UnreadCount(ctx context.Context, caller domain.Caller) (int, error) {
	return s.messageRepo.CountUnread(ctx, caller.UserID)
}
