package dto

import "github.com/SscSPs/loandesk_backend/internal/core/domain"

// SendMessageRequest sends an internal message to a member of the caller's agency.
type SendMessageRequest struct {
	RecipientID string `json:"recipientID" binding:"required,uuid"`
	Subject     string `json:"subject" binding:"required,max=200"`
	Body        string `json:"body" binding:"required"`
}

// ListMessagesParams defines query parameters for listing messages.
type ListMessagesParams struct {
	Box    domain.Mailbox `form:"box,default=inbox" binding:"oneof=inbox outbox"`
	Limit  int            `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int            `form:"offset,default=0" binding:"min=0"`
}

// ListMessagesResponse wraps the list of messages.
type ListMessagesResponse struct {
	Messages []domain.Message `json:"messages"`
}

// UnreadCountResponse is the number of unread messages of the caller.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}
