package domain

import "time"

// Message is an internal note sent between members of the same agency.
type Message struct {
	MessageID   string     `json:"messageID" db:"message_id"`
	AgencyID    string     `json:"agencyID" db:"agency_id"`
	SenderID    string     `json:"senderID" db:"sender_id"`
	RecipientID string     `json:"recipientID" db:"recipient_id"`
	Subject     string     `json:"subject" db:"subject"`
	Body        string     `json:"body" db:"body"`
	ReadAt      *time.Time `json:"readAt,omitempty" db:"read_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// IsRead reports whether the recipient opened the message.
func (m Message) IsRead() bool {
	return m.ReadAt != nil
}

// Mailbox selects which side of a conversation to list.
type Mailbox string

const (
	Inbox  Mailbox = "inbox"
	Outbox Mailbox = "outbox"
)
