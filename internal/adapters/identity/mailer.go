package identity

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	"github.com/SscSPs/loandesk_backend/internal/middleware"
)

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPMailer sends plain-text mail with PLAIN auth.
type SMTPMailer struct {
	conf SMTPConfig
}

var _ portsrepo.Mailer = (*SMTPMailer)(nil)

func (m *SMTPMailer) Send(ctx context.Context, to string, subject string, body string) error {
	from := m.conf.From
	if from == "" {
		from = m.conf.Username
	}
	msg := buildMessage(from, to, subject, body)

	var auth smtp.Auth
	if m.conf.Username != "" {
		auth = smtp.PlainAuth("", m.conf.Username, m.conf.Password, m.conf.Host)
	}
	if err := smtp.SendMail(m.conf.Host+":"+m.conf.Port, auth, from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	middleware.GetLoggerFromCtx(ctx).Debug("Mail sent", slog.String("subject", subject))
	return nil
}

func buildMessage(from, to, subject, body string) string {
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}

// LogMailer writes mail to the log instead of sending it. Used when no SMTP host is configured.
type LogMailer struct{}

var _ portsrepo.Mailer = LogMailer{}

func (LogMailer) Send(ctx context.Context, to string, subject string, body string) error {
	middleware.GetLoggerFromCtx(ctx).Info("[DEV] Mail not sent, SMTP is not configured",
		slog.String("to", to), slog.String("subject", subject), slog.String("body", body))
	return nil
}

// NewMailer returns an SMTP mailer when a host is configured and a LogMailer otherwise.
func NewMailer(conf SMTPConfig) portsrepo.Mailer {
	if conf.Host == "" {
		return LogMailer{}
	}
	return &SMTPMailer{conf: conf}
}
