package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/gmail/v1"
)

// Mailer delivers one formatted email. The dispatcher treats any error as
// "not sent"; it never escapes the per-job loop.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// GmailMailer sends through the Gmail API on behalf of the configured
// account. A nil inner service (credentials missing at startup) turns every
// Send into an error, which downstream records as email_sent=false.
type GmailMailer struct {
	svc *gmail.Service
}

func NewGmailMailer(svc *gmail.Service) *GmailMailer {
	return &GmailMailer{svc: svc}
}

func (m *GmailMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.svc == nil {
		return fmt.Errorf("gmail client not configured")
	}

	raw := fmt.Sprintf(
		"To: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		to, subject, htmlBody,
	)
	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	_, err := m.svc.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	return nil
}
