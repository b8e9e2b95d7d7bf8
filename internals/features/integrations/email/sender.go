// file: internals/features/integrations/email/sender.go
package email

import (
	"context"
	"errors"
	"strings"

	"github.com/resend/resend-go/v2"
)

var ErrInvalidMessage = errors.New("email: message needs a sender, a recipient, a subject and a body")

type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.From) == "" || len(m.To) == 0 || strings.TrimSpace(m.Subject) == "" || strings.TrimSpace(m.HTML) == "" {
		return ErrInvalidMessage
	}
	for _, to := range m.To {
		if !strings.Contains(to, "@") {
			return ErrInvalidMessage
		}
	}
	return nil
}

// Sender delivers one message and returns the provider message id.
type Sender interface {
	Send(ctx context.Context, m Message) (string, error)
}

type ResendSender struct {
	client *resend.Client
}

func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(strings.TrimSpace(apiKey))}
}

func (s *ResendSender) Send(ctx context.Context, m Message) (string, error) {
	req := &resend.SendEmailRequest{
		From:    m.From,
		To:      m.To,
		Subject: m.Subject,
		Html:    m.HTML,
	}
	if m.ReplyTo != "" {
		req.ReplyTo = m.ReplyTo
	}
	sent, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}
