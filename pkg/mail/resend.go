package mail

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/resend/resend-go/v2"
)

type ResendSender struct {
	client *resend.Client
}

// NewResendSender returns nil for an empty key so callers can hand the
// result straight to NewDispatcher.
func NewResendSender(apiKey string) *ResendSender {
	if apiKey == "" {
		return nil
	}
	client := resend.NewCustomClient(&http.Client{Timeout: 30 * time.Second}, apiKey)
	return &ResendSender{client: client}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return sent.Id, nil
}
