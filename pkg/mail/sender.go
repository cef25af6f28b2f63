package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

type Settings struct {
	From     string
	FromName string
	To       []string
}

// Dispatcher sends digests through a Sender. A nil sender, an empty from
// address or an empty recipient list makes Dispatch a logged no-op.
type Dispatcher struct {
	sender   Sender
	settings Settings
}

func NewDispatcher(sender Sender, settings Settings) *Dispatcher {
	return &Dispatcher{sender: sender, settings: settings}
}

func (d *Dispatcher) Configured() bool {
	return d.sender != nil && d.settings.From != "" && len(d.settings.To) > 0
}

// Dispatch reports whether the email was handed to the provider.
func (d *Dispatcher) Dispatch(ctx context.Context, subject, html string) (bool, error) {
	if !d.Configured() {
		slog.Warn("email credentials not configured, skipping send", "subject", subject)
		return false, nil
	}

	msg := Message{
		From:    FormatFrom(d.settings.FromName, d.settings.From),
		To:      d.settings.To,
		Subject: subject,
		HTML:    html,
	}

	id, err := d.sender.Send(ctx, msg)
	if err != nil {
		return false, fmt.Errorf("send digest: %w", err)
	}

	slog.Info("email sent successfully", "id", id, "recipients", len(msg.To))
	return true, nil
}

// FormatFrom builds a "Name <address>" header value.
func FormatFrom(name, address string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}
