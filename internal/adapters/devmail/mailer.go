package devmail

// Package devmail provides a log-only Mailer for local development. Messages
// are written to the structured log instead of being delivered, so MFA codes
// and reset links stay visible without an SMTP relay.

import (
	"context"
	"log/slog"

	"github.com/campushub/intranet-api/internal/ports"
)

// Mailer implements ports.Mailer by logging each message.
type Mailer struct {
	logger *slog.Logger
}

// NewMailer constructs a dev mailer. A nil logger falls back to slog.Default.
func NewMailer(logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{logger: logger.With("component", "devmail")}
}

func (m *Mailer) Send(ctx context.Context, msg ports.Message) error {
	m.logger.InfoContext(ctx, "mail (not delivered)",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
