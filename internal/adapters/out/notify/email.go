package notify

import (
	"context"
	"log/slog"
)

// LogEmailSender writes email copies to the structured log instead of an
// SMTP relay. Useful in development and as a default when no mail
// transport is configured.
type LogEmailSender struct {
	logger *slog.Logger
}

// NewLogEmailSender creates a sender logging through the given logger.
func NewLogEmailSender(logger *slog.Logger) *LogEmailSender {
	return &LogEmailSender{logger: logger.With("component", "email")}
}

// Send records the message in the log.
func (s *LogEmailSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.InfoContext(ctx, "email copy",
		"to", to,
		"subject", subject,
		"body", body,
	)
	return nil
}
