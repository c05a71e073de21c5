// Package notify delivers user notifications.
package notify

import (
	"context"
	"log/slog"

	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ResetNotifier = (*LogNotifier)(nil)

// LogNotifier writes reset links to the structured log instead of sending mail.
// Suitable for development and for deployments that scrape the log.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier; a nil logger uses slog.Default()
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// SendPasswordReset logs the link for the given address
func (n *LogNotifier) SendPasswordReset(ctx context.Context, email, link string) error {
	n.logger.InfoContext(ctx, "password reset requested", "email", email, "link", link)
	return nil
}
