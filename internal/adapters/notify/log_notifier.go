package notify

import (
	"context"

	"github.com/example/microdecide/internal/logger"
	"github.com/example/microdecide/internal/models"
	"github.com/example/microdecide/internal/ports/secondary"
)

// LogNotifier implements secondary.Notifier by logging the request. It is
// the fallback when no process stays alive to deliver notifications.
type LogNotifier struct {
	allowed bool
	log     *logger.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(allowed bool, log *logger.Logger) *LogNotifier {
	return &LogNotifier{allowed: allowed, log: log.With("component", "notify")}
}

func (n *LogNotifier) RequestPermission(ctx context.Context) (bool, error) {
	return n.allowed, nil
}

func (n *LogNotifier) Schedule(ctx context.Context, notification models.Notification) error {
	n.log.Info("notification requested",
		"title", notification.Title,
		"body", notification.Body,
		"seconds_from_now", notification.SecondsFromNow,
		"deep_link", notification.DeepLinkPath,
	)
	return nil
}

// Ensure LogNotifier implements the interface
var _ secondary.Notifier = (*LogNotifier)(nil)
