package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/microdecide/internal/logger"
	"github.com/example/microdecide/internal/models"
	"github.com/example/microdecide/internal/ports/primary"
	"github.com/example/microdecide/internal/ports/secondary"
)

// NotificationServiceImpl implements the NotificationService interface.
type NotificationServiceImpl struct {
	notifier   secondary.Notifier
	nudgeAfter time.Duration
	log        *logger.Logger
}

// NewNotificationService creates a new NotificationService that nudges
// nudgeAfter from now.
func NewNotificationService(notifier secondary.Notifier, nudgeAfter time.Duration, log *logger.Logger) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		notifier:   notifier,
		nudgeAfter: nudgeAfter,
		log:        log.With("component", "notification"),
	}
}

// NudgeNotification builds the next-decision reminder.
func NudgeNotification(after time.Duration) models.Notification {
	return models.Notification{
		Title:          "MicroDecide",
		Body:           "Generate your next decision",
		SecondsFromNow: int(after / time.Second),
		DeepLinkPath:   "/",
	}
}

// ScheduleNudge requests permission and schedules the reminder.
func (s *NotificationServiceImpl) ScheduleNudge(ctx context.Context) (bool, error) {
	if s.notifier == nil {
		return false, nil
	}

	granted, err := s.notifier.RequestPermission(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to request notification permission: %w", err)
	}
	if !granted {
		s.log.Debug("notification permission denied")
		return false, nil
	}

	n := NudgeNotification(s.nudgeAfter)
	if err := s.notifier.Schedule(ctx, n); err != nil {
		return false, fmt.Errorf("failed to schedule nudge: %w", err)
	}
	s.log.Debug("nudge scheduled", "seconds_from_now", n.SecondsFromNow)
	return true, nil
}

// Ensure NotificationServiceImpl implements the interface.
var _ primary.NotificationService = (*NotificationServiceImpl)(nil)
