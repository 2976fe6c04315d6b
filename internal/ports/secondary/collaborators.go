package secondary

import (
	"context"

	"github.com/example/microdecide/internal/models"
)

// EntitlementSource defines the secondary port for tier lookup.
// Implementations may be remote and may fail or time out.
type EntitlementSource interface {
	// Fetch returns the entitlements for userID. An empty userID is an
	// anonymous user.
	Fetch(ctx context.Context, userID string) (models.Entitlements, error)
}

// Notifier defines the secondary port for local notifications.
type Notifier interface {
	// RequestPermission asks for permission to notify and reports whether
	// it was granted.
	RequestPermission(ctx context.Context) (bool, error)

	// Schedule registers a notification to fire SecondsFromNow later.
	Schedule(ctx context.Context, n models.Notification) error
}

// EventName is one of the fixed analytics events.
type EventName string

const (
	EventOnboardingCompleted  EventName = "onboarding_completed"
	EventDecisionGenerated    EventName = "decision_generated"
	EventDecisionAccepted     EventName = "decision_accepted"
	EventDecisionSkipped      EventName = "decision_skipped"
	EventPaywallShown         EventName = "paywall_shown"
	EventTrialStarted         EventName = "trial_started"
	EventDayStreakIncremented EventName = "day_streak_incremented"
)

// KnownEvents lists every valid event name.
var KnownEvents = []EventName{
	EventOnboardingCompleted,
	EventDecisionGenerated,
	EventDecisionAccepted,
	EventDecisionSkipped,
	EventPaywallShown,
	EventTrialStarted,
	EventDayStreakIncremented,
}

// AnalyticsSink defines the secondary port for fire-and-forget events.
type AnalyticsSink interface {
	// Track records an event. Errors are reported but callers are expected
	// to log and continue.
	Track(ctx context.Context, event EventName, props map[string]any) error
}

// EventRecord is one stored analytics event.
type EventRecord struct {
	ID        string
	Name      EventName
	Props     map[string]any
	CreatedAt string
}

// EventFilters selects stored events. Zero values match everything.
type EventFilters struct {
	Name  EventName
	Limit int
}

// EventLog is an AnalyticsSink whose events can be listed back.
type EventLog interface {
	AnalyticsSink

	// List returns stored events, newest first.
	List(ctx context.Context, filters EventFilters) ([]*EventRecord, error)
}
