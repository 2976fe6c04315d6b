package primary

import (
	"context"

	"github.com/example/microdecide/internal/models"
)

// DecisionService defines the primary port for generating decisions.
type DecisionService interface {
	// Generate runs the admission gate for userID and, when allowed,
	// generates, enqueues and counts one decision.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Status reports the gate state for userID without generating.
	Status(ctx context.Context, userID string) (*GateStatus, error)
}

// GenerateRequest contains parameters for generating a decision.
type GenerateRequest struct {
	UserID string // empty for an anonymous user
	Seed   *int64 // optional; derived from the clock when nil
}

// GenerateResponse contains the result of a generation attempt.
// Decision is nil when the gate denied generation.
type GenerateResponse struct {
	Decision *models.Decision
	Status   GateStatus
}

// GateStatus describes the admission state at the time of the check.
type GateStatus struct {
	Entitlements models.Entitlements
	Counts       models.Counts
	Allowed      bool
	Reason       string
	Remaining    int
}

// SettingsService defines the primary port for provider settings.
type SettingsService interface {
	// Providers lists every provider with its enablement.
	Providers(ctx context.Context) ([]*ProviderInfo, error)

	// EnabledProviders returns the enabled provider ids.
	EnabledProviders(ctx context.Context) []models.ProviderID

	// SetProviderEnabled toggles a provider and persists the settings.
	SetProviderEnabled(ctx context.Context, id models.ProviderID, enabled bool) ([]models.ProviderID, error)

	// Reset removes the stored settings, restoring the defaults.
	Reset(ctx context.Context) error
}

// ProviderInfo describes a provider at the port boundary.
type ProviderInfo struct {
	ID      models.ProviderID
	Title   string
	Premium bool
	Enabled bool
}

// NotificationService defines the primary port for reminder nudges.
type NotificationService interface {
	// ScheduleNudge asks for permission and schedules the next-decision
	// reminder. It reports whether a reminder was scheduled.
	ScheduleNudge(ctx context.Context) (bool, error)
}

// AccountService defines the primary port for the stub identity.
type AccountService interface {
	// SignIn derives a user id from email and records onboarding.
	SignIn(ctx context.Context, email string) (string, error)
}
