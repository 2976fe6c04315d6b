package primary

import (
	"context"

	"github.com/example/microdecide/internal/models"
)

// CounterService defines the primary port for the daily generation counter.
type CounterService interface {
	// TodayKey returns the local calendar day as YYYY-MM-DD.
	TodayKey() string

	// LoadCounts returns today's counts. Missing, stale or corrupt data
	// yields a zero count for today. It never fails.
	LoadCounts(ctx context.Context) models.Counts

	// IncrementGenerated records one more generation today and persists it.
	IncrementGenerated(ctx context.Context) (models.Counts, error)

	// Reset removes the stored counts.
	Reset(ctx context.Context) error
}

// EntitlementService defines the primary port for tier resolution.
type EntitlementService interface {
	// FetchEntitlements resolves userID's tier. Lookup failures fall back
	// to the free tier; the call never fails.
	FetchEntitlements(ctx context.Context, userID string) models.Entitlements
}
