package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/example/microdecide/internal/logger"
	"github.com/example/microdecide/internal/models"
	"github.com/example/microdecide/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

var errStorage = errors.New("disk full")

// mockKV implements secondary.KeyValueStore for testing.
type mockKV struct {
	mu        sync.Mutex
	data      map[string]string
	getErr    error
	setErr    error
	removeErr error
	keyErrs   map[string]error // Set failures for single keys
	sets      int
}

func newMockKV() *mockKV {
	return &mockKV{data: make(map[string]string)}
}

func (m *mockKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mockKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	if err := m.keyErrs[key]; err != nil {
		return err
	}
	m.sets++
	m.data[key] = value
	return nil
}

func (m *mockKV) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removeErr != nil {
		return m.removeErr
	}
	delete(m.data, key)
	return nil
}

// mockEntitlementSource implements secondary.EntitlementSource for testing.
type mockEntitlementSource struct {
	mu    sync.Mutex
	ent   models.Entitlements
	err   error
	delay time.Duration
	calls int
}

func (m *mockEntitlementSource) Fetch(ctx context.Context, userID string) (models.Entitlements, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return models.Entitlements{}, ctx.Err()
		}
	}
	if m.err != nil {
		return models.Entitlements{}, m.err
	}
	return m.ent, nil
}

// mockNotifier implements secondary.Notifier for testing.
type mockNotifier struct {
	granted     bool
	permErr     error
	scheduleErr error
	scheduled   []models.Notification
}

func (m *mockNotifier) RequestPermission(ctx context.Context) (bool, error) {
	return m.granted, m.permErr
}

func (m *mockNotifier) Schedule(ctx context.Context, n models.Notification) error {
	if m.scheduleErr != nil {
		return m.scheduleErr
	}
	m.scheduled = append(m.scheduled, n)
	return nil
}

type trackedEvent struct {
	name  secondary.EventName
	props map[string]any
}

// recordingSink implements secondary.AnalyticsSink for testing.
type recordingSink struct {
	mu     sync.Mutex
	events []trackedEvent
	err    error
}

func (r *recordingSink) Track(ctx context.Context, event secondary.EventName, props map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, trackedEvent{name: event, props: props})
	return r.err
}

func (r *recordingSink) names() []secondary.EventName {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []secondary.EventName
	for _, e := range r.events {
		out = append(out, e.name)
	}
	return out
}

// ============================================================================
// Helpers
// ============================================================================

func testLogger(t *testing.T) *logger.Logger {
	return logger.FromZap(zaptest.NewLogger(t))
}

// fixedClock returns a clock pinned to 2024-03-10 09:30 local time.
func fixedClock() func() time.Time {
	at := time.Date(2024, 3, 10, 9, 30, 0, 0, time.Local)
	return func() time.Time { return at }
}

// movableClock is a clock tests can advance.
type movableClock struct{ at time.Time }

func (c *movableClock) now() time.Time { return c.at }

func decision(id string, provider models.ProviderID) models.Decision {
	return models.Decision{
		ID:         id,
		ProviderID: provider,
		Title:      "Decide " + id,
		Actions: []models.DecisionAction{
			{Kind: models.ActionAccept, Label: "Accept"},
			{Kind: models.ActionSkip, Label: "Skip"},
		},
		CreatedAt: 1,
	}
}
