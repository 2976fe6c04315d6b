package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/example/microdecide/internal/app"
	"github.com/example/microdecide/internal/models"
	"github.com/example/microdecide/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

// mockDecisionService implements primary.DecisionService for testing
type mockDecisionService struct {
	generateFn func(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error)
	status     primary.GateStatus
	lastReq    primary.GenerateRequest
}

func (m *mockDecisionService) Generate(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
	m.lastReq = req
	if m.generateFn != nil {
		return m.generateFn(ctx, req)
	}
	d := sampleDecision()
	return &primary.GenerateResponse{Decision: &d, Status: m.status}, nil
}

func (m *mockDecisionService) Status(ctx context.Context, userID string) (*primary.GateStatus, error) {
	st := m.status
	return &st, nil
}

// mockQueueService implements primary.QueueService for testing
type mockQueueService struct {
	rec       models.QueueRecord
	actErr    error
	undo      *primary.UndoResult
	history   []*primary.HistoryEntry
	resetErr  error
	accepted  []string
	skipped   []string
	lastQuery primary.HistoryFilter
}

func (m *mockQueueService) Load(ctx context.Context) *models.QueueRecord {
	rec := m.rec.Normalize()
	return &rec
}

func (m *mockQueueService) Enqueue(ctx context.Context, decisions []models.Decision) (*models.QueueRecord, error) {
	m.rec.Pending = append(m.rec.Pending, decisions...)
	return m.Load(ctx), nil
}

func (m *mockQueueService) Accept(ctx context.Context, id string) (*models.QueueRecord, error) {
	if m.actErr != nil {
		return nil, m.actErr
	}
	m.accepted = append(m.accepted, id)
	return m.Load(ctx), nil
}

func (m *mockQueueService) Skip(ctx context.Context, id string) (*models.QueueRecord, error) {
	if m.actErr != nil {
		return nil, m.actErr
	}
	m.skipped = append(m.skipped, id)
	return m.Load(ctx), nil
}

func (m *mockQueueService) Undo(ctx context.Context) (*primary.UndoResult, error) {
	if m.undo != nil {
		return m.undo, nil
	}
	return &primary.UndoResult{Queue: m.Load(ctx)}, nil
}

func (m *mockQueueService) History(ctx context.Context, filter primary.HistoryFilter) ([]*primary.HistoryEntry, error) {
	m.lastQuery = filter
	return m.history, nil
}

func (m *mockQueueService) Reset(ctx context.Context) error {
	return m.resetErr
}

// mockCounterService implements primary.CounterService for testing
type mockCounterService struct {
	resets int
}

func (m *mockCounterService) TodayKey() string { return "2024-03-10" }
func (m *mockCounterService) LoadCounts(ctx context.Context) models.Counts {
	return models.Counts{DateKey: "2024-03-10"}
}
func (m *mockCounterService) IncrementGenerated(ctx context.Context) (models.Counts, error) {
	return models.Counts{DateKey: "2024-03-10", Generated: 1}, nil
}
func (m *mockCounterService) Reset(ctx context.Context) error {
	m.resets++
	return nil
}

// mockSettingsService implements primary.SettingsService for testing
type mockSettingsService struct {
	infos  []*primary.ProviderInfo
	setErr error
	resets int
}

func (m *mockSettingsService) Providers(ctx context.Context) ([]*primary.ProviderInfo, error) {
	return m.infos, nil
}
func (m *mockSettingsService) EnabledProviders(ctx context.Context) []models.ProviderID {
	return nil
}
func (m *mockSettingsService) SetProviderEnabled(ctx context.Context, id models.ProviderID, enabled bool) ([]models.ProviderID, error) {
	if m.setErr != nil {
		return nil, m.setErr
	}
	return []models.ProviderID{id}, nil
}
func (m *mockSettingsService) Reset(ctx context.Context) error {
	m.resets++
	return nil
}

// mockNotificationService implements primary.NotificationService for testing
type mockNotificationService struct {
	calls int
}

func (m *mockNotificationService) ScheduleNudge(ctx context.Context) (bool, error) {
	m.calls++
	return true, nil
}

func sampleDecision() models.Decision {
	return models.Decision{
		ID:          "email-42",
		ProviderID:  models.ProviderEmailUnsub,
		Title:       "Unsubscribe from TravelNow?",
		Explanation: "Low engagement in the last 60 days",
		Payload: models.Payload{
			"sender":           "TravelNow Newsletter",
			"last_seen":        "2023-10-15",
			"example_subjects": []any{"50% Off Everything This Week", "Exclusive Offer For You"},
		},
		Actions: []models.DecisionAction{
			{Kind: models.ActionAccept, Label: "Accept"},
			{Kind: models.ActionSkip, Label: "Skip"},
		},
	}
}

type adapterFixture struct {
	decisions *mockDecisionService
	queue     *mockQueueService
	counter   *mockCounterService
	settings  *mockSettingsService
	notify    *mockNotificationService
	out       *bytes.Buffer
	adapter   *DecisionAdapter
}

func newAdapterFixture() *adapterFixture {
	f := &adapterFixture{
		decisions: &mockDecisionService{status: primary.GateStatus{
			Entitlements: models.Entitlements{MaxPerDay: 1},
			Counts:       models.Counts{DateKey: "2024-03-10", Generated: 1},
		}},
		queue:    &mockQueueService{},
		counter:  &mockCounterService{},
		settings: &mockSettingsService{},
		notify:   &mockNotificationService{},
		out:      &bytes.Buffer{},
	}
	f.adapter = NewDecisionAdapter(Services{
		Decisions:     f.decisions,
		Queue:         f.queue,
		Counter:       f.counter,
		Settings:      f.settings,
		Notifications: f.notify,
	}, f.out)
	return f
}

func TestDecisionAdapter_NextRendersDecision(t *testing.T) {
	f := newAdapterFixture()
	seed := int64(42)

	if err := f.adapter.Next(context.Background(), "user-a@example.com", &seed); err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	if f.decisions.lastReq.UserID != "user-a@example.com" || *f.decisions.lastReq.Seed != 42 {
		t.Errorf("unexpected request %+v", f.decisions.lastReq)
	}
	output := f.out.String()
	for _, want := range []string{
		"Unsubscribe from TravelNow?",
		"[email_unsub]",
		"From: TravelNow Newsletter (last seen 2023-10-15)",
		"• Exclusive Offer For You",
		"[accept] Accept",
		"[skip] Skip",
		"0 of 1 left today (Free)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
	if f.notify.calls != 1 {
		t.Errorf("expected a nudge to be scheduled, got %d", f.notify.calls)
	}
}

func TestDecisionAdapter_NextDenied(t *testing.T) {
	f := newAdapterFixture()
	f.decisions.generateFn = func(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
		return &primary.GenerateResponse{Status: primary.GateStatus{
			Entitlements: models.Entitlements{MaxPerDay: 1},
			Reason:       "daily limit reached (1/1 on Free tier)",
		}}, nil
	}

	if err := f.adapter.Next(context.Background(), "", nil); err != nil {
		t.Fatalf("denial should not be an error: %v", err)
	}
	output := f.out.String()
	if !strings.Contains(output, "daily limit reached (1/1 on Free tier)") || !strings.Contains(output, "Upgrade to Premium") {
		t.Errorf("unexpected output:\n%s", output)
	}
	if f.notify.calls != 0 {
		t.Error("no nudge should be scheduled on denial")
	}
}

func TestDecisionAdapter_NextPersistFailure(t *testing.T) {
	f := newAdapterFixture()
	f.decisions.generateFn = func(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
		return nil, fmt.Errorf("failed to enqueue decision: %w", app.ErrPersist)
	}

	err := f.adapter.Next(context.Background(), "", nil)
	if !errors.Is(err, app.ErrPersist) || !strings.Contains(err.Error(), "try again") {
		t.Errorf("expected persist hint, got %v", err)
	}
}

func TestDecisionAdapter_AcceptDefaultsToHead(t *testing.T) {
	f := newAdapterFixture()
	f.queue.rec.Pending = []models.Decision{sampleDecision(), {ID: "photo-2"}}

	if err := f.adapter.Accept(context.Background(), ""); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if len(f.queue.accepted) != 1 || f.queue.accepted[0] != "email-42" {
		t.Errorf("expected head accepted, got %v", f.queue.accepted)
	}
	if !strings.Contains(f.out.String(), "✓ Accepted email-42") {
		t.Errorf("unexpected output: %s", f.out.String())
	}

	if err := f.adapter.Skip(context.Background(), "photo-2"); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	if len(f.queue.skipped) != 1 || f.queue.skipped[0] != "photo-2" {
		t.Errorf("expected photo-2 skipped, got %v", f.queue.skipped)
	}
}

func TestDecisionAdapter_AcceptEmptyQueue(t *testing.T) {
	f := newAdapterFixture()
	if err := f.adapter.Accept(context.Background(), ""); err == nil {
		t.Error("expected error on empty queue")
	}
}

func TestDecisionAdapter_Undo(t *testing.T) {
	f := newAdapterFixture()
	if err := f.adapter.Undo(context.Background()); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !strings.Contains(f.out.String(), "Nothing to undo") {
		t.Errorf("unexpected output: %s", f.out.String())
	}

	d := sampleDecision()
	f.queue.undo = &primary.UndoResult{Queue: &models.QueueRecord{}, Restored: &d}
	f.out.Reset()
	if err := f.adapter.Undo(context.Background()); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !strings.Contains(f.out.String(), "Restored email-42") {
		t.Errorf("unexpected output: %s", f.out.String())
	}
}

func TestDecisionAdapter_QueueAndHistory(t *testing.T) {
	f := newAdapterFixture()
	ctx := context.Background()

	if err := f.adapter.Queue(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(f.out.String(), "No pending decisions") {
		t.Errorf("unexpected output: %s", f.out.String())
	}

	f.queue.rec.Pending = []models.Decision{sampleDecision()}
	f.queue.history = []*primary.HistoryEntry{
		{DecisionID: "photo-2", Status: models.ActionAccept},
		{DecisionID: "workout-9", Status: models.ActionSkip},
	}
	f.out.Reset()
	if err := f.adapter.Queue(ctx); err != nil {
		t.Fatal(err)
	}
	if err := f.adapter.History(ctx, "accepted"); err != nil {
		t.Fatal(err)
	}
	output := f.out.String()
	for _, want := range []string{"email-42", "photo-2", "accepted", "workout-9", "skipped"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if f.queue.lastQuery != primary.HistoryAccepted {
		t.Errorf("expected accepted filter, got %s", f.queue.lastQuery)
	}
}

func TestDecisionAdapter_Status(t *testing.T) {
	f := newAdapterFixture()
	f.decisions.status.Reason = "daily limit reached (1/1 on Free tier)"

	if err := f.adapter.Status(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	output := f.out.String()
	for _, want := range []string{"anonymous", "Free", "2024-03-10", "1/1", "daily limit reached", "Pending:   0"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestDecisionAdapter_Providers(t *testing.T) {
	f := newAdapterFixture()
	f.settings.infos = []*primary.ProviderInfo{
		{ID: models.ProviderEmailUnsub, Title: "Email Unsubscribe", Enabled: true},
		{ID: models.ProviderWorkout, Title: "5-Min Workout", Premium: true},
	}
	ctx := context.Background()

	if err := f.adapter.Providers(ctx); err != nil {
		t.Fatal(err)
	}
	if err := f.adapter.SetProvider(ctx, "workout", true); err != nil {
		t.Fatal(err)
	}
	output := f.out.String()
	for _, want := range []string{"Email Unsubscribe", "premium", "yes", "no", "Provider workout enabled"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}

	f.settings.setErr = errors.New(`unknown provider "tax"`)
	if err := f.adapter.SetProvider(ctx, "tax", true); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestDecisionAdapter_Reset(t *testing.T) {
	f := newAdapterFixture()
	if err := f.adapter.Reset(context.Background()); err != nil {
		t.Fatal(err)
	}
	if f.counter.resets != 1 || f.settings.resets != 1 {
		t.Errorf("expected counts and settings reset, got %d %d", f.counter.resets, f.settings.resets)
	}

	f.queue.resetErr = errors.New("locked")
	if err := f.adapter.Reset(context.Background()); err == nil {
		t.Error("expected queue reset error")
	}
}
