package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/microdecide/internal/core/gate"
	"github.com/example/microdecide/internal/core/provider"
	"github.com/example/microdecide/internal/logger"
	"github.com/example/microdecide/internal/models"
	"github.com/example/microdecide/internal/ports/primary"
	"github.com/example/microdecide/internal/ports/secondary"
)

// seedModulus bounds clock-derived seeds.
const seedModulus = 100000

// DecisionServiceImpl implements the DecisionService interface by
// orchestrating the entitlement, counter, settings and queue services.
//
// Generate holds mu from the gate check through the count increment, so
// callers sharing this instance cannot both pass the same remaining quota.
type DecisionServiceImpl struct {
	mu           sync.Mutex
	registry     *provider.Registry
	entitlements primary.EntitlementService
	counter      primary.CounterService
	settings     primary.SettingsService
	queue        primary.QueueService
	tracker      *Tracker
	log          *logger.Logger
	now          func() time.Time
	suffix       func() string
}

// NewDecisionService creates a new DecisionService with injected dependencies.
func NewDecisionService(
	registry *provider.Registry,
	entitlements primary.EntitlementService,
	counter primary.CounterService,
	settings primary.SettingsService,
	queue primary.QueueService,
	tracker *Tracker,
	log *logger.Logger,
	now func() time.Time,
) *DecisionServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &DecisionServiceImpl{
		registry:     registry,
		entitlements: entitlements,
		counter:      counter,
		settings:     settings,
		queue:        queue,
		tracker:      tracker,
		log:          log.With("component", "decision"),
		now:          now,
		suffix:       func() string { return uuid.NewString()[:8] },
	}
}

// Status reports the gate state for userID.
func (s *DecisionServiceImpl) Status(ctx context.Context, userID string) (*primary.GateStatus, error) {
	ent := s.entitlements.FetchEntitlements(ctx, userID)
	counts := s.counter.LoadCounts(ctx)
	result := gate.CanGenerate(ent, counts)
	return &primary.GateStatus{
		Entitlements: ent,
		Counts:       counts,
		Allowed:      result.Allowed,
		Reason:       result.Reason,
		Remaining:    gate.Remaining(ent, counts),
	}, nil
}

// Generate admits, counts, generates and enqueues one decision. The
// generation is counted before the decision is enqueued: a failed count
// leaves the queue untouched, and a failed enqueue still uses the quota.
func (s *DecisionServiceImpl) Generate(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.Status(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !status.Allowed {
		s.tracker.Track(ctx, secondary.EventPaywallShown, map[string]any{
			"tier":      status.Entitlements.Tier(),
			"generated": status.Counts.Generated,
			"maxPerDay": status.Entitlements.MaxPerDay,
		})
		return &primary.GenerateResponse{Status: *status}, nil
	}

	seed := s.now().UnixMilli() % seedModulus
	if req.Seed != nil {
		seed = *req.Seed
	}

	enabled := s.settings.EnabledProviders(ctx)
	decision, err := s.registry.PickNextDecision(seed, enabled, status.Entitlements.IsPremium)
	if err != nil {
		return nil, fmt.Errorf("failed to pick decision: %w", err)
	}

	current := s.queue.Load(ctx)
	if current.Contains(decision.ID) {
		rekeyed := fmt.Sprintf("%s-%s", decision.ID, s.suffix())
		s.log.Debug("decision id already known, re-keying", "decision_id", decision.ID, "new_id", rekeyed)
		decision.ID = rekeyed
	}

	counts, err := s.counter.IncrementGenerated(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to record generation: %w", err)
	}

	if _, err := s.queue.Enqueue(ctx, []models.Decision{decision}); err != nil {
		return nil, fmt.Errorf("failed to enqueue decision: %w", err)
	}

	s.tracker.Track(ctx, secondary.EventDecisionGenerated, map[string]any{
		"id":         decision.ID,
		"providerId": string(decision.ProviderID),
		"seed":       seed,
	})
	s.log.Info("decision generated", "user_id", req.UserID, "decision_id", decision.ID, "seed", seed)

	status.Counts = counts
	status.Remaining = gate.Remaining(status.Entitlements, counts)
	status.Allowed = gate.CanGenerate(status.Entitlements, counts).Allowed
	return &primary.GenerateResponse{Decision: &decision, Status: *status}, nil
}

// Ensure DecisionServiceImpl implements the interface.
var _ primary.DecisionService = (*DecisionServiceImpl)(nil)
