package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/microdecide/internal/core/queue"
	"github.com/example/microdecide/internal/logger"
	"github.com/example/microdecide/internal/models"
	"github.com/example/microdecide/internal/ports/primary"
	"github.com/example/microdecide/internal/ports/secondary"
)

// QueueServiceImpl implements the QueueService interface.
//
// The mutex serializes load-mutate-store for callers sharing this instance.
// It covers the queue key only; the gate check and count increment of a
// generation are serialized by DecisionServiceImpl. Separate processes
// writing the same store are not coordinated: the last write wins.
type QueueServiceImpl struct {
	mu      sync.Mutex
	slot    stateSlot
	tracker *Tracker
	now     func() time.Time
}

// NewQueueService creates a new QueueService with injected dependencies.
// now defaults to time.Now.
func NewQueueService(store secondary.KeyValueStore, tracker *Tracker, log *logger.Logger, now func() time.Time) *QueueServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &QueueServiceImpl{
		slot:    newStateSlot(store, secondary.QueueKey, log.With("component", "queue")),
		tracker: tracker,
		now:     now,
	}
}

// Load returns the stored queue.
func (s *QueueServiceImpl) Load(ctx context.Context) *models.QueueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.loadLocked(ctx)
	return &rec
}

// Enqueue adds decisions whose ids are absent from the queue.
func (s *QueueServiceImpl) Enqueue(ctx context.Context, decisions []models.Decision) (*models.QueueRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.loadLocked(ctx)
	next, added := queue.Enqueue(rec, decisions)
	if len(added) == 0 {
		return &rec, nil
	}
	if err := s.slot.save(ctx, next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Accept moves a decision to the accepted history.
func (s *QueueServiceImpl) Accept(ctx context.Context, decisionID string) (*models.QueueRecord, error) {
	return s.act(ctx, decisionID, models.ActionAccept)
}

// Skip moves a decision to the skipped history.
func (s *QueueServiceImpl) Skip(ctx context.Context, decisionID string) (*models.QueueRecord, error) {
	return s.act(ctx, decisionID, models.ActionSkip)
}

func (s *QueueServiceImpl) act(ctx context.Context, decisionID string, kind models.ActionKind) (*models.QueueRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.loadLocked(ctx)
	props := map[string]any{"id": decisionID}
	if i := rec.PendingIndex(decisionID); i >= 0 {
		props["providerId"] = string(rec.Pending[i].ProviderID)
	}

	now := s.now().UnixMilli()
	var (
		next    models.QueueRecord
		changed bool
		event   secondary.EventName
	)
	switch kind {
	case models.ActionAccept:
		next, changed = queue.Accept(rec, decisionID, now)
		event = secondary.EventDecisionAccepted
	default:
		next, changed = queue.Skip(rec, decisionID, now)
		event = secondary.EventDecisionSkipped
	}
	if !changed {
		return &rec, nil
	}

	if err := s.slot.save(ctx, next); err != nil {
		return nil, err
	}
	s.tracker.Track(ctx, event, props)
	return &next, nil
}

// Undo reverses the most recent accept or skip.
func (s *QueueServiceImpl) Undo(ctx context.Context) (*primary.UndoResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.loadLocked(ctx)
	next, changed := queue.Undo(rec)
	if !changed {
		return &primary.UndoResult{Queue: &rec}, nil
	}

	restored := rec.LastAction.Decision
	if err := s.slot.save(ctx, next); err != nil {
		return nil, err
	}
	return &primary.UndoResult{Queue: &next, Restored: &restored}, nil
}

// History lists actioned ids, accepted first, each in action order.
func (s *QueueServiceImpl) History(ctx context.Context, filter primary.HistoryFilter) ([]*primary.HistoryEntry, error) {
	if filter == "" {
		filter = primary.HistoryAll
	}
	switch filter {
	case primary.HistoryAll, primary.HistoryAccepted, primary.HistorySkipped:
	default:
		return nil, fmt.Errorf("unknown history filter %q (want all, accepted or skipped)", filter)
	}

	rec := s.Load(ctx)
	var entries []*primary.HistoryEntry
	if filter != primary.HistorySkipped {
		for _, id := range rec.AcceptedIDs {
			entries = append(entries, &primary.HistoryEntry{DecisionID: id, Status: models.ActionAccept})
		}
	}
	if filter != primary.HistoryAccepted {
		for _, id := range rec.SkippedIDs {
			entries = append(entries, &primary.HistoryEntry{DecisionID: id, Status: models.ActionSkip})
		}
	}
	return entries, nil
}

// Reset removes the stored queue.
func (s *QueueServiceImpl) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slot.remove(ctx)
}

func (s *QueueServiceImpl) loadLocked(ctx context.Context) models.QueueRecord {
	rec := models.NewQueueRecord()
	if !s.slot.load(ctx, &rec) {
		return models.NewQueueRecord()
	}
	return rec.Normalize()
}

// Ensure QueueServiceImpl implements the interface.
var _ primary.QueueService = (*QueueServiceImpl)(nil)
