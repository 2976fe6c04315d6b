package app

import (
	"context"
	"sync"
	"time"

	"github.com/example/microdecide/internal/core/counter"
	"github.com/example/microdecide/internal/logger"
	"github.com/example/microdecide/internal/models"
	"github.com/example/microdecide/internal/ports/primary"
	"github.com/example/microdecide/internal/ports/secondary"
)

// CounterServiceImpl implements the CounterService interface.
type CounterServiceImpl struct {
	mu   sync.Mutex
	slot stateSlot
	now  func() time.Time
}

// NewCounterService creates a new CounterService. Day boundaries follow the
// local time zone of the clock's values.
func NewCounterService(store secondary.KeyValueStore, log *logger.Logger, now func() time.Time) *CounterServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &CounterServiceImpl{
		slot: newStateSlot(store, secondary.CountsKey, log.With("component", "counter")),
		now:  now,
	}
}

// TodayKey returns the current local day as YYYY-MM-DD.
func (s *CounterServiceImpl) TodayKey() string {
	return counter.DayKey(s.now())
}

// LoadCounts returns today's counts.
func (s *CounterServiceImpl) LoadCounts(ctx context.Context) models.Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, s.TodayKey())
}

// IncrementGenerated adds one generation to today's count.
func (s *CounterServiceImpl) IncrementGenerated(ctx context.Context) (models.Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.TodayKey()
	next := counter.Increment(s.loadLocked(ctx, today), today)
	if err := s.slot.save(ctx, next); err != nil {
		return models.Counts{}, err
	}
	return next, nil
}

// Reset removes the stored counts.
func (s *CounterServiceImpl) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slot.remove(ctx)
}

func (s *CounterServiceImpl) loadLocked(ctx context.Context, today string) models.Counts {
	var c models.Counts
	if !s.slot.load(ctx, &c) {
		return counter.Fresh(today)
	}
	return counter.Rollover(c, today)
}

// Ensure CounterServiceImpl implements the interface.
var _ primary.CounterService = (*CounterServiceImpl)(nil)
