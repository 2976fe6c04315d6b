// Package notify contains local notification adapters.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	rcron "github.com/robfig/cron/v3"

	"github.com/example/microdecide/internal/logger"
	"github.com/example/microdecide/internal/models"
	"github.com/example/microdecide/internal/ports/secondary"
)

// DeliverFunc shows a notification to the user.
type DeliverFunc func(n models.Notification)

// once is a cron schedule that fires a single time at at.
type once struct {
	at time.Time
}

func (o once) Next(t time.Time) time.Time {
	if t.Before(o.at) {
		return o.at
	}
	// The zero time tells the runner the entry never fires again.
	return time.Time{}
}

// Scheduler implements secondary.Notifier on a cron runner. Each scheduled
// notification is a one-shot entry removed after it fires. Notifications
// only fire while the scheduler is running.
type Scheduler struct {
	mu      sync.Mutex
	cron    *rcron.Cron
	deliver DeliverFunc
	allowed bool
	pending map[rcron.EntryID]models.Notification
	now     func() time.Time
	log     *logger.Logger
}

// NewScheduler creates a scheduler that hands due notifications to deliver.
// allowed is the answer given to permission requests.
func NewScheduler(deliver DeliverFunc, allowed bool, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:    rcron.New(),
		deliver: deliver,
		allowed: allowed,
		pending: make(map[rcron.EntryID]models.Notification),
		now:     time.Now,
		log:     log.With("component", "notify"),
	}
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running deliveries, up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		s.log.Warn("stop timeout waiting for notification delivery")
	}
}

// RequestPermission reports whether notifications are allowed.
func (s *Scheduler) RequestPermission(ctx context.Context) (bool, error) {
	return s.allowed, nil
}

// Schedule registers n to fire SecondsFromNow later. A zero delay
// delivers immediately.
func (s *Scheduler) Schedule(ctx context.Context, n models.Notification) error {
	if !s.allowed {
		return fmt.Errorf("notifications are not permitted")
	}
	if n.SecondsFromNow < 0 {
		return fmt.Errorf("invalid notification delay %ds", n.SecondsFromNow)
	}
	if n.SecondsFromNow == 0 {
		s.deliver(n)
		return nil
	}

	at := s.now().Add(time.Duration(n.SecondsFromNow) * time.Second)

	s.mu.Lock()
	defer s.mu.Unlock()

	var id rcron.EntryID
	id = s.cron.Schedule(once{at: at}, rcron.FuncJob(func() {
		s.fire(&id)
	}))
	s.pending[id] = n
	s.log.Debug("notification scheduled", "entry", int(id), "at", at.Format(time.RFC3339))
	return nil
}

// Pending returns the notifications that have not fired yet.
func (s *Scheduler) Pending() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, 0, len(s.pending))
	for _, n := range s.pending {
		out = append(out, n)
	}
	return out
}

// fire reads id under the lock so it sees the value Schedule assigned.
func (s *Scheduler) fire(entry *rcron.EntryID) {
	s.mu.Lock()
	id := *entry
	n, ok := s.pending[id]
	delete(s.pending, id)
	s.mu.Unlock()
	if !ok {
		return
	}

	s.cron.Remove(id)
	s.deliver(n)
}

// Ensure Scheduler implements the interface
var _ secondary.Notifier = (*Scheduler)(nil)
