package app

import (
	"context"

	"github.com/example/microdecide/internal/logger"
	"github.com/example/microdecide/internal/ports/secondary"
)

// Tracker sends analytics events without letting sink failures reach the
// caller. A nil sink disables tracking.
type Tracker struct {
	sink secondary.AnalyticsSink
	log  *logger.Logger
}

// NewTracker creates a Tracker over sink.
func NewTracker(sink secondary.AnalyticsSink, log *logger.Logger) *Tracker {
	return &Tracker{sink: sink, log: log}
}

// Track records event and logs any sink error.
func (t *Tracker) Track(ctx context.Context, event secondary.EventName, props map[string]any) {
	if t == nil || t.sink == nil {
		return
	}
	if err := t.sink.Track(ctx, event, props); err != nil {
		t.log.Warn("analytics event dropped", "event", string(event), "error", err)
	}
}
