// Package analytics contains AnalyticsSink implementations.
package analytics

import (
	"context"
	"slices"
	"sort"

	"go.uber.org/multierr"

	"github.com/example/microdecide/internal/logger"
	"github.com/example/microdecide/internal/ports/secondary"
)

// LogSink implements secondary.AnalyticsSink by logging each event.
type LogSink struct {
	log *logger.Logger
}

// NewLogSink creates a sink that writes events to log.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log.With("component", "analytics")}
}

// Track logs event with its props as fields, in key order.
func (s *LogSink) Track(ctx context.Context, event secondary.EventName, props map[string]any) error {
	if !slices.Contains(secondary.KnownEvents, event) {
		s.log.Warn("unknown analytics event", "event", string(event))
		return nil
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]interface{}, 0, 2+2*len(keys))
	kv = append(kv, "event", string(event))
	for _, k := range keys {
		kv = append(kv, k, props[k])
	}
	s.log.Info("analytics event", kv...)
	return nil
}

// Multi fans an event out to several sinks. Every sink is called even when
// an earlier one fails.
type Multi struct {
	sinks []secondary.AnalyticsSink
}

// NewMulti creates a fan-out sink. Nil sinks are skipped.
func NewMulti(sinks ...secondary.AnalyticsSink) *Multi {
	m := &Multi{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Track sends event to every sink and combines their errors.
func (m *Multi) Track(ctx context.Context, event secondary.EventName, props map[string]any) error {
	var err error
	for _, s := range m.sinks {
		err = multierr.Append(err, s.Track(ctx, event, props))
	}
	return err
}

// Ensure sinks implement the interface
var (
	_ secondary.AnalyticsSink = (*LogSink)(nil)
	_ secondary.AnalyticsSink = (*Multi)(nil)
)
