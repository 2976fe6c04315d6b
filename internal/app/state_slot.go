// Package app contains the application services: each one loads its stored
// state, applies a pure core transition and persists the result.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/microdecide/internal/logger"
	"github.com/example/microdecide/internal/ports/secondary"
)

// ErrPersist marks a failed write. The in-memory result of the operation
// is not durable and callers may retry.
var ErrPersist = errors.New("failed to persist state")

// stateSlot is one JSON blob owned by a service under a single storage key.
type stateSlot struct {
	store secondary.KeyValueStore
	key   string
	log   *logger.Logger
}

func newStateSlot(store secondary.KeyValueStore, key string, log *logger.Logger) stateSlot {
	return stateSlot{store: store, key: key, log: log}
}

// load decodes the stored blob into v and reports whether it did. Read
// errors and malformed JSON are logged and reported as absent.
func (s stateSlot) load(ctx context.Context, v any) bool {
	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("storage read failed, using default", "key", s.key, "error", err)
		return false
	}
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.log.Warn("stored state is malformed, using default", "key", s.key, "error", err)
		return false
	}
	return true
}

// save encodes v and writes it as the whole blob.
func (s stateSlot) save(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrPersist, s.key, err)
	}
	if err := s.store.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrPersist, s.key, err)
	}
	return nil
}

func (s stateSlot) remove(ctx context.Context) error {
	if err := s.store.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("%w: remove %s: %w", ErrPersist, s.key, err)
	}
	return nil
}
