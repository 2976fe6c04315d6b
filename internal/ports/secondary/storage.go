// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// Storage keys owned by the application. Each key holds one JSON blob that
// is read-modify-written as a whole.
const (
	QueueKey    = "microdecide.queue.v1"
	CountsKey   = "microdecide.counts.v1"
	SettingsKey = "microdecide.settings.v1"
)

// KeyValueStore defines the secondary port for string blob persistence.
// The store offers no transactions; callers own read-modify-write.
type KeyValueStore interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
