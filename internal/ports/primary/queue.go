// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces the CLI and other callers use to drive the core.
package primary

import (
	"context"

	"github.com/example/microdecide/internal/models"
)

// QueueService defines the primary port for queue operations.
// Every mutating call loads the stored queue, applies one transition and
// persists the full result before returning. A write failure returns an
// error and a nil record.
type QueueService interface {
	// Load returns the stored queue, or an empty one when nothing usable is
	// stored. It never fails.
	Load(ctx context.Context) *models.QueueRecord

	// Enqueue adds decisions whose ids are not yet known to the queue.
	Enqueue(ctx context.Context, decisions []models.Decision) (*models.QueueRecord, error)

	// Accept moves a decision to the accepted history.
	Accept(ctx context.Context, decisionID string) (*models.QueueRecord, error)

	// Skip moves a decision to the skipped history.
	Skip(ctx context.Context, decisionID string) (*models.QueueRecord, error)

	// Undo reverses the most recent accept or skip, once.
	Undo(ctx context.Context) (*UndoResult, error)

	// History lists actioned decision ids.
	History(ctx context.Context, filter HistoryFilter) ([]*HistoryEntry, error)

	// Reset removes the stored queue.
	Reset(ctx context.Context) error
}

// UndoResult contains the outcome of an undo.
type UndoResult struct {
	Queue    *models.QueueRecord
	Restored *models.Decision // nil when there was nothing to undo
}

// HistoryFilter selects which history entries to list.
type HistoryFilter string

const (
	HistoryAll      HistoryFilter = "all"
	HistoryAccepted HistoryFilter = "accepted"
	HistorySkipped  HistoryFilter = "skipped"
)

// HistoryEntry is one actioned decision id.
type HistoryEntry struct {
	DecisionID string
	Status     models.ActionKind
}
