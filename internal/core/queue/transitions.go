// Package queue contains the pure state machine of the decision queue.
//
// Every decision id is in exactly one of four states: absent, pending,
// accepted or skipped. Transitions never mutate their input record; they
// return a new record and whether anything changed. Persistence is the
// caller's job.
package queue

import (
	"fmt"
	"slices"

	"github.com/example/microdecide/internal/models"
)

// Enqueue appends decisions whose ids are absent from the queue, preserving
// order. Ids already pending, accepted or skipped are dropped, as are
// repeats within the batch. It returns the decisions actually added.
func Enqueue(rec models.QueueRecord, decisions []models.Decision) (models.QueueRecord, []models.Decision) {
	next := rec.Clone()
	var added []models.Decision
	for _, d := range decisions {
		if next.Contains(d.ID) {
			continue
		}
		next.Pending = append(next.Pending, d)
		added = append(added, d)
	}
	if len(added) == 0 {
		return rec, nil
	}
	return next, added
}

// Accept moves id to the accepted history. See act.
func Accept(rec models.QueueRecord, id string, now int64) (models.QueueRecord, bool) {
	return act(rec, id, models.ActionAccept, now)
}

// Skip moves id to the skipped history. See act.
func Skip(rec models.QueueRecord, id string, now int64) (models.QueueRecord, bool) {
	return act(rec, id, models.ActionSkip, now)
}

// act records kind for id.
//
// Already in the target history: no-op, the record is returned unchanged.
// Pending: removed from pending, appended to the history and captured in
// LastAction. Not pending: appended to the history and removed from the
// opposite one; LastAction is left as it was since there is no decision
// payload to restore.
func act(rec models.QueueRecord, id string, kind models.ActionKind, now int64) (models.QueueRecord, bool) {
	if inHistory(rec, kind, id) {
		return rec, false
	}

	next := rec.Clone()
	idx := next.PendingIndex(id)
	var decision models.Decision
	found := idx >= 0
	if found {
		decision = next.Pending[idx]
		next.Pending = slices.Delete(next.Pending, idx, idx+1)
	}

	switch kind {
	case models.ActionAccept:
		next.SkippedIDs = removeID(next.SkippedIDs, id)
		next.AcceptedIDs = append(next.AcceptedIDs, id)
	case models.ActionSkip:
		next.AcceptedIDs = removeID(next.AcceptedIDs, id)
		next.SkippedIDs = append(next.SkippedIDs, id)
	}

	if found {
		next.LastAction = &models.LastAction{
			Type:      kind,
			Decision:  decision,
			Timestamp: now,
		}
	}
	return next, true
}

// Undo reverses the action held in LastAction: the decision returns to the
// front of pending, leaves both histories, and the slot is cleared. With
// no LastAction it is a no-op. Undo is single level; a second call after a
// successful one is a no-op.
func Undo(rec models.QueueRecord) (models.QueueRecord, bool) {
	if rec.LastAction == nil {
		return rec, false
	}

	next := rec.Clone()
	decision := next.LastAction.Decision
	next.AcceptedIDs = removeID(next.AcceptedIDs, decision.ID)
	next.SkippedIDs = removeID(next.SkippedIDs, decision.ID)
	if !next.IsPending(decision.ID) {
		next.Pending = append([]models.Decision{decision}, next.Pending...)
	}
	next.LastAction = nil
	return next, true
}

// CheckPartition verifies that no id appears twice across pending,
// accepted and skipped.
func CheckPartition(rec models.QueueRecord) error {
	seen := make(map[string]string)
	mark := func(id, set string) error {
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("decision %s is in both %s and %s", id, prev, set)
		}
		seen[id] = set
		return nil
	}
	for _, d := range rec.Pending {
		if err := mark(d.ID, "pending"); err != nil {
			return err
		}
	}
	for _, id := range rec.AcceptedIDs {
		if err := mark(id, "accepted"); err != nil {
			return err
		}
	}
	for _, id := range rec.SkippedIDs {
		if err := mark(id, "skipped"); err != nil {
			return err
		}
	}
	return nil
}

func inHistory(rec models.QueueRecord, kind models.ActionKind, id string) bool {
	if kind == models.ActionAccept {
		return rec.IsAccepted(id)
	}
	return rec.IsSkipped(id)
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(s string) bool { return s == id })
}
