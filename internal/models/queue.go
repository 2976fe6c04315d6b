package models

import "slices"

// LastAction is the single undo slot of the queue.
type LastAction struct {
	Type      ActionKind `json:"type"`
	Decision  Decision   `json:"decision"`
	Timestamp int64      `json:"timestamp"` // epoch milliseconds
}

// QueueRecord is the persisted queue aggregate. AcceptedIDs and SkippedIDs
// are ordered but treated as sets.
type QueueRecord struct {
	Pending     []Decision  `json:"pending"`
	AcceptedIDs []string    `json:"acceptedIds"`
	SkippedIDs  []string    `json:"skippedIds"`
	LastAction  *LastAction `json:"lastAction,omitempty"`
}

// NewQueueRecord returns an empty queue.
func NewQueueRecord() QueueRecord {
	return QueueRecord{
		Pending:     []Decision{},
		AcceptedIDs: []string{},
		SkippedIDs:  []string{},
	}
}

// Normalize replaces nil slices with empty ones so the record always
// encodes as arrays, never null.
func (q QueueRecord) Normalize() QueueRecord {
	if q.Pending == nil {
		q.Pending = []Decision{}
	}
	if q.AcceptedIDs == nil {
		q.AcceptedIDs = []string{}
	}
	if q.SkippedIDs == nil {
		q.SkippedIDs = []string{}
	}
	return q
}

// Clone returns a deep copy of the slices so mutations of the copy never
// alias the original.
func (q QueueRecord) Clone() QueueRecord {
	out := QueueRecord{
		Pending:     slices.Clone(q.Pending),
		AcceptedIDs: slices.Clone(q.AcceptedIDs),
		SkippedIDs:  slices.Clone(q.SkippedIDs),
	}
	if q.LastAction != nil {
		la := *q.LastAction
		out.LastAction = &la
	}
	return out.Normalize()
}

// PendingIndex returns the position of id in Pending, or -1.
func (q QueueRecord) PendingIndex(id string) int {
	return slices.IndexFunc(q.Pending, func(d Decision) bool { return d.ID == id })
}

// IsPending reports whether id is awaiting action.
func (q QueueRecord) IsPending(id string) bool {
	return q.PendingIndex(id) >= 0
}

// IsAccepted reports whether id is in the accepted history.
func (q QueueRecord) IsAccepted(id string) bool {
	return slices.Contains(q.AcceptedIDs, id)
}

// IsSkipped reports whether id is in the skipped history.
func (q QueueRecord) IsSkipped(id string) bool {
	return slices.Contains(q.SkippedIDs, id)
}

// Contains reports whether id is known in any of the three sets.
func (q QueueRecord) Contains(id string) bool {
	return q.IsPending(id) || q.IsAccepted(id) || q.IsSkipped(id)
}
