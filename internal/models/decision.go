// Package models holds the domain records shared by the core, the services
// and the storage adapters. All of them serialize to the persisted JSON layout.
package models

// ProviderID identifies one of the fixed decision providers.
type ProviderID string

const (
	ProviderEmailUnsub ProviderID = "email_unsub"
	ProviderPhotoDupes ProviderID = "photo_dupes"
	ProviderWorkout    ProviderID = "workout"
)

// ActionKind is the kind of action a user can take on a decision.
type ActionKind string

const (
	ActionAccept ActionKind = "accept"
	ActionSkip   ActionKind = "skip"
)

// Valid reports whether k is one of the known action kinds.
func (k ActionKind) Valid() bool {
	return k == ActionAccept || k == ActionSkip
}

// DecisionAction is one button offered on a decision card.
type DecisionAction struct {
	Kind  ActionKind `json:"id"`
	Label string     `json:"label"`
}

// Payload is the provider-specific illustrative data of a decision.
// Its keys vary by provider (sender, example_subjects, image, ...).
type Payload map[string]any

// Decision is one suggested micro-action. Decisions are immutable once
// generated; queue operations copy them between slots but never edit them.
type Decision struct {
	ID          string           `json:"id"`
	ProviderID  ProviderID       `json:"providerId"`
	Title       string           `json:"title"`
	Explanation string           `json:"explanation"`
	Payload     Payload          `json:"payload"`
	Actions     []DecisionAction `json:"actions"`
	CreatedAt   int64            `json:"createdAt"` // epoch milliseconds
}

// Action returns the action of the given kind, if the decision offers it.
func (d Decision) Action(kind ActionKind) (DecisionAction, bool) {
	for _, a := range d.Actions {
		if a.Kind == kind {
			return a, true
		}
	}
	return DecisionAction{}, false
}

// PayloadString returns a string payload field, or "" when absent.
func (d Decision) PayloadString(key string) string {
	if v, ok := d.Payload[key].(string); ok {
		return v
	}
	return ""
}

// PayloadStrings returns a string list payload field. It accepts both
// []string (freshly generated) and []any (decoded from JSON).
func (d Decision) PayloadStrings(key string) []string {
	switch v := d.Payload[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
