// Package gate contains the admission check for generating new decisions.
// Guards are pure functions that evaluate preconditions without side effects.
package gate

import (
	"fmt"

	"github.com/example/microdecide/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CanGenerate evaluates whether another decision may be generated today.
// Rules:
// - Generated count must be below the tier's daily cap
//
// Callers must pass freshly loaded entitlements and counts.
func CanGenerate(ent models.Entitlements, counts models.Counts) GuardResult {
	if counts.Generated >= ent.MaxPerDay {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("daily limit reached (%d/%d on %s tier)", counts.Generated, ent.MaxPerDay, ent.Tier()),
		}
	}

	return GuardResult{Allowed: true}
}

// Remaining returns how many generations are left today, never negative.
func Remaining(ent models.Entitlements, counts models.Counts) int {
	if left := ent.MaxPerDay - counts.Generated; left > 0 {
		return left
	}
	return 0
}
