package gate

import (
	"testing"

	"github.com/example/microdecide/internal/models"
)

func TestCanGenerate(t *testing.T) {
	free := models.Entitlements{IsPremium: false, MaxPerDay: 1}
	premium := models.Entitlements{IsPremium: true, MaxPerDay: 20}

	tests := []struct {
		name        string
		ent         models.Entitlements
		counts      models.Counts
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "free tier with nothing generated",
			ent:         free,
			counts:      models.Counts{DateKey: "2026-10-14", Generated: 0},
			wantAllowed: true,
		},
		{
			name:        "free tier at cap",
			ent:         free,
			counts:      models.Counts{DateKey: "2026-10-14", Generated: 1},
			wantAllowed: false,
			wantReason:  "daily limit reached (1/1 on Free tier)",
		},
		{
			name:        "premium below cap",
			ent:         premium,
			counts:      models.Counts{DateKey: "2026-10-14", Generated: 19},
			wantAllowed: true,
		},
		{
			name:        "premium over cap",
			ent:         premium,
			counts:      models.Counts{DateKey: "2026-10-14", Generated: 21},
			wantAllowed: false,
			wantReason:  "daily limit reached (21/20 on Premium tier)",
		},
		{
			name:        "zero cap denies",
			ent:         models.Entitlements{MaxPerDay: 0},
			counts:      models.Counts{Generated: 0},
			wantAllowed: false,
			wantReason:  "daily limit reached (0/0 on Free tier)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanGenerate(tt.ent, tt.counts)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("expected Allowed=%v, got %v", tt.wantAllowed, result.Allowed)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("expected Reason=%q, got %q", tt.wantReason, result.Reason)
			}
			if (result.Error() == nil) != tt.wantAllowed {
				t.Errorf("Error() inconsistent with Allowed=%v", result.Allowed)
			}
		})
	}
}

func TestRemaining(t *testing.T) {
	ent := models.Entitlements{MaxPerDay: 3}
	if got := Remaining(ent, models.Counts{Generated: 1}); got != 2 {
		t.Errorf("expected 2 remaining, got %d", got)
	}
	if got := Remaining(ent, models.Counts{Generated: 5}); got != 0 {
		t.Errorf("expected 0 remaining, got %d", got)
	}
}
