package sqlite_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/microdecide/internal/adapters/sqlite"
	"github.com/example/microdecide/internal/ports/secondary"
)

func TestEventLog_TrackAndList(t *testing.T) {
	ctx := context.Background()
	log := sqlite.NewEventLog(setupTestDB(t))

	require.NoError(t, log.Track(ctx, secondary.EventDecisionGenerated, map[string]any{"id": "email-42", "seed": 42}))
	require.NoError(t, log.Track(ctx, secondary.EventDecisionAccepted, map[string]any{"id": "email-42"}))
	require.NoError(t, log.Track(ctx, secondary.EventPaywallShown, nil))

	events, err := log.List(ctx, secondary.EventFilters{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, secondary.EventPaywallShown, events[0].Name)
	require.Equal(t, secondary.EventDecisionGenerated, events[2].Name)
	require.True(t, strings.HasPrefix(events[2].ID, "EVT-"))
	require.Equal(t, "email-42", events[2].Props["id"])
	require.EqualValues(t, 42, events[2].Props["seed"])
	require.Empty(t, events[0].Props)
}

func TestEventLog_ListFilters(t *testing.T) {
	ctx := context.Background()
	log := sqlite.NewEventLog(setupTestDB(t))
	for i := 0; i < 3; i++ {
		require.NoError(t, log.Track(ctx, secondary.EventDecisionSkipped, nil))
	}
	require.NoError(t, log.Track(ctx, secondary.EventOnboardingCompleted, nil))

	skipped, err := log.List(ctx, secondary.EventFilters{Name: secondary.EventDecisionSkipped})
	require.NoError(t, err)
	require.Len(t, skipped, 3)

	limited, err := log.List(ctx, secondary.EventFilters{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	require.Equal(t, secondary.EventOnboardingCompleted, limited[0].Name)
}

func TestEventLog_RejectsUnknownEvent(t *testing.T) {
	log := sqlite.NewEventLog(setupTestDB(t))
	require.Error(t, log.Track(context.Background(), "page_view", nil))
}
