// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/example/microdecide/internal/app"
	"github.com/example/microdecide/internal/models"
	"github.com/example/microdecide/internal/ports/primary"
)

// Services groups the ports a DecisionAdapter drives.
type Services struct {
	Decisions     primary.DecisionService
	Queue         primary.QueueService
	Counter       primary.CounterService
	Settings      primary.SettingsService
	Notifications primary.NotificationService
}

// DecisionAdapter is a thin adapter that translates CLI operations to
// service calls. It depends only on the port interfaces, enabling easy
// testing with mocks.
type DecisionAdapter struct {
	svc Services
	out io.Writer
}

// NewDecisionAdapter creates a new DecisionAdapter.
func NewDecisionAdapter(svc Services, out io.Writer) *DecisionAdapter {
	return &DecisionAdapter{svc: svc, out: out}
}

var (
	titleColor = color.New(color.Bold)
	dimColor   = color.New(color.Faint)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed)
	tagColor   = color.New(color.FgCyan)
)

// Writer returns the adapter's output.
func (a *DecisionAdapter) Writer() io.Writer {
	return a.out
}

// Next generates a decision for userID and shows it.
func (a *DecisionAdapter) Next(ctx context.Context, userID string, seed *int64) error {
	resp, err := a.svc.Decisions.Generate(ctx, primary.GenerateRequest{UserID: userID, Seed: seed})
	if err != nil {
		return a.persistHint(err)
	}

	if resp.Decision == nil {
		fmt.Fprintf(a.out, "%s %s\n", warnColor.Sprint("✗"), resp.Status.Reason)
		if !resp.Status.Entitlements.IsPremium {
			fmt.Fprintln(a.out, "  Upgrade to Premium for more decisions per day.")
		}
		return nil
	}

	a.renderDecision(*resp.Decision)
	fmt.Fprintf(a.out, "%s\n", dimColor.Sprintf("%d of %d left today (%s)",
		resp.Status.Remaining, resp.Status.Entitlements.MaxPerDay, resp.Status.Entitlements.Tier()))

	if a.svc.Notifications != nil {
		if _, err := a.svc.Notifications.ScheduleNudge(ctx); err != nil {
			fmt.Fprintf(a.out, "%s %v\n", warnColor.Sprint("!"), err)
		}
	}
	return nil
}

// Status shows the tier and today's usage.
func (a *DecisionAdapter) Status(ctx context.Context, userID string) error {
	st, err := a.svc.Decisions.Status(ctx, userID)
	if err != nil {
		return err
	}

	who := userID
	if who == "" {
		who = "anonymous"
	}
	fmt.Fprintf(a.out, "User:      %s\n", who)
	fmt.Fprintf(a.out, "Tier:      %s\n", st.Entitlements.Tier())
	fmt.Fprintf(a.out, "Today:     %s\n", st.Counts.DateKey)
	fmt.Fprintf(a.out, "Generated: %d/%d\n", st.Counts.Generated, st.Entitlements.MaxPerDay)
	if st.Allowed {
		fmt.Fprintf(a.out, "Next:      %s\n", okColor.Sprintf("available (%d left)", st.Remaining))
	} else {
		fmt.Fprintf(a.out, "Next:      %s\n", warnColor.Sprint(st.Reason))
	}

	pending := a.svc.Queue.Load(ctx)
	fmt.Fprintf(a.out, "Pending:   %d\n", len(pending.Pending))
	return nil
}

// Queue lists pending decisions, head first.
func (a *DecisionAdapter) Queue(ctx context.Context) error {
	rec := a.svc.Queue.Load(ctx)
	if len(rec.Pending) == 0 {
		fmt.Fprintln(a.out, "No pending decisions")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-22s %-12s %s\n", "ID", "PROVIDER", "TITLE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, d := range rec.Pending {
		fmt.Fprintf(a.out, "%-22s %-12s %s\n", d.ID, d.ProviderID, d.Title)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show displays the decision at the head of the queue.
func (a *DecisionAdapter) Show(ctx context.Context) (*models.Decision, error) {
	rec := a.svc.Queue.Load(ctx)
	if len(rec.Pending) == 0 {
		fmt.Fprintln(a.out, "No pending decisions. Run 'microdecide next' to generate one.")
		return nil, nil
	}
	head := rec.Pending[0]
	a.renderDecision(head)
	return &head, nil
}

// Accept accepts id, or the head of the queue when id is empty.
func (a *DecisionAdapter) Accept(ctx context.Context, id string) error {
	return a.act(ctx, id, models.ActionAccept)
}

// Skip skips id, or the head of the queue when id is empty.
func (a *DecisionAdapter) Skip(ctx context.Context, id string) error {
	return a.act(ctx, id, models.ActionSkip)
}

func (a *DecisionAdapter) act(ctx context.Context, id string, kind models.ActionKind) error {
	if id == "" {
		rec := a.svc.Queue.Load(ctx)
		if len(rec.Pending) == 0 {
			return fmt.Errorf("no pending decisions")
		}
		id = rec.Pending[0].ID
	}

	var (
		rec *models.QueueRecord
		err error
	)
	if kind == models.ActionAccept {
		rec, err = a.svc.Queue.Accept(ctx, id)
	} else {
		rec, err = a.svc.Queue.Skip(ctx, id)
	}
	if err != nil {
		return a.persistHint(err)
	}

	verb := "Accepted"
	if kind == models.ActionSkip {
		verb = "Skipped"
	}
	fmt.Fprintf(a.out, "%s %s %s\n", okColor.Sprint("✓"), verb, id)
	fmt.Fprintf(a.out, "%s\n", dimColor.Sprintf("%d pending", len(rec.Pending)))
	return nil
}

// Undo reverses the last accept or skip.
func (a *DecisionAdapter) Undo(ctx context.Context) error {
	res, err := a.svc.Queue.Undo(ctx)
	if err != nil {
		return a.persistHint(err)
	}
	if res.Restored == nil {
		fmt.Fprintln(a.out, "Nothing to undo")
		return nil
	}
	fmt.Fprintf(a.out, "%s Restored %s to the front of the queue\n", okColor.Sprint("↺"), res.Restored.ID)
	return nil
}

// History lists actioned decisions.
func (a *DecisionAdapter) History(ctx context.Context, filter string) error {
	entries, err := a.svc.Queue.History(ctx, primary.HistoryFilter(filter))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No history")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-22s %s\n", "ID", "STATUS")
	fmt.Fprintln(a.out, "────────────────────────────────")
	for _, e := range entries {
		status := okColor.Sprint("accepted")
		if e.Status == models.ActionSkip {
			status = dimColor.Sprint("skipped")
		}
		fmt.Fprintf(a.out, "%-22s %s\n", e.DecisionID, status)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Providers lists providers with their enablement.
func (a *DecisionAdapter) Providers(ctx context.Context) error {
	infos, err := a.svc.Settings.Providers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list providers: %w", err)
	}

	fmt.Fprintf(a.out, "\n%-12s %-20s %-8s %s\n", "ID", "TITLE", "TIER", "ENABLED")
	fmt.Fprintln(a.out, "──────────────────────────────────────────────────")
	for _, p := range infos {
		tier := "free"
		if p.Premium {
			tier = "premium"
		}
		enabled := errColor.Sprint("no")
		if p.Enabled {
			enabled = okColor.Sprint("yes")
		}
		fmt.Fprintf(a.out, "%-12s %-20s %-8s %s\n", p.ID, p.Title, tier, enabled)
	}
	fmt.Fprintln(a.out)
	return nil
}

// SetProvider enables or disables a provider.
func (a *DecisionAdapter) SetProvider(ctx context.Context, id string, enabled bool) error {
	ids, err := a.svc.Settings.SetProviderEnabled(ctx, models.ProviderID(id), enabled)
	if err != nil {
		return a.persistHint(err)
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Fprintf(a.out, "%s Provider %s %s (%d enabled)\n", okColor.Sprint("✓"), id, state, len(ids))
	return nil
}

// Reset clears the queue, today's counts and the provider settings.
func (a *DecisionAdapter) Reset(ctx context.Context) error {
	if err := a.svc.Queue.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset queue: %w", err)
	}
	if err := a.svc.Counter.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset counts: %w", err)
	}
	if err := a.svc.Settings.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	fmt.Fprintf(a.out, "%s All local data cleared\n", okColor.Sprint("✓"))
	return nil
}

func (a *DecisionAdapter) renderDecision(d models.Decision) {
	fmt.Fprintf(a.out, "\n%s  %s\n", titleColor.Sprint(d.Title), tagColor.Sprintf("[%s]", d.ProviderID))
	if d.Explanation != "" {
		fmt.Fprintf(a.out, "  %s\n", d.Explanation)
	}

	switch d.ProviderID {
	case models.ProviderEmailUnsub:
		if sender := d.PayloadString("sender"); sender != "" {
			fmt.Fprintf(a.out, "  From: %s (last seen %s)\n", sender, d.PayloadString("last_seen"))
		}
		for _, subject := range d.PayloadStrings("example_subjects") {
			fmt.Fprintf(a.out, "    • %s\n", subject)
		}
	case models.ProviderPhotoDupes:
		if image := d.PayloadString("image"); image != "" {
			fmt.Fprintf(a.out, "  Preview: %s\n", image)
		}
	}

	labels := make([]string, 0, len(d.Actions))
	for _, action := range d.Actions {
		labels = append(labels, fmt.Sprintf("[%s] %s", action.Kind, action.Label))
	}
	fmt.Fprintf(a.out, "  %s\n", dimColor.Sprintf("id %s  created %s", d.ID, time.UnixMilli(d.CreatedAt).Format("2006-01-02 15:04")))
	for _, l := range labels {
		fmt.Fprintf(a.out, "  %s", l)
	}
	fmt.Fprintln(a.out)
}

// persistHint adds a retry hint to write failures.
func (a *DecisionAdapter) persistHint(err error) error {
	if errors.Is(err, app.ErrPersist) {
		return fmt.Errorf("%w\nHint: your change was not saved, try again", err)
	}
	return err
}
