package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/microdecide/internal/ports/secondary"
	"github.com/example/microdecide/internal/wire"
)

// EventsCmd returns the events command
func EventsCmd() *cobra.Command {
	var (
		name  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recorded analytics events (sqlite storage only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := wire.Default()
			if c.Events == nil {
				return fmt.Errorf("analytics events are only stored with the sqlite backend")
			}

			events, err := c.Events.List(context.Background(), secondary.EventFilters{
				Name:  secondary.EventName(name),
				Limit: limit,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No events found")
				return nil
			}
			for _, e := range events {
				fmt.Fprintf(out, "%s  %-24s %s\n", e.CreatedAt, e.Name, formatProps(e.Props))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Only show events with this name")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events")
	return cmd
}

func formatProps(props map[string]any) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, props[k]))
	}
	return strings.Join(parts, " ")
}
