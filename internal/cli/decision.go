package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/microdecide/internal/wire"
)

// NextCmd returns the next command
func NextCmd() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Generate the next decision",
		Long: `Generate one decision and add it to the queue, subject to the daily
limit of your tier (Free: 1 per day, Premium: 20 per day by default).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := wire.Default()
			var seedPtr *int64
			if cmd.Flags().Changed("seed") {
				seedPtr = &seed
			}
			return c.DecisionAdapter(cmd.OutOrStdout()).Next(context.Background(), c.Config.UserID, seedPtr)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for reproducible generation")
	return cmd
}

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tier and today's usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := wire.Default()
			return c.DecisionAdapter(cmd.OutOrStdout()).Status(context.Background(), c.Config.UserID)
		},
	}
}

// QueueCmd returns the queue command
func QueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "List pending decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.Default().DecisionAdapter(cmd.OutOrStdout()).Queue(context.Background())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the decision at the head of the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.Default().DecisionAdapter(cmd.OutOrStdout()).Show(context.Background())
			return err
		},
	})
	return cmd
}

// AcceptCmd returns the accept command
func AcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept [decision-id]",
		Short: "Accept a decision (defaults to the head of the queue)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.Default().DecisionAdapter(cmd.OutOrStdout()).Accept(context.Background(), firstArg(args))
		},
	}
}

// SkipCmd returns the skip command
func SkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip [decision-id]",
		Short: "Skip a decision (defaults to the head of the queue)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.Default().DecisionAdapter(cmd.OutOrStdout()).Skip(context.Background(), firstArg(args))
		},
	}
}

// UndoCmd returns the undo command
func UndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the last accept or skip",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.Default().DecisionAdapter(cmd.OutOrStdout()).Undo(context.Background())
		},
	}
}

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List accepted and skipped decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.Default().DecisionAdapter(cmd.OutOrStdout()).History(context.Background(), filter)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "Filter: all, accepted or skipped")
	return cmd
}

// ResetCmd returns the reset command
func ResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the queue, today's counts and provider settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				cmd.Println("This clears all local MicroDecide data. Re-run with --yes to confirm.")
				return nil
			}
			return wire.Default().DecisionAdapter(cmd.OutOrStdout()).Reset(context.Background())
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
