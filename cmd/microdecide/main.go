package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/microdecide/internal/cli"
	"github.com/example/microdecide/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "microdecide",
		Short:   "MicroDecide - one small decision at a time",
		Version: version.String(),
		Long: `MicroDecide generates small cleanup decisions (unsubscribe from a sender,
remove duplicate photos) and keeps them in a local queue you accept or skip.
Free users get one decision per day.`,
	}

	// Account
	rootCmd.AddCommand(cli.LoginCmd())
	rootCmd.AddCommand(cli.LogoutCmd())
	rootCmd.AddCommand(cli.WhoamiCmd())

	// Decisions
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.NextCmd())
	rootCmd.AddCommand(cli.QueueCmd())
	rootCmd.AddCommand(cli.AcceptCmd())
	rootCmd.AddCommand(cli.SkipCmd())
	rootCmd.AddCommand(cli.UndoCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.ProvidersCmd())
	rootCmd.AddCommand(cli.ResetCmd())
	rootCmd.AddCommand(cli.SessionCmd())

	// Developer tools
	rootCmd.AddCommand(cli.EventsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
