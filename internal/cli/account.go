package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/microdecide/internal/config"
	"github.com/example/microdecide/internal/wire"
)

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [email]",
		Short: "Sign in with an email address",
		Long: `Sign in with an email address. The user id is derived locally
("user-" + email) and stored in ~/.microdecide/config.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := wire.Default()
			userID, err := c.AccountAdapter(cmd.OutOrStdout()).Login(context.Background(), args[0])
			if err != nil {
				return err
			}

			if err := config.SetUserID(userID); err != nil {
				return fmt.Errorf("failed to save sign-in: %w", err)
			}
			c.Config.UserID = userID
			return nil
		},
	}
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and continue anonymously",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SetUserID(""); err != nil {
				return fmt.Errorf("failed to save sign-out: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Signed out")
			return nil
		},
	}
}

// WhoamiCmd returns the whoami command
func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.UserID == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in (anonymous, free tier)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.UserID)
			return nil
		},
	}
}
