package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/microdecide/internal/wire"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Manage decision providers",
	Long:  "List, enable and disable the providers that generate decisions",
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.Default().DecisionAdapter(cmd.OutOrStdout()).Providers(context.Background())
	},
}

var providersEnableCmd = &cobra.Command{
	Use:   "enable [provider-id]",
	Short: "Enable a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.Default().DecisionAdapter(cmd.OutOrStdout()).SetProvider(context.Background(), args[0], true)
	},
}

var providersDisableCmd = &cobra.Command{
	Use:   "disable [provider-id]",
	Short: "Disable a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.Default().DecisionAdapter(cmd.OutOrStdout()).SetProvider(context.Background(), args[0], false)
	},
}

func init() {
	providersCmd.AddCommand(providersListCmd)
	providersCmd.AddCommand(providersEnableCmd)
	providersCmd.AddCommand(providersDisableCmd)
}

// ProvidersCmd returns the providers command
func ProvidersCmd() *cobra.Command {
	return providersCmd
}
