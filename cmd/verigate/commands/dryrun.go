package commands

import (
	"github.com/spf13/cobra"
)

var dryRunCmd = &cobra.Command{
	Use:   "dry-run",
	Short: "Run the gate but always exit 0 (informational only)",
	Long: `Execute all configured checks identically to 'run', but always exit 0
regardless of the results. Useful for testing configuration without blocking commits.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGate(cmd.Context(), true)
	},
}

func init() {
	rootCmd.AddCommand(dryRunCmd)
}
