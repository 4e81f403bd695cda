package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the gate and fail on blocking check failures",
	Long: `Execute all configured checks in order. Exit 0 if the gate passes,
exit 1 if any error-severity check fails. Warning-severity failures are
reported but do not affect the exit code.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		err := runGate(cmd.Context(), false)
		if errors.Is(err, ErrGateFailed) {
			os.Exit(1)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
