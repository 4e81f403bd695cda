// Package commands implements the CLI commands for verigate.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/verigate/verigate/internal/platform/logger"
)

// Global flag values accessible to all commands.
var (
	flagJSON       bool
	flagQuiet      bool
	flagVerbose    bool
	flagNoColor    bool
	flagNoFix      bool
	flagSkip       []string
	flagSkipReview bool
)

// rootCmd is the base command for the verigate CLI.
var rootCmd = &cobra.Command{
	Use:   "verigate",
	Short: "Verification gate for AI-assisted development",
	Long: `Verigate runs an ordered list of project checks (build, tests, lint,
security scan, code review) and aggregates them into a single pass/fail
verdict. Failures with a known remediation are fixed automatically and
re-checked once; everything else is escalated as a plain-language question.

Checks are declared in .verigate/checks.yaml and run strictly in order,
on the host or inside warm Docker containers. Typically installed as a
git pre-commit hook via 'verigate init'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		l := logger.New(flagVerbose, flagJSON)
		if flagQuiet {
			l = logger.Quiet()
		}
		ctx := logger.WithContext(cmd.Context(), l)
		cmd.SetContext(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output the gate report as JSON to stdout")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "Print only the final verdict and escalation questions")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Include raw tool stdout/stderr in output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoFix, "no-fix", false, "Disable automatic remediation of failing checks")
	rootCmd.PersistentFlags().StringSliceVar(&flagSkip, "skip", nil, "Skip specific checks by name")
	rootCmd.PersistentFlags().BoolVar(&flagSkipReview, "skip-review", false, "Skip all LLM review checks")
}

// Execute runs the root command. Returns an error if the command fails.
func Execute() error {
	return rootCmd.Execute()
}
