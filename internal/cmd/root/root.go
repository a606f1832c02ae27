// Package root provides the root command for the reflow CLI.
package root

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/markup-reflow/internal/cmd/check"
	"github.com/open-cli-collective/markup-reflow/internal/cmd/completion"
	"github.com/open-cli-collective/markup-reflow/internal/cmd/configcmd"
	"github.com/open-cli-collective/markup-reflow/internal/cmd/fmtcmd"
	initcmd "github.com/open-cli-collective/markup-reflow/internal/cmd/init"
	"github.com/open-cli-collective/markup-reflow/internal/cmd/tokens"
	"github.com/open-cli-collective/markup-reflow/internal/logging"
	"github.com/open-cli-collective/markup-reflow/internal/version"
)

// NewCmdRoot creates the root command for reflow.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reflow",
		Short: "Re-indent HTML and XML markup",
		Long: `reflow rewrites HTML and XML so its nesting is visible: one tag per
line, each level indented, text kept next to its tags.

Inputs can be files, URLs, or standard input.

Get started by running: reflow init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logger, err := logging.New(logging.Config{Verbose: verbose})
			if err != nil {
				return err
			}
			logger.Debug("starting", zap.String("command", cmd.CommandPath()), zap.String("version", version.Version))
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = logging.FromContext(cmd.Context()).Sync()
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/reflow/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug details to stderr")

	// Set version template
	cmd.SetVersionTemplate("reflow version " + version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(fmtcmd.NewCmdFmt())
	cmd.AddCommand(check.NewCmdCheck())
	cmd.AddCommand(tokens.NewCmdTokens())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
