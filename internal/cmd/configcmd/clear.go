package configcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/markup-reflow/internal/cmd/cmdutil"
	"github.com/open-cli-collective/markup-reflow/internal/config"
)

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long:  `Delete the reflow configuration file. Environment variables will still be used if set.`,
		Example: `  # Clear config
  reflow config clear`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := cmdutil.Globals(cmd)
			return runClear(g.ConfigPath, g.NoColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runClear(configPath string, noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	err := os.Remove(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	green := color.New(color.FgGreen)
	dim := color.New(color.Faint)

	if os.IsNotExist(err) {
		_, _ = green.Fprintf(w, "✓ No config file to remove\n")
	} else {
		_, _ = green.Fprintf(w, "✓ Configuration cleared from %s\n", configPath)
	}

	var activeVars []string
	for _, v := range config.EnvVars {
		if os.Getenv(v) != "" {
			activeVars = append(activeVars, v)
		}
	}

	if len(activeVars) > 0 {
		_, _ = dim.Fprintf(w, "\nNote: Environment variables will still be used: %s\n", strings.Join(activeVars, ", "))
	}

	return nil
}
