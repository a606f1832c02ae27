// Package check provides the check command.
package check

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/markup-reflow/internal/cmd/cmdutil"
	"github.com/open-cli-collective/markup-reflow/internal/source"
	"github.com/open-cli-collective/markup-reflow/internal/view"
)

// Statuses reported per input.
const (
	StatusOK       = "ok"
	StatusReflow   = "needs reflow"
	statusErrorTag = "error: "
)

type checkOptions struct {
	configPath string
	output     string
	noColor    bool
	overrides  cmdutil.Overrides

	reader *source.Reader
	stdout io.Writer
}

// NewCmdCheck creates the check command.
func NewCmdCheck() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [inputs...]",
		Short: "Report inputs that are not reflowed",
		Long: `Check whether inputs are already in reflowed form without changing them.

Exits with an error when any input would change or cannot be processed.`,
		Example: `  # Check templates in CI
  reflow check templates/*.html

  # Machine-readable report
  reflow check -o json site/*.xml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := cmdutil.Globals(cmd)
			opts.configPath = g.ConfigPath
			opts.output = g.Output
			opts.noColor = g.NoColor
			opts.overrides = cmdutil.ReflowOverrides(cmd)
			opts.stdout = cmd.OutOrStdout()
			return runCheck(cmd.Context(), args, opts)
		},
	}

	cmdutil.AddReflowFlags(cmd)

	return cmd
}

func runCheck(ctx context.Context, inputs []string, opts *checkOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(inputs) == 0 {
		inputs = []string{source.Stdin}
	}

	cfg, err := cmdutil.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	output := cmdutil.OutputFormat(opts.output, cfg)
	if err := view.ValidateFormat(output); err != nil {
		return err
	}
	if err := opts.overrides.Apply(cfg); err != nil {
		return err
	}
	reflowOpts, err := cfg.Options()
	if err != nil {
		return err
	}

	if opts.reader == nil {
		opts.reader = source.NewReader(source.NewClient(cfg.Timeout()))
	}

	outcomes := cmdutil.Process(ctx, opts.reader, inputs, cmdutil.ProcessOptions{Reflow: reflowOpts})

	rows := make([][]string, 0, len(outcomes))
	var pending int
	for _, o := range outcomes {
		status := StatusOK
		switch {
		case o.Err != nil:
			status = statusErrorTag + cmdutil.Describe(o.Err)
		case o.Changed:
			status = StatusReflow
			pending++
		}
		rows = append(rows, []string{o.Input.Name, status})
	}

	renderer := view.NewRenderer(view.Format(output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}
	renderer.RenderTable([]string{"INPUT", "STATUS"}, rows)

	if err := cmdutil.ErrorSummary(outcomes); err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("%d input(s) need reflow", pending)
	}
	return nil
}
