// Package fmtcmd provides the fmt command.
package fmtcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/markup-reflow/internal/cmd/cmdutil"
	"github.com/open-cli-collective/markup-reflow/internal/logging"
	"github.com/open-cli-collective/markup-reflow/internal/source"
)

type fmtOptions struct {
	configPath string
	overrides  cmdutil.Overrides
	markdown   bool
	write      bool

	reader *source.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewCmdFmt creates the fmt command.
func NewCmdFmt() *cobra.Command {
	opts := &fmtOptions{}

	cmd := &cobra.Command{
		Use:   "fmt [inputs...]",
		Short: "Reflow markup",
		Long: `Re-indent HTML or XML so that nesting is visible, one tag per line.

Inputs are file paths, URLs, or "-" for standard input (the default).
Text is kept inline with its tags unless --indent-text says otherwise.`,
		Example: `  # Reflow a file to stdout
  reflow fmt page.html

  # Rewrite files in place with 4-space indentation
  reflow fmt -w --indent 4 templates/*.html

  # Reflow a remote document
  reflow fmt https://example.com/feed.xml

  # Render Markdown and reflow the resulting HTML
  reflow fmt --markdown README.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath = cmdutil.Globals(cmd).ConfigPath
			opts.overrides = cmdutil.ReflowOverrides(cmd)
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runFmt(cmd.Context(), args, opts)
		},
	}

	cmdutil.AddReflowFlags(cmd)
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Render inputs as Markdown before reflowing")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Write results back to the input files")

	return cmd
}

func runFmt(ctx context.Context, inputs []string, opts *fmtOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.write && opts.markdown {
		return errors.New("--write cannot be combined with --markdown")
	}
	if len(inputs) == 0 {
		inputs = []string{source.Stdin}
	}

	cfg, err := cmdutil.LoadConfig(opts.configPath)
	if err != nil {
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

	logger := logging.FromContext(ctx)
	outcomes := cmdutil.Process(ctx, opts.reader, inputs, cmdutil.ProcessOptions{
		Reflow:   reflowOpts,
		Markdown: opts.markdown,
	})

	headers := len(inputs) > 1 && !opts.write
	for i := range outcomes {
		o := &outcomes[i]
		name := o.Input.Name
		if o.Err != nil {
			fmt.Fprintf(opts.stderr, "%s: %v\n", name, o.Err)
			continue
		}

		if opts.write && o.Input.Writable {
			if !o.Changed {
				logger.Debug("already reflowed", zap.String("input", name))
				continue
			}
			if err := writeInPlace(name, o.Content); err != nil {
				o.Err = err
				fmt.Fprintf(opts.stderr, "%s: %v\n", name, err)
				continue
			}
			logger.Debug("rewrote file", zap.String("input", name))
			fmt.Fprintf(opts.stdout, "Formatted: %s\n", name)
			continue
		}

		if headers {
			fmt.Fprintf(opts.stdout, "<!-- %s -->\n", name)
		}
		fmt.Fprint(opts.stdout, o.Content)
	}

	return cmdutil.ErrorSummary(outcomes)
}

// writeInPlace replaces the file contents, keeping its permissions.
func writeInPlace(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
