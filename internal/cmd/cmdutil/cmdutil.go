// Package cmdutil holds helpers shared by the reflow subcommands.
package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/open-cli-collective/markup-reflow/internal/config"
	"github.com/open-cli-collective/markup-reflow/internal/logging"
	"github.com/open-cli-collective/markup-reflow/internal/source"
	"github.com/open-cli-collective/markup-reflow/pkg/md"
	"github.com/open-cli-collective/markup-reflow/pkg/reflow"
)

// GlobalOptions are the persistent flags defined on the root command.
type GlobalOptions struct {
	ConfigPath string
	Output     string
	NoColor    bool
}

// Globals reads the persistent flags from cmd.
func Globals(cmd *cobra.Command) GlobalOptions {
	var g GlobalOptions
	g.ConfigPath, _ = cmd.Flags().GetString("config")
	g.Output, _ = cmd.Flags().GetString("output")
	g.NoColor, _ = cmd.Flags().GetBool("no-color")
	return g
}

// LoadConfig loads the config file at path (or the default path) with
// environment overrides applied. Values are not validated here so that
// command-line overrides can still replace a bad setting; see Overrides.Apply.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// OutputFormat picks the --output flag when given, else the configured format.
func OutputFormat(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	if cfg != nil {
		return cfg.OutputFormat
	}
	return ""
}

// Outcome is the result of processing one input.
type Outcome struct {
	Input source.Input
	// Content is the reflowed document, ending in a newline unless empty.
	Content string
	// Changed reports whether Content differs from the input as read.
	Changed bool
	Err     error
}

// ProcessOptions controls how inputs are turned into reflowed documents.
type ProcessOptions struct {
	Reflow reflow.Options
	// Markdown renders inputs to HTML before reflowing.
	Markdown bool
}

// Process reads and reflows every named input concurrently. Outcomes are
// returned in the order of names; per-input failures are stored in Outcome.Err.
// Standard input is read once, however often "-" is named.
func Process(ctx context.Context, reader *source.Reader, names []string, opts ProcessOptions) []Outcome {
	outcomes := make([]Outcome, len(names))

	stdin := sync.OnceValues(func() (source.Input, error) {
		return reader.Read(ctx, source.Stdin)
	})
	read := func(name string) (source.Input, error) {
		if name == source.Stdin {
			return stdin()
		}
		return reader.Read(ctx, name)
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		g.Go(func() error {
			outcomes[i] = processOne(ctx, read, name, opts)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func processOne(ctx context.Context, read func(string) (source.Input, error), name string, opts ProcessOptions) Outcome {
	logger := logging.FromContext(ctx).With(zap.String("input", name))

	in, err := read(name)
	if err != nil {
		return Outcome{Input: source.Input{Name: name}, Err: err}
	}
	logger.Debug("read input", zap.Int("bytes", len(in.Content)), zap.Bool("writable", in.Writable))

	markup := in.Content
	if opts.Markdown {
		markup, err = md.ToHTML([]byte(in.Content))
		if err != nil {
			return Outcome{Input: in, Err: fmt.Errorf("rendering markdown: %w", err)}
		}
	}

	doc, err := reflow.Parse(markup, opts.Reflow.BlankIsText)
	if err != nil {
		return Outcome{Input: in, Err: err}
	}
	logger.Debug("parsed markup",
		zap.Int("tokens", len(doc.Tokens)),
		zap.Int("unmatched", len(doc.Matches.Unmatched())))

	content := Terminate(doc.Reflow(opts.Reflow), opts.Reflow.Newline)
	return Outcome{Input: in, Content: content, Changed: content != in.Content}
}

// Terminate appends a final newline to non-empty output.
func Terminate(out, newline string) string {
	if out == "" {
		return out
	}
	if newline == "" {
		newline = "\n"
	}
	return out + newline
}

// ErrorSummary returns an error counting failed outcomes, or nil.
func ErrorSummary(outcomes []Outcome) error {
	var n int
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return fmt.Errorf("%d input(s) had errors", n)
}

// Describe renders an input error for a status table, keeping the offset
// of malformed markup visible.
func Describe(err error) string {
	var malformed *reflow.MalformedMarkupError
	if errors.As(err, &malformed) {
		return fmt.Sprintf("malformed at offset %d", malformed.Offset)
	}
	var status *source.StatusError
	if errors.As(err, &status) {
		return fmt.Sprintf("http %d", status.StatusCode)
	}
	return strings.SplitN(err.Error(), "\n", 2)[0]
}
