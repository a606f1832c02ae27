package configcmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/markup-reflow/internal/cmd/cmdutil"
	"github.com/open-cli-collective/markup-reflow/internal/config"
	"github.com/open-cli-collective/markup-reflow/internal/view"
	"github.com/open-cli-collective/markup-reflow/pkg/reflow"
)

// sample exercises nesting, inline text, a multi-line text block and a comment.
const sample = `<html><head><title>Sample</title></head><body><!-- nav --><ul><li>One</li><li>Two<br/></li></ul><pre>line one
line two</pre></body></html>`

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Reflow a sample document with the current configuration",
		Long: `Validate the current configuration and show how it lays out a small
sample document.`,
		Example: `  # Preview the configured layout
  reflow config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := cmdutil.Globals(cmd)
			return runTest(g, cmd.OutOrStdout(), nil)
		},
	}

	return cmd
}

func runTest(g cmdutil.GlobalOptions, w io.Writer, cfg *config.Config) error {
	renderer := view.NewRenderer(view.FormatTable, g.NoColor)
	renderer.SetWriter(w)

	if cfg == nil {
		var err error
		cfg, err = cmdutil.LoadConfig(g.ConfigPath)
		if err != nil {
			renderer.Error(err.Error())
			return err
		}
	}

	opts, err := cfg.Options()
	if err != nil {
		renderer.Error("Invalid configuration: " + err.Error())
		return fmt.Errorf("invalid config: %w", err)
	}
	renderer.Success("Configuration is valid")
	renderer.RenderKeyValue("Indentation", strconv.Quote(opts.Indentation))
	renderer.RenderKeyValue("Newline", strconv.Quote(opts.Newline))
	renderer.RenderKeyValue("Text mode", opts.IndentText.String())
	renderer.RenderKeyValue("Blank is text", strconv.FormatBool(opts.BlankIsText))

	out, err := reflow.ReflowWithOptions(sample, opts)
	if err != nil {
		renderer.Error("Sample failed to reflow: " + err.Error())
		return err
	}

	again, err := reflow.ReflowWithOptions(out, opts)
	if err != nil || again != out {
		renderer.Warning("Reflowing the result again changes it")
	} else {
		renderer.Success("Output is stable")
	}

	fmt.Fprintln(w)
	renderer.RenderText(out)
	return nil
}
