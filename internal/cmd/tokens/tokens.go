// Package tokens provides the tokens command.
package tokens

import (
	"context"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/markup-reflow/internal/cmd/cmdutil"
	"github.com/open-cli-collective/markup-reflow/internal/logging"
	"github.com/open-cli-collective/markup-reflow/internal/source"
	"github.com/open-cli-collective/markup-reflow/internal/view"
	"github.com/open-cli-collective/markup-reflow/pkg/reflow"
)

const maxContentWidth = 40

type tokensOptions struct {
	configPath  string
	output      string
	noColor     bool
	blankIsText *bool

	reader *source.Reader
	stdout io.Writer
}

// NewCmdTokens creates the tokens command.
func NewCmdTokens() *cobra.Command {
	opts := &tokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens [input]",
		Short: "Show how markup is tokenized and matched",
		Long: `Print the token stream of an input along with tag matching results.

PARTNER is the index of the matching open or close tag. TEXT marks open
tags whose element directly contains text, which keeps it on one line.`,
		Example: `  # Inspect a file
  reflow tokens page.html

  # Inspect stdin as JSON
  echo '<p>Hi</p>' | reflow tokens -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := cmdutil.Globals(cmd)
			opts.configPath = g.ConfigPath
			opts.output = g.Output
			opts.noColor = g.NoColor
			if cmd.Flags().Changed("blank-is-text") {
				v, _ := cmd.Flags().GetBool("blank-is-text")
				opts.blankIsText = &v
			}
			opts.stdout = cmd.OutOrStdout()

			name := source.Stdin
			if len(args) > 0 {
				name = args[0]
			}
			return runTokens(cmd.Context(), name, opts)
		},
	}

	cmd.Flags().Bool("blank-is-text", false, "treat whitespace-only text as content")

	return cmd
}

func runTokens(ctx context.Context, name string, opts *tokensOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := cmdutil.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	output := cmdutil.OutputFormat(opts.output, cfg)
	if err := view.ValidateFormat(output); err != nil {
		return err
	}
	blankIsText := cfg.BlankIsText
	if opts.blankIsText != nil {
		blankIsText = *opts.blankIsText
	}

	if opts.reader == nil {
		opts.reader = source.NewReader(source.NewClient(cfg.Timeout()))
	}
	in, err := opts.reader.Read(ctx, name)
	if err != nil {
		return err
	}

	doc, err := reflow.Parse(in.Content, blankIsText)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Debug("parsed markup",
		zap.String("input", name),
		zap.Int("tokens", len(doc.Tokens)),
		zap.Int("unmatched", len(doc.Matches.Unmatched())))

	renderer := view.NewRenderer(view.Format(output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}
	renderer.RenderTable(
		[]string{"INDEX", "OFFSET", "KIND", "TAG", "PARTNER", "TEXT", "CONTENT"},
		Rows(doc),
	)
	return nil
}

// Rows describes each token of doc as a table row.
func Rows(doc *reflow.Document) [][]string {
	rows := make([][]string, 0, len(doc.Tokens))
	for i, token := range doc.Tokens {
		partner := "-"
		if j, ok := doc.Matches.Partner(i); ok {
			partner = strconv.Itoa(j)
		} else if token.Kind == reflow.KindOpenTag || token.Kind == reflow.KindCloseTag {
			partner = "unmatched"
		}

		text := ""
		if doc.Matches.ContainsText(i) {
			text = "yes"
		}

		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(token.Position),
			token.Kind.String(),
			token.TagName,
			partner,
			text,
			view.Truncate(view.Escape(token.Content), maxContentWidth),
		})
	}
	return rows
}
