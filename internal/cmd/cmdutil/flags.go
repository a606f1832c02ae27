package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/markup-reflow/internal/config"
)

// Overrides holds reflow settings given explicitly on the command line.
// Nil fields leave the configured value alone.
type Overrides struct {
	Indent      *string
	Newline     *string
	IndentText  *string
	BlankIsText *bool
}

// AddReflowFlags registers the flags read by ReflowOverrides.
func AddReflowFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("indent", "", `indentation unit: number of spaces, "tab", or literal whitespace`)
	f.Bool("tabs", false, "indent with tabs (same as --indent tab)")
	f.String("newline", "", "line ending: lf or crlf")
	f.String("indent-text", "", "text placement: no, first-line, each-line")
	f.Bool("blank-is-text", false, "treat whitespace-only text as content")
}

// ReflowOverrides collects the reflow flags the user actually set.
func ReflowOverrides(cmd *cobra.Command) Overrides {
	var o Overrides
	f := cmd.Flags()

	if f.Changed("indent") {
		v, _ := f.GetString("indent")
		v = config.ExpandIndentation(v)
		o.Indent = &v
	}
	if f.Changed("tabs") {
		if tabs, _ := f.GetBool("tabs"); tabs {
			v := "\t"
			o.Indent = &v
		}
	}
	if f.Changed("newline") {
		v, _ := f.GetString("newline")
		o.Newline = &v
	}
	if f.Changed("indent-text") {
		v, _ := f.GetString("indent-text")
		o.IndentText = &v
	}
	if f.Changed("blank-is-text") {
		v, _ := f.GetBool("blank-is-text")
		o.BlankIsText = &v
	}
	return o
}

// Apply copies the set overrides into cfg and validates the result.
func (o Overrides) Apply(cfg *config.Config) error {
	if o.Indent != nil {
		cfg.Indentation = *o.Indent
	}
	if o.Newline != nil {
		cfg.Newline = *o.Newline
	}
	if o.IndentText != nil {
		cfg.IndentText = *o.IndentText
	}
	if o.BlankIsText != nil {
		cfg.BlankIsText = *o.BlankIsText
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'reflow init' to reconfigure)", err)
	}
	return nil
}
