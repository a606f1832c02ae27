// Package init provides the init command for reflow.
package init

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/markup-reflow/internal/cmd/cmdutil"
	"github.com/open-cli-collective/markup-reflow/internal/config"
	"github.com/open-cli-collective/markup-reflow/pkg/reflow"
)

// preview is reflowed with the chosen settings once the form is done.
const preview = `<ul><li>Inline text</li><li><p>Nested</p></li></ul>`

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var noPreview bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize reflow configuration",
		Long: `Initialize reflow with your preferred layout.

This command asks for an indentation unit, line ending, text placement and
whitespace handling. The configuration will be saved to ~/.config/reflow/config.yml.`,
		Example: `  # Interactive setup
  reflow init

  # Save to a custom location
  reflow init --config ./reflow.yml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := cmdutil.Globals(cmd)
			return runInit(g.ConfigPath, noPreview, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&noPreview, "no-preview", false, "Skip the sample output after saving")

	return cmd
}

func runInit(configPath string, noPreview bool, w io.Writer) error {
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	// Check if config already exists
	existing := config.Default()
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(w, "Initialization cancelled.")
			return nil
		}
		if loaded, err := config.Load(configPath); err == nil {
			existing = loaded
		}
	}

	cfg := *existing
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Indentation").
				Description("Unit added for each nesting level").
				Options(indentOptions(cfg.Indentation)...).
				Value(&cfg.Indentation),

			huh.NewSelect[string]().
				Title("Line ending").
				Options(
					huh.NewOption("LF (\\n)", config.NewlineLF),
					huh.NewOption("CRLF (\\r\\n)", config.NewlineCRLF),
				).
				Value(&cfg.Newline),

			huh.NewSelect[string]().
				Title("Text placement").
				Description("Where text inside elements goes").
				Options(
					huh.NewOption("Inline with its tags", reflow.TextInline.String()),
					huh.NewOption("On its own line", reflow.TextFirstLine.String()),
					huh.NewOption("On its own line, every line indented", reflow.TextEachLine.String()),
				).
				Value(&cfg.IndentText),

			huh.NewConfirm().
				Title("Treat whitespace-only text as content?").
				Description("Keeps elements like <p> </p> on one line").
				Value(&cfg.BlankIsText),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(w, "Initialization cancelled.")
			return nil
		}
		return err
	}

	return save(&cfg, configPath, noPreview, w)
}

// save validates and writes cfg, then shows how it lays out a sample.
func save(cfg *config.Config, configPath string, noPreview bool, w io.Writer) error {
	opts, err := cfg.Options()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nConfiguration saved to %s\n", configPath)

	if !noPreview {
		out, err := reflow.ReflowWithOptions(preview, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\nSample output:\n\n%s\n", out)
	}

	fmt.Fprintln(w, "\nYou're all set! Try running:")
	fmt.Fprintln(w, "  reflow fmt page.html")
	fmt.Fprintln(w, "  reflow check templates/*.html")

	return nil
}

// indentOptions lists the common indentation units, keeping a custom current
// value selectable.
func indentOptions(current string) []huh.Option[string] {
	options := []huh.Option[string]{
		huh.NewOption("2 spaces", "  "),
		huh.NewOption("4 spaces", "    "),
		huh.NewOption("Tab", "\t"),
		huh.NewOption("None", ""),
	}
	for _, o := range options {
		if o.Value == current {
			return options
		}
	}
	return append(options, huh.NewOption(fmt.Sprintf("Current (%q)", current), current))
}
