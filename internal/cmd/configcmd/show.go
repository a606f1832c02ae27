package configcmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/markup-reflow/internal/cmd/cmdutil"
	"github.com/open-cli-collective/markup-reflow/internal/config"
	"github.com/open-cli-collective/markup-reflow/internal/view"
)

// Value sources reported by config show.
const (
	sourceDefault = "default"
	sourceFile    = "config"
	sourceEnvFile = config.EnvFile
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective reflow configuration and where each value comes from.`,
		Example: `  # Show current config
  reflow config show

  # As JSON
  reflow config show -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := cmdutil.Globals(cmd)
			return runShow(g, cmd.OutOrStdout())
		},
	}

	return cmd
}

type setting struct {
	Setting string `json:"setting"`
	Value   string `json:"value"`
	Source  string `json:"source"`
}

func runShow(g cmdutil.GlobalOptions, w io.Writer) error {
	configPath := g.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	// Values as written in the file, without defaults
	fileCfg, fileErr := readRaw(configPath)
	if fileErr != nil && !errors.Is(fileErr, os.ErrNotExist) {
		return fileErr
	}
	if fileCfg == nil {
		fileCfg = &config.Config{}
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	output := cmdutil.OutputFormat(g.Output, cfg)
	if err := view.ValidateFormat(output); err != nil {
		return err
	}

	dotenv, _ := godotenv.Read(config.EnvFile)
	source := func(envVar string, inFile bool) string {
		switch {
		case os.Getenv(envVar) != "":
			return envVar
		case dotenv[envVar] != "":
			return sourceEnvFile
		case inFile:
			return sourceFile
		default:
			return sourceDefault
		}
	}

	settings := []setting{
		{"indentation", strconv.Quote(cfg.Indentation), source(config.EnvIndent, fileCfg.Indentation != "")},
		{"newline", cfg.Newline, source(config.EnvNewline, fileCfg.Newline != "")},
		{"indent_text", cfg.IndentText, source(config.EnvIndentText, fileCfg.IndentText != "")},
		{"blank_is_text", strconv.FormatBool(cfg.BlankIsText), source(config.EnvBlankIsText, fileCfg.BlankIsText)},
		{"output_format", orDash(cfg.OutputFormat), source(config.EnvOutput, fileCfg.OutputFormat != "")},
		{"http_timeout", orDash(cfg.HTTPTimeout), source(config.EnvHTTPTimeout, fileCfg.HTTPTimeout != "")},
	}

	renderer := view.NewRenderer(view.Format(output), g.NoColor)
	renderer.SetWriter(w)

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(settings)
	}

	rows := make([][]string, 0, len(settings))
	for _, s := range settings {
		rows = append(rows, []string{s.Setting, s.Value, s.Source})
	}
	renderer.RenderTable([]string{"SETTING", "VALUE", "SOURCE"}, rows)

	if renderer.Format() == view.FormatTable {
		dim := color.New(color.Faint)
		fmt.Fprintln(w)
		_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
		if fileErr != nil {
			_, _ = dim.Fprintln(w, "(file not found)")
		}
	}

	return nil
}

// readRaw parses the config file without filling in defaults.
func readRaw(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
