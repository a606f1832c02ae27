// Package config provides configuration management for reflow.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/markup-reflow/pkg/reflow"
)

// Newline names accepted in the config file.
const (
	NewlineLF   = "lf"
	NewlineCRLF = "crlf"
)

// EnvFile is read from the working directory for values the process
// environment does not set.
const EnvFile = ".env"

// Environment variables that override file values.
const (
	EnvIndent      = "REFLOW_INDENT"
	EnvNewline     = "REFLOW_NEWLINE"
	EnvIndentText  = "REFLOW_INDENT_TEXT"
	EnvBlankIsText = "REFLOW_BLANK_IS_TEXT"
	EnvOutput      = "REFLOW_OUTPUT"
	EnvHTTPTimeout = "REFLOW_HTTP_TIMEOUT"
)

// EnvVars lists every environment variable the config reads.
var EnvVars = []string{EnvIndent, EnvNewline, EnvIndentText, EnvBlankIsText, EnvOutput, EnvHTTPTimeout}

// Config holds the reflow configuration.
type Config struct {
	Indentation  string `yaml:"indentation,omitempty"`
	Newline      string `yaml:"newline,omitempty"`
	IndentText   string `yaml:"indent_text,omitempty"`
	BlankIsText  bool   `yaml:"blank_is_text,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty"`
	HTTPTimeout  string `yaml:"http_timeout,omitempty"`
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Indentation: "  ",
		Newline:     NewlineLF,
		IndentText:  reflow.TextInline.String(),
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if strings.TrimLeft(c.Indentation, " \t") != "" {
		return errors.New("indentation may only contain spaces and tabs")
	}

	switch strings.ToLower(c.Newline) {
	case "", NewlineLF, NewlineCRLF:
	default:
		return fmt.Errorf("newline must be %q or %q", NewlineLF, NewlineCRLF)
	}

	if _, err := reflow.ParseTextMode(c.IndentText); err != nil {
		return err
	}

	if c.HTTPTimeout != "" {
		d, err := time.ParseDuration(c.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("http_timeout: %w", err)
		}
		if d <= 0 {
			return errors.New("http_timeout must be positive")
		}
	}

	return nil
}

// Options converts the configuration into reflow options.
func (c *Config) Options() (reflow.Options, error) {
	if err := c.Validate(); err != nil {
		return reflow.Options{}, err
	}

	mode, _ := reflow.ParseTextMode(c.IndentText)
	opts := reflow.Options{
		Indentation: c.Indentation,
		Newline:     "\n",
		IndentText:  mode,
		BlankIsText: c.BlankIsText,
	}
	if strings.EqualFold(c.Newline, NewlineCRLF) {
		opts.Newline = "\r\n"
	}
	return opts, nil
}

// Timeout returns the HTTP timeout, or zero when unset or invalid.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil {
		return 0
	}
	return d
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Precedence: process environment → .env file → existing config value
func (c *Config) LoadFromEnv() {
	dotenv, _ := godotenv.Read(EnvFile)
	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	if v := lookup(EnvIndent); v != "" {
		c.Indentation = ExpandIndentation(v)
	}
	if v := lookup(EnvNewline); v != "" {
		c.Newline = v
	}
	if v := lookup(EnvIndentText); v != "" {
		c.IndentText = v
	}
	if v := lookup(EnvBlankIsText); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.BlankIsText = b
		}
	}
	if v := lookup(EnvOutput); v != "" {
		c.OutputFormat = v
	}
	if v := lookup(EnvHTTPTimeout); v != "" {
		c.HTTPTimeout = v
	}
}

// ExpandIndentation turns shorthand like "4", "tab" or "\t" into an indentation unit.
// Anything else is returned unchanged.
func ExpandIndentation(s string) string {
	switch strings.ToLower(s) {
	case "tab", "tabs", `\t`:
		return "\t"
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 16 {
		return strings.Repeat(" ", n)
	}
	return s
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "reflow", "config.yml")
	}

	// Fall back to ~/.config/reflow/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".reflow", "config.yml")
	}

	return filepath.Join(home, ".config", "reflow", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
// Fields missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
// A missing file is not an error; a file that cannot be parsed is.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
