package check

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/open-cli-collective/markup-reflow/internal/config"
	"github.com/open-cli-collective/markup-reflow/internal/logging"
	"github.com/open-cli-collective/markup-reflow/internal/source"
)

func newTestOptions(t *testing.T, stdin string) (*checkOptions, *bytes.Buffer) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}

	stdout := &bytes.Buffer{}
	return &checkOptions{
		configPath: filepath.Join(t.TempDir(), "config.yml"),
		noColor:    true,
		reader:     &source.Reader{Stdin: strings.NewReader(stdin)},
		stdout:     stdout,
	}, stdout
}

func testContext(t *testing.T) context.Context {
	return logging.WithLogger(context.Background(), zaptest.NewLogger(t))
}

func writeInputs(t *testing.T) (clean, messy, broken string) {
	t.Helper()
	dir := t.TempDir()
	clean = filepath.Join(dir, "clean.html")
	messy = filepath.Join(dir, "messy.html")
	broken = filepath.Join(dir, "broken.html")
	require.NoError(t, os.WriteFile(clean, []byte("<ul>\n  <li>a</li>\n</ul>\n"), 0644))
	require.NoError(t, os.WriteFile(messy, []byte("<ul><li>a</li></ul>\n"), 0644))
	require.NoError(t, os.WriteFile(broken, []byte("<p>a > b</p>"), 0644))
	return clean, messy, broken
}

func TestRunCheck_AllClean(t *testing.T) {
	opts, stdout := newTestOptions(t, "")
	clean, _, _ := writeInputs(t)
	opts.output = "plain"

	require.NoError(t, runCheck(testContext(t), []string{clean}, opts))
	assert.Equal(t, clean+"\tok\n", stdout.String())
}

func TestRunCheck_NeedsReflow(t *testing.T) {
	opts, stdout := newTestOptions(t, "")
	clean, messy, _ := writeInputs(t)
	opts.output = "json"

	err := runCheck(testContext(t), []string{clean, messy}, opts)
	require.Error(t, err)
	assert.Equal(t, "1 input(s) need reflow", err.Error())

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rows))
	assert.Equal(t, []map[string]string{
		{"input": clean, "status": StatusOK},
		{"input": messy, "status": StatusReflow},
	}, rows)

	// check never rewrites
	data, err := os.ReadFile(messy)
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>a</li></ul>\n", string(data))
}

func TestRunCheck_ErrorsWinOverPending(t *testing.T) {
	opts, stdout := newTestOptions(t, "")
	_, messy, broken := writeInputs(t)
	opts.output = "plain"

	err := runCheck(testContext(t), []string{messy, broken}, opts)
	require.Error(t, err)
	assert.Equal(t, "1 input(s) had errors", err.Error())
	assert.Contains(t, stdout.String(), broken+"\terror: malformed at offset 5")
}

func TestRunCheck_TableOutput(t *testing.T) {
	opts, stdout := newTestOptions(t, "<p>x</p>\n")

	require.NoError(t, runCheck(testContext(t), nil, opts))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "INPUT  STATUS", lines[0])
	assert.Equal(t, "-      ok", lines[1])
}

func TestRunCheck_OutputFromConfig(t *testing.T) {
	opts, stdout := newTestOptions(t, "<p>x</p>\n")
	require.NoError(t, (&config.Config{OutputFormat: "plain"}).Save(opts.configPath))

	require.NoError(t, runCheck(testContext(t), nil, opts))
	assert.Equal(t, "-\tok\n", stdout.String())
}

func TestRunCheck_InvalidOutput(t *testing.T) {
	opts, _ := newTestOptions(t, "")
	opts.output = "xml"

	err := runCheck(testContext(t), nil, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestRunCheck_OverrideChangesVerdict(t *testing.T) {
	opts, _ := newTestOptions(t, "<a>\n  <b/>\n</a>\n")
	indent := "    "
	opts.overrides.Indent = &indent
	opts.output = "plain"

	err := runCheck(testContext(t), nil, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "need reflow")
}
