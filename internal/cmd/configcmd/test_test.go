package configcmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/markup-reflow/internal/cmd/cmdutil"
	"github.com/open-cli-collective/markup-reflow/internal/config"
)

func TestRunTest_Defaults(t *testing.T) {
	path := isolate(t)

	var buf bytes.Buffer
	require.NoError(t, runTest(cmdutil.GlobalOptions{ConfigPath: path, NoColor: true}, &buf, nil))

	output := buf.String()
	assert.Contains(t, output, "✓ Configuration is valid")
	assert.Contains(t, output, "✓ Output is stable")
	assert.Contains(t, output, "Indentation: \"  \"\n")
	assert.Contains(t, output, "Text mode: no\n")
	assert.Contains(t, output, "<html>\n  <head>\n    <title>Sample</title>\n  </head>\n")
	assert.Contains(t, output, "      <li>One</li>\n")
	assert.Contains(t, output, "    <!-- nav -->\n")
}

func TestRunTest_ConfiguredIndent(t *testing.T) {
	path := isolate(t)
	require.NoError(t, (&config.Config{Indentation: "\t"}).Save(path))

	var buf bytes.Buffer
	require.NoError(t, runTest(cmdutil.GlobalOptions{ConfigPath: path, NoColor: true}, &buf, nil))
	assert.Contains(t, buf.String(), "<html>\n\t<head>\n\t\t<title>Sample</title>\n")
}

func TestRunTest_EachLineWarnsAboutStability(t *testing.T) {
	isolate(t)
	cfg := &config.Config{Indentation: "  ", Newline: "lf", IndentText: "each-line"}

	var buf bytes.Buffer
	require.NoError(t, runTest(cmdutil.GlobalOptions{NoColor: true}, &buf, cfg))
	assert.Contains(t, buf.String(), "! Reflowing the result again changes it")
}

func TestRunTest_InvalidConfig(t *testing.T) {
	isolate(t)
	cfg := &config.Config{Newline: "cr"}

	var buf bytes.Buffer
	err := runTest(cmdutil.GlobalOptions{NoColor: true}, &buf, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, buf.String(), "✗ Invalid configuration")
}
