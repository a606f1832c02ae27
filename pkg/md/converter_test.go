package md

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/markup-reflow/pkg/reflow"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "basic paragraph",
			input:    "Hello world",
			expected: "<p>Hello world</p>\n",
		},
		{
			name:     "multiple paragraphs",
			input:    "First paragraph.\n\nSecond paragraph.",
			expected: "<p>First paragraph.</p>\n<p>Second paragraph.</p>\n",
		},
		{
			name:     "h1 header",
			input:    "# Title",
			expected: "<h1>Title</h1>\n",
		},
		{
			name:     "bold and italic",
			input:    "**bold** and *italic*",
			expected: "<p><strong>bold</strong> and <em>italic</em></p>\n",
		},
		{
			name:     "code block with language",
			input:    "```go\nfunc main() {}\n```",
			expected: "<pre><code class=\"language-go\">func main() {}\n</code></pre>\n",
		},
		{
			name:     "blockquote",
			input:    "> This is a quote",
			expected: "<blockquote>\n<p>This is a quote</p>\n</blockquote>\n",
		},
		{
			name:     "horizontal rule is self-closing",
			input:    "---",
			expected: "<hr />\n",
		},
		{
			name:     "raw html passes through",
			input:    "<div class=\"note\">kept</div>",
			expected: "<div class=\"note\">kept</div>",
		},
		{
			name:     "simple table",
			input:    "| A | B |\n|---|---|\n| 1 | 2 |",
			expected: "<table>\n<thead>\n<tr>\n<th>A</th>\n<th>B</th>\n</tr>\n</thead>\n<tbody>\n<tr>\n<td>1</td>\n<td>2</td>\n</tr>\n</tbody>\n</table>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ToHTML([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestToHTML_Reflows(t *testing.T) {
	html, err := ToHTML([]byte("# Title\n\n- one\n- two\n"))
	require.NoError(t, err)

	out, err := reflow.Reflow(html)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>\n<ul>\n  <li>one</li>\n  <li>two</li>\n</ul>", out)
}
