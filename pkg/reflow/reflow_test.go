package reflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withIndentation(indentation string) Options {
	opts := DefaultOptions()
	opts.Indentation = indentation
	return opts
}

var reflowTargets = []struct {
	name  string
	input string
	want  string
}{
	{
		name:  "text-only element",
		input: "<p>aaa</p>",
		want:  "<p>aaa</p>",
	},
	{
		name:  "nested elements",
		input: "<html><body><p>1</p><p>2</p></body></html>",
		want: `<html>
    <body>
        <p>1</p>
        <p>2</p>
    </body>
</html>`,
	},
	{
		name:  "void elements",
		input: `<body><div id="main"><img src="photo1"><img src="photo2"></div></body>`,
		want: `<body>
    <div id="main">
        <img src="photo1">
        <img src="photo2">
    </div>
</body>`,
	},
	{
		name: "mixed content is preserved",
		input: `
            <html>
            <body>
            <p><strong>Important:</strong> the content of nodes that directly contain text should be preserved.</p>
            <div>
            <p>But the content of nodes that don't (like the parent div here) should be indented.</p>
            </div>
            </body>
            </html>
`,
		want: `<html>
    <body>
        <p><strong>Important:</strong> the content of nodes that directly contain text should be preserved.</p>
        <div>
            <p>But the content of nodes that don't (like the parent div here) should be indented.</p>
        </div>
    </body>
</html>`,
	},
	{
		name:  "inline markup",
		input: "<p>Hello <i>world</i>!</p>",
		want:  "<p>Hello <i>world</i>!</p>",
	},
	{
		name:  "xml declaration",
		input: `<?xml version="1.0" encoding="utf-8"?><a><b/><b/></a>`,
		want: `<?xml version="1.0" encoding="utf-8"?>
<a>
    <b/>
    <b/>
</a>`,
	},
	{
		name:  "doctype and empty element",
		input: "<!DOCTYPE html><html><head><title>T</title></head><body></body></html>",
		want: `<!DOCTYPE html>
<html>
    <head>
        <title>T</title>
    </head>
    <body></body>
</html>`,
	},
	{
		name:  "raw block",
		input: "<div><script>\nif (a < b) {\n  go();\n}\n</script></div>",
		want:  "<div>\n    <script>\nif (a < b) {\n  go();\n}\n</script>\n</div>",
	},
	{
		name:  "unmatched open tag",
		input: "<body><br><p>a</p></body>",
		want:  "<body>\n    <br>\n    <p>a</p>\n</body>",
	},
	{
		name:  "stray close tag",
		input: "<body></b><p>a</p></body>",
		want:  "<body>\n    </b>\n    <p>a</p>\n</body>",
	},
	{
		name:  "comment inside inline content",
		input: "<div><p>a <!-- c --> b</p><!-- d --></div>",
		want:  "<div>\n    <p>a <!-- c --> b</p>\n    <!-- d -->\n</div>",
	},
	{
		name:  "top-level text",
		input: "Hello<br/>  World  ",
		want:  "Hello<br/>\nWorld",
	},
}

func TestReflowWithOptions(t *testing.T) {
	for _, tt := range reflowTargets {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReflowWithOptions(tt.input, withIndentation("    "))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReflow_Idempotent(t *testing.T) {
	for _, tt := range reflowTargets {
		t.Run(tt.name, func(t *testing.T) {
			once, err := Reflow(tt.input)
			require.NoError(t, err)
			twice, err := Reflow(once)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func TestReflow_DefaultIndentation(t *testing.T) {
	got, err := Reflow("<ul><li>a</li><li>b</li></ul>")
	require.NoError(t, err)
	assert.Equal(t, "<ul>\n  <li>a</li>\n  <li>b</li>\n</ul>", got)
}

func TestReflow_TopLevelTextTrimming(t *testing.T) {
	input := "  intro <br/> outro  "

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"inline trims", DefaultOptions(), "intro<br/>\noutro"},
		{"first-line keeps text", Options{Indentation: "  ", IndentText: TextFirstLine}, "  intro <br/>\n outro  "},
		{"blank-is-text keeps text", Options{Indentation: "  ", BlankIsText: true}, "  intro <br/>\n outro  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReflowWithOptions(input, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReflow_IndentTextFirstLine(t *testing.T) {
	opts := withIndentation("    ")
	opts.IndentText = TextFirstLine

	got, err := ReflowWithOptions("<p>Hello <i>world</i>!</p>", opts)
	require.NoError(t, err)
	assert.Equal(t, "<p>\n    Hello \n    <i>\n        world\n    </i>\n    !\n</p>", got)
}

func TestReflow_IndentTextEachLine(t *testing.T) {
	input := "<code class=\"scala-source\">\nobject HelloWorld {\n    def main() {}\n}\n</code>"
	opts := DefaultOptions()
	opts.IndentText = TextEachLine

	got, err := ReflowWithOptions(input, opts)
	require.NoError(t, err)
	assert.Equal(t, "<code class=\"scala-source\">\n  \n  object HelloWorld {\n      def main() {}\n  }\n  \n</code>", got)
}

func TestReflow_EachLineKeepsCRLF(t *testing.T) {
	opts := Options{Indentation: "\t", Newline: "\r\n", IndentText: TextEachLine}

	got, err := ReflowWithOptions("<pre>a\r\nb</pre>", opts)
	require.NoError(t, err)
	assert.Equal(t, "<pre>\r\n\ta\r\n\tb\r\n</pre>", got)
}

func TestReflow_Newline(t *testing.T) {
	opts := Options{Indentation: "\t", Newline: "\r\n"}

	got, err := ReflowWithOptions("<a><b></b></a>", opts)
	require.NoError(t, err)
	assert.Equal(t, "<a>\r\n\t<b></b>\r\n</a>", got)
}

func TestReflow_EmptyNewlineDefaultsToLF(t *testing.T) {
	got, err := ReflowWithOptions("<a><b></b></a>", Options{Indentation: " "})
	require.NoError(t, err)
	assert.Equal(t, "<a>\n <b></b>\n</a>", got)
}

func TestReflow_BlankIsText(t *testing.T) {
	tests := []struct {
		name        string
		blankIsText bool
		want        string
	}{
		{"blank text ignored", false, "<div></div>"},
		{"blank text kept", true, "<div>  </div>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.BlankIsText = tt.blankIsText
			got, err := ReflowWithOptions("<div>  </div>", opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReflow_UnmatchedTagsKeepSiblingLevel(t *testing.T) {
	got, err := Reflow("<ul><li>a</li></b><li>b</li><b><li>c</li></ul>")
	require.NoError(t, err)
	assert.Equal(t, "<ul>\n  <li>a</li>\n  </b>\n  <li>b</li>\n  <b>\n  <li>c</li>\n</ul>", got)
}

func TestReflow_Malformed(t *testing.T) {
	got, err := Reflow("<div><<<</div>")
	require.Error(t, err)
	assert.Empty(t, got)

	var malformed *MalformedMarkupError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 5, malformed.Offset)
}

func TestReflowWithResult(t *testing.T) {
	res, err := ReflowWithResult("<a><b></b></a>", DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Changed)

	res, err = ReflowWithResult(res.Content, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, res.Changed)
}

func TestDocument_Reflow(t *testing.T) {
	doc, err := Parse("<a><b>x</b></a>", false)
	require.NoError(t, err)

	assert.Equal(t, "<a>\n  <b>x</b>\n</a>", doc.Reflow(DefaultOptions()))
	assert.Equal(t, "<a>\n<b>x</b>\n</a>", doc.Reflow(Options{}))
}

func TestParseTextMode(t *testing.T) {
	tests := []struct {
		input   string
		want    TextMode
		wantErr bool
	}{
		{"", TextInline, false},
		{"no", TextInline, false},
		{"inline", TextInline, false},
		{"first-line", TextFirstLine, false},
		{"yes", TextFirstLine, false},
		{"Each-Line", TextEachLine, false},
		{"sometimes", TextInline, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTextMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid text mode")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextMode_String(t *testing.T) {
	for _, mode := range []TextMode{TextInline, TextFirstLine, TextEachLine} {
		parsed, err := ParseTextMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
}
