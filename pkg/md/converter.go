// Package md renders Markdown sources to HTML so they can be reflowed.
package md

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// mdParser is a pre-configured goldmark instance with GFM extensions.
// XHTML output closes void elements (<hr />, <br />) so the tag matcher sees
// them as self-closing, and raw HTML embedded in the Markdown passes through.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		html.WithXHTML(),
		html.WithUnsafe(),
	),
)

// ToHTML converts Markdown content to an HTML fragment.
func ToHTML(markdown []byte) (string, error) {
	if len(markdown) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := mdParser.Convert(markdown, &buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}
