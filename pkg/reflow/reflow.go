// Package reflow re-indents HTML/XML-like markup without building a DOM.
//
// Markup is tokenized, open and close tags are paired by name, and the token
// stream is written back out with one indentation level per open element.
// Elements that directly contain text keep their content on one line so that
// inline markup like <p>Hello <i>world</i>!</p> renders exactly as before.
package reflow

import (
	"fmt"
	"regexp"
	"strings"
)

// TextMode selects how text nodes are laid out.
type TextMode int

const (
	// TextInline leaves elements that directly contain text on a single line.
	// Text outside every such element lands on its own line with its leading
	// and trailing whitespace removed (unless BlankIsText is set), so a second
	// pass gives the same output.
	TextInline TextMode = iota
	// TextFirstLine puts every text node on its own indented line.
	TextFirstLine
	// TextEachLine is TextFirstLine plus indentation of every line inside the text.
	TextEachLine
)

func (m TextMode) String() string {
	switch m {
	case TextInline:
		return "no"
	case TextFirstLine:
		return "first-line"
	case TextEachLine:
		return "each-line"
	}
	return fmt.Sprintf("TextMode(%d)", int(m))
}

// ParseTextMode converts a text mode name into a TextMode.
func ParseTextMode(s string) (TextMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "no", "inline", "false":
		return TextInline, nil
	case "first-line", "yes", "true":
		return TextFirstLine, nil
	case "each-line":
		return TextEachLine, nil
	}
	return TextInline, fmt.Errorf("invalid text mode %q (valid: no, first-line, each-line)", s)
}

// Options configures reflow.
type Options struct {
	// Indentation is repeated once per nesting level.
	Indentation string
	// Newline separates output lines. Empty means "\n".
	Newline string
	// IndentText controls the layout of text nodes. With TextInline, surrounding
	// whitespace of top-level text is trimmed; the other modes keep non-blank
	// text verbatim.
	IndentText TextMode
	// BlankIsText treats whitespace-only text as content instead of ignoring it.
	BlankIsText bool
}

// DefaultOptions returns two-space indentation with "\n" line breaks.
func DefaultOptions() Options {
	return Options{
		Indentation: "  ",
		Newline:     "\n",
		IndentText:  TextInline,
	}
}

// Result contains the result of reflowing markup.
type Result struct {
	// Content is the reflowed markup.
	Content string
	// Changed indicates if the content differs from the input.
	Changed bool
}

// Reflow re-indents markup with DefaultOptions.
func Reflow(markup string) (string, error) {
	return ReflowWithOptions(markup, DefaultOptions())
}

// ReflowWithOptions re-indents markup with the given options.
// The only possible error is a *MalformedMarkupError from tokenization.
func ReflowWithOptions(markup string, opts Options) (string, error) {
	doc, err := Parse(markup, opts.BlankIsText)
	if err != nil {
		return "", err
	}
	return doc.Reflow(opts), nil
}

// ReflowWithResult re-indents markup and reports whether it changed.
func ReflowWithResult(markup string, opts Options) (Result, error) {
	out, err := ReflowWithOptions(markup, opts)
	if err != nil {
		return Result{}, err
	}
	return Result{Content: out, Changed: out != markup}, nil
}

// Reflow writes the document back out with the given options.
func (d *Document) Reflow(opts Options) string {
	if opts.Newline == "" {
		opts.Newline = "\n"
	}
	r := &reflower{opts: opts, matches: d.Matches}
	for i, token := range d.Tokens {
		r.emit(i, token)
	}
	return r.buf.String()
}

var lineBreakPattern = regexp.MustCompile(`\r?\n`)

// reflower carries the emission state across one pass over the tokens.
type reflower struct {
	opts    Options
	matches *Matches
	buf     strings.Builder

	level         int  // current nesting depth
	sameline      int  // >0 while inside content that must stay on one line
	wasJustOpened bool // last emission was a matched open tag
	tagEmitted    bool // no newline before the first tag
}

func (r *reflower) emit(i int, token Token) {
	switch {
	case token.Kind == KindText:
		if token.Blank && !r.opts.BlankIsText {
			return
		}
		r.writeText(token.Content)
		r.wasJustOpened = false

	case token.Kind == KindOpenTag && r.matches.IsMatched(i):
		r.wasJustOpened = true
		if r.sameline > 0 {
			r.sameline++
		} else {
			r.indent()
		}
		if r.opts.IndentText == TextInline && r.matches.ContainsText(i) && r.sameline == 0 {
			r.sameline = 1
		}
		r.buf.WriteString(token.Content)
		r.level++
		r.tagEmitted = true

	case token.Kind == KindCloseTag && r.matches.IsMatched(i):
		r.level--
		r.tagEmitted = true
		if r.sameline > 0 {
			r.sameline--
		} else if !r.wasJustOpened {
			r.indent()
		}
		r.buf.WriteString(token.Content)
		r.wasJustOpened = false

	default:
		if r.sameline == 0 {
			r.indent()
		}
		r.buf.WriteString(token.Content)
		r.wasJustOpened = false
		r.tagEmitted = true
	}
}

// indent starts a new line at the current level.
func (r *reflower) indent() {
	if r.tagEmitted {
		r.buf.WriteString(r.opts.Newline)
	}
	for i := 0; i < r.level; i++ {
		r.buf.WriteString(r.opts.Indentation)
	}
}

func (r *reflower) writeText(text string) {
	if r.sameline > 0 {
		r.buf.WriteString(text)
		return
	}

	// Text on its own line outside any text-holding element: drop the
	// surrounding whitespace so a second pass finds nothing to change.
	if r.opts.IndentText == TextInline && !r.opts.BlankIsText {
		text = strings.TrimSpace(text)
	}

	r.indent()
	if r.opts.IndentText == TextEachLine {
		pad := strings.Repeat(r.opts.Indentation, r.level)
		text = lineBreakPattern.ReplaceAllStringFunc(text, func(lb string) string {
			return lb + pad
		})
	}
	r.buf.WriteString(text)
}
