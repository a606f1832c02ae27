// tokenizer.go implements tokenization of HTML/XML-like markup.
package reflow

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// ErrMalformedMarkup is matched by every tokenization failure.
var ErrMalformedMarkup = errors.New("malformed markup")

// maxPreviewLen bounds the snippet carried by MalformedMarkupError.
const maxPreviewLen = 100

// MalformedMarkupError reports input that no token pattern recognizes.
type MalformedMarkupError struct {
	Offset  int    // byte offset where scanning stopped
	Preview string // start of the unrecognized remainder
}

func (e *MalformedMarkupError) Error() string {
	return fmt.Sprintf("unrecognized markup at offset %d near %q", e.Offset, e.Preview)
}

func (e *MalformedMarkupError) Unwrap() error {
	return ErrMalformedMarkup
}

// Building blocks for tag patterns. Attributes are forgiving: a value is
// optional and may be unquoted, single- or double-quoted.
const (
	tagNamePattern = `[^?/><"\s]+`
	attrPattern    = `(?:\s+[^/><"=\s]+(?:\s*=\s*(?:[^/><"=\s]+|"[^"]*"|'[^']*'))?)*\s*`
)

// openTagStart matches "<name attr=value ..." up to, but excluding, the tag terminator.
func openTagStart(name string) string {
	return `<\s*(?P<name>` + name + `)` + attrPattern
}

// rawBlock matches a whole element whose body is never tokenized.
func rawBlock(name string) string {
	return openTagStart(name) + `>.*?<\s*/\s*` + name + `\s*>`
}

// scanRule pairs a token kind with its anchored pattern.
type scanRule struct {
	kind      Kind
	pattern   *regexp.Regexp
	nameGroup int // submatch index of the tag name, -1 when the kind has none
}

// scanRules is the ordered rule table. The first rule matching at the cursor wins.
var scanRules = sync.OnceValue(func() []scanRule {
	sources := []struct {
		kind    Kind
		pattern string
	}{
		{KindText, `[^<>]+`},
		{KindComment, `<!--.*?-->`},
		{KindCData, `<!\[CDATA\[.*?\]\]>`},
		{KindDoctype, `<!DOCTYPE(?:\s+(?:[^<>"']+|"[^"]*"|'[^']*'))*>`},
		{KindProcessingInstruction, openTagStart(`\?\s*xml`) + `\?\s*>`},
		{KindProcessingInstruction, `<\?[^?/><"\s]+(?:\s[^?>]*)?\?>`},
		{KindRawBlock, rawBlock(`script`)},
		{KindRawBlock, rawBlock(`style`)},
		{KindOpenTag, openTagStart(tagNamePattern) + `>`},
		{KindSelfClosingTag, openTagStart(tagNamePattern) + `/\s*>`},
		{KindCloseTag, `<\s*/(?P<name>` + tagNamePattern + `)(?:\s[^/><"]*)?>`},
	}

	rules := make([]scanRule, 0, len(sources))
	for _, src := range sources {
		re := regexp.MustCompile(`(?is)\A(?:` + src.pattern + `)`)
		rule := scanRule{kind: src.kind, pattern: re, nameGroup: -1}
		if rule.isTag() {
			rule.nameGroup = re.SubexpIndex("name")
		}
		rules = append(rules, rule)
	}
	return rules
})

func (r scanRule) isTag() bool {
	return Token{Kind: r.kind}.IsTag()
}

// Tokenize splits markup into an ordered token stream.
// Concatenating the Content of every returned token reproduces input exactly.
func Tokenize(input string) ([]Token, error) {
	rules := scanRules()

	var tokens []Token
	pos := 0

	for pos < len(input) {
		remaining := input[pos:]
		matched := false

		for _, rule := range rules {
			loc := rule.pattern.FindStringSubmatchIndex(remaining)
			if loc == nil || loc[0] != 0 || loc[1] == 0 {
				continue
			}

			token := Token{
				Kind:     rule.kind,
				Content:  remaining[:loc[1]],
				Position: pos,
			}
			if rule.nameGroup > 0 && loc[2*rule.nameGroup] >= 0 {
				token.TagName = remaining[loc[2*rule.nameGroup]:loc[2*rule.nameGroup+1]]
			}
			if rule.kind == KindText {
				token.Blank = strings.TrimSpace(token.Content) == ""
			}

			tokens = append(tokens, token)
			pos += loc[1]
			matched = true
			break
		}

		if !matched {
			return nil, &MalformedMarkupError{
				Offset:  pos,
				Preview: preview(remaining),
			}
		}
	}

	return tokens, nil
}

// preview returns at most maxPreviewLen bytes of s without splitting a rune.
func preview(s string) string {
	if len(s) <= maxPreviewLen {
		return s
	}
	n := maxPreviewLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
