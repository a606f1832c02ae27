// matcher.go pairs open and close tags and finds elements that hold text.
package reflow

import (
	"sort"
	"strings"
)

// Matches records which tags of a token stream pair up and which matched
// elements directly contain text.
type Matches struct {
	partner     map[int]int      // open index <-> close index, both directions
	textParents map[int]struct{} // open indices of text-containing elements
	unmatched   []int            // open/close indices left unpaired
}

// MatchTags pairs tags in a single left-to-right pass using one stack of
// pending open tags per tag name (case-insensitive). A close tag pops the most
// recent open tag of the same name; with nothing to pop it stays unmatched.
// When blankIsText is set, whitespace-only text marks its parent as well.
func MatchTags(tokens []Token, blankIsText bool) *Matches {
	m := &Matches{
		partner:     make(map[int]int),
		textParents: make(map[int]struct{}),
	}

	pending := make(map[string][]int)
	var orphanCloses []int

	for i, token := range tokens {
		switch token.Kind {
		case KindOpenTag:
			name := strings.ToLower(token.TagName)
			pending[name] = append(pending[name], i)

		case KindCloseTag:
			name := strings.ToLower(token.TagName)
			stack := pending[name]
			if len(stack) == 0 {
				orphanCloses = append(orphanCloses, i)
				continue
			}
			open := stack[len(stack)-1]
			pending[name] = stack[:len(stack)-1]
			m.partner[open] = i
			m.partner[i] = open
		}
	}

	m.unmatched = orphanCloses
	for _, stack := range pending {
		m.unmatched = append(m.unmatched, stack...)
	}
	sort.Ints(m.unmatched)

	m.findTextParents(tokens, blankIsText)
	return m
}

// findTextParents marks the innermost open matched element of every text token.
func (m *Matches) findTextParents(tokens []Token, blankIsText bool) {
	var open []int

	for i, token := range tokens {
		switch {
		case token.Kind == KindOpenTag && m.IsMatched(i):
			open = append(open, i)

		case token.Kind == KindCloseTag && m.IsMatched(i):
			// Crossed pairs (<a><b></a></b>) may close an element below the top.
			start := m.partner[i]
			for j := len(open) - 1; j >= 0; j-- {
				if open[j] == start {
					open = append(open[:j], open[j+1:]...)
					break
				}
			}

		case token.Kind == KindText && (blankIsText || !token.Blank):
			if len(open) > 0 {
				m.textParents[open[len(open)-1]] = struct{}{}
			}
		}
	}
}

// IsMatched reports whether token i is an open or close tag with a partner.
func (m *Matches) IsMatched(i int) bool {
	_, ok := m.partner[i]
	return ok
}

// Partner returns the index of the tag paired with token i.
func (m *Matches) Partner(i int) (int, bool) {
	j, ok := m.partner[i]
	return j, ok
}

// ContainsText reports whether the matched open tag at i directly contains text.
func (m *Matches) ContainsText(i int) bool {
	_, ok := m.textParents[i]
	return ok
}

// Unmatched returns the indices of open and close tags left unpaired, in order.
func (m *Matches) Unmatched() []int {
	return m.unmatched
}

// Document is a tokenized and matched markup string.
type Document struct {
	Tokens  []Token
	Matches *Matches
}

// Parse tokenizes markup and matches its tags.
func Parse(markup string, blankIsText bool) (*Document, error) {
	tokens, err := Tokenize(markup)
	if err != nil {
		return nil, err
	}
	return &Document{
		Tokens:  tokens,
		Matches: MatchTags(tokens, blankIsText),
	}, nil
}
