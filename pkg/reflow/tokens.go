// tokens.go defines the token kinds produced by the markup tokenizer.
package reflow

// Kind represents the structural class of a token.
type Kind int

const (
	KindText                  Kind = iota // character data between tags
	KindComment                           // <!-- ... -->
	KindCData                             // <![CDATA[ ... ]]>
	KindDoctype                           // <!DOCTYPE ...>
	KindProcessingInstruction             // <?xml ...?> or <?target ...?>
	KindRawBlock                          // <script>...</script> or <style>...</style>, kept opaque
	KindOpenTag                           // <name ...>
	KindSelfClosingTag                    // <name .../>
	KindCloseTag                          // </name>
)

var kindNames = [...]string{
	KindText:                  "text",
	KindComment:               "comment",
	KindCData:                 "cdata",
	KindDoctype:               "doctype",
	KindProcessingInstruction: "processing-instruction",
	KindRawBlock:              "raw-block",
	KindOpenTag:               "open-tag",
	KindSelfClosingTag:        "self-closing-tag",
	KindCloseTag:              "close-tag",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Token represents a single token from markup tokenization.
type Token struct {
	Kind     Kind
	Content  string // exact substring consumed from the input
	TagName  string // set for OpenTag, SelfClosingTag, CloseTag (original case)
	Position int    // byte offset in original input
	Blank    bool   // set for Text tokens made only of whitespace
}

// IsTag reports whether the token carries a tag name.
func (t Token) IsTag() bool {
	switch t.Kind {
	case KindOpenTag, KindSelfClosingTag, KindCloseTag:
		return true
	}
	return false
}
