package pipeline

// Block is one structural markdown element.
// The set of implementations is closed: Heading, Paragraph, CodeBlock,
// List, Quote and Rule.
type Block interface {
	block()
}

// Span is a run of inline text with uniform styling.
// Nested emphasis is resolved during parsing, so Bold and Italic may both
// be set on a single span.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool   // inline code, rendered monospaced
	Link   string // non-empty for hyperlinks
}

// Heading is an ATX or setext heading, level 1-6.
type Heading struct {
	Level int
	Spans []Span
}

// Paragraph is a run of flowed text.
type Paragraph struct {
	Spans []Span
}

// CodeBlock is a fenced or indented code block with preserved whitespace.
type CodeBlock struct {
	Language string // from the fence info string, may be empty
	Text     string // without the trailing newline
}

// ListItem is one entry of a List. Children holds nested blocks,
// typically sub-lists.
type ListItem struct {
	Spans    []Span
	Children []Block
}

// List is a bulleted or numbered list.
type List struct {
	Ordered bool
	Start   int // first number of an ordered list
	Items   []ListItem
}

// Quote is a blockquote wrapping nested blocks.
type Quote struct {
	Blocks []Block
}

// Rule is a thematic break.
type Rule struct{}

func (Heading) block()   {}
func (Paragraph) block() {}
func (CodeBlock) block() {}
func (List) block()      {}
func (Quote) block()     {}
func (Rule) block()      {}
