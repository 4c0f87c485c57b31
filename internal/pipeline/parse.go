package pipeline

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// markdown is the shared goldmark instance. Only its parser is used;
// rendering happens against the block tree, never through HTML.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM, // Tables, strikethrough, autolinks, task lists
	),
)

// Parse converts markdown source into a block tree.
// Elements without a variant (raw HTML, tables) are skipped; an empty
// result means the source had no renderable content.
func Parse(src []byte) []Block {
	doc := markdown.Parser().Parse(text.NewReader(src))
	return parseBlocks(doc, src)
}

// parseBlocks converts the children of parent into blocks.
func parseBlocks(parent ast.Node, src []byte) []Block {
	var blocks []Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b, ok := parseBlock(n, src); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// parseBlock converts one AST node into its block variant.
func parseBlock(n ast.Node, src []byte) (Block, bool) {
	switch t := n.(type) {
	case *ast.Heading:
		return Heading{Level: t.Level, Spans: parseSpans(t, src)}, true

	case *ast.Paragraph, *ast.TextBlock:
		spans := parseSpans(n, src)
		if len(spans) == 0 {
			return nil, false
		}
		return Paragraph{Spans: spans}, true

	case *ast.FencedCodeBlock:
		return CodeBlock{
			Language: string(t.Language(src)),
			Text:     blockLines(t, src),
		}, true

	case *ast.CodeBlock:
		return CodeBlock{Text: blockLines(t, src)}, true

	case *ast.List:
		return parseList(t, src), true

	case *ast.Blockquote:
		inner := parseBlocks(t, src)
		if len(inner) == 0 {
			return nil, false
		}
		return Quote{Blocks: inner}, true

	case *ast.ThematicBreak:
		return Rule{}, true

	default:
		// Raw HTML and unhandled extensions are not rendered.
		return nil, false
	}
}

// parseList converts an AST list, recursing into nested lists.
func parseList(l *ast.List, src []byte) List {
	out := List{Ordered: l.IsOrdered(), Start: l.Start}
	for n := l.FirstChild(); n != nil; n = n.NextSibling() {
		item, ok := n.(*ast.ListItem)
		if !ok {
			continue
		}
		var li ListItem
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch cc := c.(type) {
			case *ast.TextBlock, *ast.Paragraph:
				li.Spans = append(li.Spans, parseSpans(c, src)...)
			case *ast.List:
				li.Children = append(li.Children, parseList(cc, src))
			default:
				if b, ok := parseBlock(c, src); ok {
					li.Children = append(li.Children, b)
				}
			}
		}
		out.Items = append(out.Items, li)
	}
	return out
}

// spanState carries the inline styling inherited from enclosing nodes.
type spanState struct {
	bold   bool
	italic bool
	code   bool
	link   string
}

// parseSpans flattens the inline children of n into styled spans.
func parseSpans(n ast.Node, src []byte) []Span {
	var spans []Span
	collectSpans(n, src, spanState{}, &spans)
	return spans
}

// collectSpans walks inline nodes, resolving nested emphasis into the
// span state as it descends.
func collectSpans(n ast.Node, src []byte, st spanState, out *[]Span) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			appendText(out, string(t.Segment.Value(src)), st)
			if t.SoftLineBreak() || t.HardLineBreak() {
				appendText(out, " ", st)
			}

		case *ast.String:
			appendText(out, string(t.Value), st)

		case *ast.Emphasis:
			next := st
			if t.Level >= 2 {
				next.bold = true
			} else {
				next.italic = true
			}
			collectSpans(t, src, next, out)

		case *ast.CodeSpan:
			next := st
			next.code = true
			collectSpans(t, src, next, out)

		case *ast.Link:
			next := st
			next.link = string(t.Destination)
			collectSpans(t, src, next, out)

		case *ast.AutoLink:
			url := string(t.URL(src))
			next := st
			next.link = url
			appendText(out, url, next)

		case *ast.Image:
			// Preface pages are text-only; images render as their alt text.
			collectSpans(t, src, st, out)

		default:
			// Strikethrough and other extensions degrade to plain text.
			collectSpans(c, src, st, out)
		}
	}
}

// appendText adds a span for text, skipping empties.
func appendText(out *[]Span, text string, st spanState) {
	if text == "" {
		return
	}
	*out = append(*out, Span{
		Text:   text,
		Bold:   st.bold,
		Italic: st.italic,
		Code:   st.code,
		Link:   st.link,
	})
}

// blockLines joins the source lines of a code block, dropping the
// trailing newline so renderers control final spacing.
func blockLines(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimRight(sb.String(), "\n")
}
