package img2pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/jung-kurt/gofpdf"

	"github.com/alnah/go-img2pdf/internal/pipeline"
)

// pt converts points to inches, the document unit.
const pt = 1.0 / 72.0

// Preface text metrics, in points. Leading values are converted to
// inches at use sites.
const (
	bodyFontSize = 10.0
	bodyLeading  = 14.0 * pt
	codeFontSize = 9.0
	codeLeading  = 13.0 * pt
	spaceAfter   = 6.0 * pt
	listIndent   = 18.0 * pt
	quoteIndent  = 24.0 * pt
	codeIndent   = 12.0 * pt
)

// headingStyle maps a heading level to its size and surrounding space.
type headingStyle struct {
	size   float64 // points
	before float64 // inches
	after  float64 // inches
}

// headingStyles covers levels 1-4; deeper levels clamp to level 4.
var headingStyles = map[int]headingStyle{
	1: {size: 20, before: 14 * pt, after: 10 * pt},
	2: {size: 16, before: 12 * pt, after: 8 * pt},
	3: {size: 13, before: 10 * pt, after: 6 * pt},
	4: {size: 11, before: 8 * pt, after: 4 * pt},
}

// codeStyleName selects the chroma style for fenced code blocks.
const codeStyleName = "github"

// markdownRenderer lays a README block tree onto flowed pages.
type markdownRenderer struct{}

// newMarkdownRenderer creates the default preface renderer.
func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{}
}

// RenderPreface converts README markdown into one or more pages sized by
// geo, paginating automatically as content flows. Returns the pages as a
// standalone PDF. Fails with ErrRenderMarkdown if the source has no
// renderable content or layout fails.
func (r *markdownRenderer) RenderPreface(ctx context.Context, source []byte, geo Geometry) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(source)) == 0 {
		return nil, fmt.Errorf("%w: README is empty", ErrRenderMarkdown)
	}

	blocks := pipeline.Parse(source)
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: README has no renderable content", ErrRenderMarkdown)
	}

	doc := newPrefaceDoc(geo)
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc.renderBlock(b, 0)
	}

	return doc.output()
}

// prefaceDoc wraps a canvas in flowed-text mode: margins set, automatic
// page breaks on.
type prefaceDoc struct {
	pdf *gofpdf.Fpdf
	geo Geometry
}

func newPrefaceDoc(geo Geometry) *prefaceDoc {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: geo.PageW, Ht: geo.PageH},
	})
	pdf.SetMargins(geo.Margin, geo.Margin, geo.Margin)
	pdf.SetAutoPageBreak(true, geo.Margin)
	pdf.AddPage()
	return &prefaceDoc{pdf: pdf, geo: geo}
}

// output serializes the document, surfacing any deferred canvas error.
func (d *prefaceDoc) output() ([]byte, error) {
	if d.pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrRenderMarkdown, d.pdf.Error())
	}
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderMarkdown, err)
	}
	return buf.Bytes(), nil
}

// renderBlock dispatches on the block variant. indent is the extra left
// offset in inches accumulated by enclosing lists and quotes.
func (d *prefaceDoc) renderBlock(b pipeline.Block, indent float64) {
	switch t := b.(type) {
	case pipeline.Heading:
		d.renderHeading(t)
	case pipeline.Paragraph:
		d.writeSpans(t.Spans, "Helvetica", "", bodyFontSize, bodyLeading)
		d.pdf.Ln(bodyLeading + spaceAfter)
	case pipeline.CodeBlock:
		d.renderCode(t)
	case pipeline.List:
		d.renderList(t, indent)
	case pipeline.Quote:
		d.renderQuote(t, indent)
	case pipeline.Rule:
		d.renderRule()
	}
}

func (d *prefaceDoc) renderHeading(h pipeline.Heading) {
	level := h.Level
	if level > 4 {
		level = 4
	}
	style := headingStyles[level]
	leading := style.size * 1.2 * pt
	d.pdf.Ln(style.before)
	d.writeSpans(h.Spans, "Helvetica", "B", style.size, leading)
	d.pdf.Ln(leading + style.after)
}

// writeSpans writes inline spans on a flowing line, switching font style
// per span. The cursor is left at the end of the last span.
func (d *prefaceDoc) writeSpans(spans []pipeline.Span, family, baseStyle string, size, leading float64) {
	for _, s := range spans {
		styleStr := baseStyle
		if s.Bold && !strings.Contains(styleStr, "B") {
			styleStr += "B"
		}
		if s.Italic && !strings.Contains(styleStr, "I") {
			styleStr += "I"
		}
		if s.Code {
			d.pdf.SetFont("Courier", styleStr, size-1)
		} else {
			d.pdf.SetFont(family, styleStr, size)
		}
		if s.Link != "" {
			d.pdf.SetTextColor(0, 0, 238)
			d.pdf.WriteLinkString(leading, s.Text, s.Link)
			d.pdf.SetTextColor(0, 0, 0)
		} else {
			d.pdf.Write(leading, s.Text)
		}
	}
}

func (d *prefaceDoc) renderList(l pipeline.List, indent float64) {
	left := d.geo.Margin + indent + listIndent
	number := l.Start
	if number == 0 {
		number = 1
	}
	for _, item := range l.Items {
		bullet := "•"
		if l.Ordered {
			bullet = fmt.Sprintf("%d.", number)
			number++
		}
		d.pdf.SetLeftMargin(left)
		d.pdf.SetX(left)
		d.pdf.SetFont("Helvetica", "", bodyFontSize)
		d.pdf.Write(bodyLeading, bullet+"  ")
		d.writeSpans(item.Spans, "Helvetica", "", bodyFontSize, bodyLeading)
		d.pdf.Ln(bodyLeading + 3*pt)
		d.pdf.SetLeftMargin(d.geo.Margin)
		for _, child := range item.Children {
			d.renderBlock(child, indent+listIndent)
		}
	}
	d.pdf.Ln(spaceAfter - 3*pt)
}

func (d *prefaceDoc) renderQuote(q pipeline.Quote, indent float64) {
	left := d.geo.Margin + indent + quoteIndent
	d.pdf.SetLeftMargin(left)
	d.pdf.SetX(left)
	d.pdf.SetTextColor(85, 85, 85)
	for _, child := range q.Blocks {
		d.renderBlock(child, indent+quoteIndent)
	}
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetLeftMargin(d.geo.Margin)
	d.pdf.SetX(d.geo.Margin)
}

func (d *prefaceDoc) renderRule() {
	y := d.pdf.GetY() + 4*pt
	d.pdf.SetDrawColor(204, 204, 204)
	d.pdf.SetLineWidth(1 * pt)
	d.pdf.Line(d.geo.Margin, y, d.geo.Margin+d.geo.ContentW(), y)
	d.pdf.Ln(8*pt + spaceAfter)
}

// renderCode draws a fenced code block: light background, monospaced
// text, token colors from chroma when the language is known.
func (d *prefaceDoc) renderCode(cb pipeline.CodeBlock) {
	style := styles.Get(codeStyleName)
	if style == nil {
		style = styles.Fallback
	}

	d.pdf.SetFont("Courier", "", codeFontSize)
	d.startCodeLine()
	for _, tok := range d.codeTokens(cb) {
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				d.pdf.Ln(codeLeading)
				d.startCodeLine()
			}
			if part == "" {
				continue
			}
			entry := style.Get(tok.Type)
			if entry.Colour.IsSet() {
				d.pdf.SetTextColor(int(entry.Colour.Red()), int(entry.Colour.Green()), int(entry.Colour.Blue()))
			} else {
				d.pdf.SetTextColor(0, 0, 0)
			}
			d.pdf.Write(codeLeading, part)
		}
	}
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.Ln(codeLeading + spaceAfter)
}

// codeTokens tokenizes the block, falling back to one plain token when
// no lexer applies or tokenization fails.
func (d *prefaceDoc) codeTokens(cb pipeline.CodeBlock) []chroma.Token {
	lexer := lexers.Get(cb.Language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, cb.Text)
	if err != nil {
		return []chroma.Token{{Type: chroma.Text, Value: cb.Text}}
	}
	return it.Tokens()
}

// startCodeLine paints the background strip and indents the cursor.
// Breaks the page manually since Rect does not trigger auto page breaks.
func (d *prefaceDoc) startCodeLine() {
	if d.pdf.GetY()+codeLeading > d.geo.PageH-d.geo.Margin {
		d.pdf.AddPage()
	}
	d.pdf.SetFillColor(245, 245, 245)
	d.pdf.Rect(d.geo.Margin, d.pdf.GetY(), d.geo.ContentW(), codeLeading, "F")
	d.pdf.SetX(d.geo.Margin + codeIndent)
}
