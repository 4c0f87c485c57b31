package img2pdf

import (
	"fmt"
	"strings"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.75
)

// Image DPI bounds. DPI maps pixel dimensions to physical size when an
// image is smaller than the content box and drawn at native size.
const (
	MinDPI     = 18.0
	MaxDPI     = 1200.0
	DefaultDPI = 96.0
)

// pageDims maps a page size name to its width and height in inches.
var pageDims = map[string][2]float64{
	PageSizeLetter: {8.5, 11.0},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14.0},
}

// PageSettings configures the page geometry for the whole run.
type PageSettings struct {
	Size   string  // "letter", "a4", "legal"
	Margin float64 // inches, applied to all sides
	DPI    float64 // pixels per inch for native-size images
}

// DefaultPageSettings returns page settings with default values:
// Letter pages, 0.75in margins, 96 DPI.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:   PageSizeLetter,
		Margin: DefaultMargin,
		DPI:    DefaultDPI,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Zero-valued fields are valid and fall back to defaults.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if p.Size != "" {
		if _, ok := pageDims[strings.ToLower(p.Size)]; !ok {
			return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
		}
	}

	if p.Margin != 0 && (p.Margin < MinMargin || p.Margin > MaxMargin) {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	if p.DPI != 0 && (p.DPI < MinDPI || p.DPI > MaxDPI) {
		return fmt.Errorf("%w: %.0f (must be between %.0f and %.0f)", ErrInvalidDPI, p.DPI, MinDPI, MaxDPI)
	}

	return nil
}

// resolve fills zero-valued fields with defaults and returns a complete copy.
// Safe to call on nil.
func (p *PageSettings) resolve() PageSettings {
	out := PageSettings{Size: PageSizeLetter, Margin: DefaultMargin, DPI: DefaultDPI}
	if p == nil {
		return out
	}
	if p.Size != "" {
		out.Size = strings.ToLower(p.Size)
	}
	if p.Margin != 0 {
		out.Margin = p.Margin
	}
	if p.DPI != 0 {
		out.DPI = p.DPI
	}
	return out
}

// geometry returns the resolved page box for these settings.
func (p *PageSettings) geometry() Geometry {
	r := p.resolve()
	dims := pageDims[r.Size]
	return Geometry{PageW: dims[0], PageH: dims[1], Margin: r.Margin}
}

// Geometry is the immutable page box for a run, in inches.
// The content box is the page minus the margin on all four sides.
type Geometry struct {
	PageW  float64
	PageH  float64
	Margin float64
}

// ContentW returns the usable width inside the margins.
func (g Geometry) ContentW() float64 { return g.PageW - 2*g.Margin }

// ContentH returns the usable height inside the margins.
func (g Geometry) ContentH() float64 { return g.PageH - 2*g.Margin }

// Input contains conversion parameters.
type Input struct {
	Dir        string        // Directory containing images (required)
	Page       *PageSettings // Page settings (optional, nil = converter defaults)
	SkipReadme bool          // Omit the README.md preface even when present
}

// ConvertResult holds the assembled document and its page accounting.
type ConvertResult struct {
	PDF          []byte // The merged document
	Pages        int    // Total page count
	PrefacePages int    // Pages rendered from README.md (0 if none)
	Images       int    // Number of image pages
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	page PageSettings
}

// WithPageSettings sets the default page settings for the converter.
// Input.Page still overrides them per conversion.
func WithPageSettings(p PageSettings) Option {
	return func(c *Converter) {
		c.cfg.page = p
	}
}

// WithDPI sets the pixel density used to size images drawn at native size.
// Panics if dpi is out of range (programmer error, similar to time.NewTicker).
func WithDPI(dpi float64) Option {
	if dpi < MinDPI || dpi > MaxDPI {
		panic("img2pdf: WithDPI value out of range")
	}
	return func(c *Converter) {
		c.cfg.page.DPI = dpi
	}
}
