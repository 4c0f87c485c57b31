package img2pdf

import (
	"context"
	"fmt"
	"os"
)

// Stage interfaces. Implementations are injected in tests; production
// wiring happens in NewConverter.
type (
	collector interface {
		Collect(dir string) (*Listing, error)
	}
	prefaceRenderer interface {
		RenderPreface(ctx context.Context, source []byte, geo Geometry) ([]byte, error)
	}
	imageRenderer interface {
		RenderImages(ctx context.Context, images []ImageFile, geo Geometry, dpi float64) ([]byte, error)
	}
	merger interface {
		Merge(parts [][]byte) ([]byte, error)
		PageCount(pdf []byte) (int, error)
	}
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ collector       = dirCollector{}
	_ prefaceRenderer = (*markdownRenderer)(nil)
	_ imageRenderer   = (*fpdfImageRenderer)(nil)
	_ merger          = (*pdfcpuMerger)(nil)
)

// dirCollector adapts the package-level Collect to the stage interface.
type dirCollector struct{}

func (dirCollector) Collect(dir string) (*Listing, error) { return Collect(dir) }

// Converter orchestrates the directory-to-PDF pipeline:
// Scan -> RenderPreface (optional) -> RenderImages -> Merge.
// A Converter is stateless between conversions and safe to reuse.
type Converter struct {
	cfg      converterConfig
	files    collector
	preface  prefaceRenderer
	images   imageRenderer
	assembly merger
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithPageSettings, WithDPI).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg:     converterConfig{page: *DefaultPageSettings()},
		files:   dirCollector{},
		preface: newMarkdownRenderer(),
		images:  &fpdfImageRenderer{},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Create merger if not injected (e.g., by tests)
	if c.assembly == nil {
		c.assembly = newMerger()
	}

	return c
}

// Convert runs the full pipeline and returns the merged document.
// The context is used for cancellation; any stage failure aborts the
// run and nothing is written anywhere.
func (c *Converter) Convert(ctx context.Context, input Input) (*ConvertResult, error) {
	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	settings := &c.cfg.page
	if input.Page != nil {
		settings = input.Page
	}
	page := settings.resolve()
	geo := page.geometry()

	listing, err := c.files.Collect(input.Dir)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var parts [][]byte

	// Optional README preface comes first
	if listing.HasReadme() && !input.SkipReadme {
		source, err := os.ReadFile(listing.ReadmePath) // #nosec G304 -- path comes from the scanned directory
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrRenderMarkdown, listing.ReadmePath, err)
		}
		prefacePDF, err := c.preface.RenderPreface(ctx, source, geo)
		if err != nil {
			return nil, err
		}
		parts = append(parts, prefacePDF)
	}

	imagePDF, err := c.images.RenderImages(ctx, listing.Images, geo, page.DPI)
	if err != nil {
		return nil, err
	}
	parts = append(parts, imagePDF)

	merged, err := c.assembly.Merge(parts)
	if err != nil {
		return nil, err
	}

	pages, err := c.assembly.PageCount(merged)
	if err != nil {
		return nil, err
	}

	return &ConvertResult{
		PDF:          merged,
		Pages:        pages,
		PrefacePages: pages - len(listing.Images),
		Images:       len(listing.Images),
	}, nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input
// manually. CLI users have their flags and config validated earlier;
// both paths converge here.
func (c *Converter) validateInput(input Input) error {
	if input.Dir == "" {
		return ErrEmptyInput
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return (&c.cfg.page).Validate()
}
