package img2pdf

// Notes:
// - fitImage: scaling rule, centering, never-upscale policy
// - RenderImages: one page per image, decode failure handling

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestFitImage - Placement Math
// ---------------------------------------------------------------------------

func TestFitImage(t *testing.T) {
	t.Parallel()

	geo := letterGeometry() // content box 7.0 x 9.5, margin 0.75

	tests := []struct {
		name       string
		pxW, pxH   int
		dpi        float64
		wantW      float64
		wantH      float64
		wantX      float64
		wantY      float64
		wantScale1 bool
	}{
		{
			name: "landscape 2:1 binds to content width",
			pxW:  4000, pxH: 2000, dpi: 96,
			wantW: 7.0, wantH: 3.5,
			wantX: 0.75, wantY: 3.75, // centered in the 9.5in content height
		},
		{
			name: "portrait 1:2 binds to content height",
			pxW:  2000, pxH: 4000, dpi: 96,
			wantW: 4.75, wantH: 9.5,
			wantX: 1.875, wantY: 0.75, // centered in the 7in content width
		},
		{
			name: "large square binds to width",
			pxW:  5000, pxH: 5000, dpi: 96,
			wantW: 7.0, wantH: 7.0,
			wantX: 0.75, wantY: 2.0,
		},
		{
			name: "small image keeps native size",
			pxW:  192, pxH: 96, dpi: 96,
			wantW: 2.0, wantH: 1.0,
			wantX: 3.25, wantY: 5.0,
			wantScale1: true,
		},
		{
			name: "dpi changes the native size",
			pxW:  192, pxH: 96, dpi: 48,
			wantW: 4.0, wantH: 2.0,
			wantX: 2.25, wantY: 4.5,
			wantScale1: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := fitImage(tt.pxW, tt.pxH, geo, tt.dpi)

			if !approxEqual(got.W, tt.wantW) || !approxEqual(got.H, tt.wantH) {
				t.Errorf("fitImage() size = %.4fx%.4f, want %.4fx%.4f", got.W, got.H, tt.wantW, tt.wantH)
			}
			if !approxEqual(got.X, tt.wantX) || !approxEqual(got.Y, tt.wantY) {
				t.Errorf("fitImage() offset = (%.4f, %.4f), want (%.4f, %.4f)", got.X, got.Y, tt.wantX, tt.wantY)
			}
			if tt.wantScale1 && !approxEqual(got.Scale, 1.0) {
				t.Errorf("fitImage() scale = %.4f, want 1.0 (never upscale)", got.Scale)
			}
		})
	}
}

func TestFitImage_Invariants(t *testing.T) {
	t.Parallel()

	geo := letterGeometry()
	dims := [][2]int{{1, 1}, {10000, 1}, {1, 10000}, {643, 1021}, {3024, 4032}, {800, 600}}

	for _, d := range dims {
		p := fitImage(d[0], d[1], geo, DefaultDPI)

		if p.W > geo.ContentW()+1e-9 || p.H > geo.ContentH()+1e-9 {
			t.Errorf("fitImage(%dx%d) exceeds content box: %.4fx%.4f", d[0], d[1], p.W, p.H)
		}
		if p.Scale > 1.0+1e-9 {
			t.Errorf("fitImage(%dx%d) upscales: %.4f", d[0], d[1], p.Scale)
		}
		// Scaled-down images touch at least one bound
		if p.Scale < 1.0-1e-9 && !approxEqual(p.W, geo.ContentW()) && !approxEqual(p.H, geo.ContentH()) {
			t.Errorf("fitImage(%dx%d) scaled but touches no bound: %.4fx%.4f", d[0], d[1], p.W, p.H)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRenderImages - Page Production
// ---------------------------------------------------------------------------

func TestRenderImages_OnePagePerImage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	images := []ImageFile{
		{Path: writeJPEG(t, dir, "a.jpg", 40, 20), Name: "a.jpg", Format: FormatJPEG},
		{Path: writePNG(t, dir, "b.png", 20, 40), Name: "b.png", Format: FormatPNG},
		{Path: writePNG(t, dir, "c.png", 30, 30), Name: "c.png", Format: FormatPNG},
	}

	r := &fpdfImageRenderer{}
	pdf, err := r.RenderImages(context.Background(), images, letterGeometry(), DefaultDPI)
	if err != nil {
		t.Fatalf("RenderImages() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatal("RenderImages() output is not a PDF")
	}

	pages, err := newMerger().PageCount(pdf)
	if err != nil {
		t.Fatalf("PageCount() error = %v", err)
	}
	if pages != len(images) {
		t.Errorf("PageCount() = %d, want %d", pages, len(images))
	}
}

func TestRenderImages_DecodeFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	corrupt := writeFile(t, dir, "corrupt.jpg", []byte("not an image at all"))
	empty := writeFile(t, dir, "empty.png", nil)

	tests := []struct {
		name  string
		image ImageFile
	}{
		{
			name:  "corrupt file",
			image: ImageFile{Path: corrupt, Name: "corrupt.jpg", Format: FormatJPEG},
		},
		{
			name:  "zero-byte file",
			image: ImageFile{Path: empty, Name: "empty.png", Format: FormatPNG},
		},
	}

	r := &fpdfImageRenderer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := r.RenderImages(context.Background(), []ImageFile{tt.image}, letterGeometry(), DefaultDPI)
			if !errors.Is(err, ErrImageDecode) {
				t.Fatalf("RenderImages() error = %v, want ErrImageDecode", err)
			}
			if !strings.Contains(err.Error(), tt.image.Name) {
				t.Errorf("error %q does not name the offending file %q", err, tt.image.Name)
			}
		})
	}
}

func TestRenderImages_ContextCanceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	images := []ImageFile{
		{Path: writePNG(t, dir, "a.png", 10, 10), Name: "a.png", Format: FormatPNG},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &fpdfImageRenderer{}
	_, err := r.RenderImages(ctx, images, letterGeometry(), DefaultDPI)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RenderImages() error = %v, want context.Canceled", err)
	}
}
