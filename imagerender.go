package img2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"os"

	_ "image/jpeg" // decoder for probing .jpg/.jpeg dimensions
	_ "image/png"  // decoder for probing .png dimensions

	"github.com/jung-kurt/gofpdf"
)

// Placement is the computed draw rectangle for one image, in inches.
type Placement struct {
	X, Y  float64 // top-left corner on the page
	W, H  float64 // draw size
	Scale float64 // applied to the natural size; at most 1.0
}

// fitImage computes where an image of pxW by pxH pixels lands on a page.
//
// The natural size is pixels divided by dpi. The image shrinks uniformly
// until it fits both content bounds, never grows, and is centered in
// both axes. At least one axis touches its bound unless the image fits
// at natural size.
func fitImage(pxW, pxH int, geo Geometry, dpi float64) Placement {
	naturalW := float64(pxW) / dpi
	naturalH := float64(pxH) / dpi

	scale := math.Min(geo.ContentW()/naturalW, geo.ContentH()/naturalH)
	if scale > 1 {
		scale = 1
	}

	w := naturalW * scale
	h := naturalH * scale
	return Placement{
		X:     geo.Margin + (geo.ContentW()-w)/2,
		Y:     geo.Margin + (geo.ContentH()-h)/2,
		W:     w,
		H:     h,
		Scale: scale,
	}
}

// fpdfImageRenderer draws one page per image on a fixed-geometry canvas.
type fpdfImageRenderer struct{}

// RenderImages produces a standalone PDF with one page per image, in the
// given order. Fails with ErrImageDecode on the first unreadable or
// zero-sized image; no partial output is returned.
func (r *fpdfImageRenderer) RenderImages(ctx context.Context, images []ImageFile, geo Geometry, dpi float64) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: geo.PageW, Ht: geo.PageH},
	})
	pdf.SetAutoPageBreak(false, 0)

	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pxW, pxH, err := probeImage(img.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrImageDecode, img.Name, err)
		}

		placement := fitImage(pxW, pxH, geo, dpi)
		opts := gofpdf.ImageOptions{ImageType: img.Format.imageType()}

		pdf.AddPage()
		pdf.RegisterImageOptions(img.Path, opts)
		pdf.ImageOptions(img.Path, placement.X, placement.Y, placement.W, placement.H, false, opts, 0, "")
		if pdf.Err() {
			return nil, fmt.Errorf("%w: %s: %v", ErrImageDecode, img.Name, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering image pages: %w", err)
	}
	return buf.Bytes(), nil
}

// probeImage returns the pixel dimensions of an image file.
// Rejects empty, truncated and zero-sized images so they cannot turn
// into silently blank pages.
func probeImage(path string) (int, int, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the scanned directory
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, errors.New("image has zero dimension")
	}
	return cfg.Width, cfg.Height, nil
}
