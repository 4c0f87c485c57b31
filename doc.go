// Package img2pdf converts a directory of images into a single PDF document.
//
// # Quick Start
//
// Create a converter and point it at a directory:
//
//	conv := img2pdf.NewConverter()
//
//	result, err := conv.Convert(ctx, img2pdf.Input{
//	    Dir: "./photos",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("photos.pdf", result.PDF, 0644)
//
// The result contains the merged PDF bytes plus page counts for the preface
// and image sections.
//
// # Conversion Pipeline
//
// The conversion is a single linear pass:
//
//  1. Directory scan: collect .jpg/.jpeg/.png files (sorted by filename)
//     and an optional README.md.
//  2. Preface rendering: README.md is parsed via Goldmark into a block tree
//     and laid out onto pages with flowed text (gofpdf).
//  3. Image rendering: each image gets one page, shrunk to fit the content
//     box and centered, never upscaled.
//  4. Assembly: the preface and image parts are merged in order (pdfcpu).
//
// Any failure aborts the run; no partial document is produced.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := img2pdf.NewConverter(
//	    img2pdf.WithPageSettings(img2pdf.PageSettings{Size: "a4", Margin: 1.0}),
//	    img2pdf.WithDPI(300),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, img2pdf.Input{
//	    Dir:        "./scans",
//	    Page:       &img2pdf.PageSettings{Margin: 0.5},
//	    SkipReadme: true,
//	})
package img2pdf
