package img2pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// readmeName is matched case-sensitively, per convention.
const readmeName = "README.md"

// Format identifies a supported image encoding.
// The set is closed: only JPEG and PNG files are collected.
type Format int

// Supported image formats.
const (
	FormatJPEG Format = iota
	FormatPNG
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "JPEG"
	case FormatPNG:
		return "PNG"
	}
	return "unknown"
}

// imageType returns the type string understood by the PDF canvas.
func (f Format) imageType() string {
	switch f {
	case FormatJPEG:
		return "JPG"
	case FormatPNG:
		return "PNG"
	}
	return ""
}

// formatForExt maps a lowercase file extension to a Format.
func formatForExt(ext string) (Format, bool) {
	switch ext {
	case ".jpg", ".jpeg":
		return FormatJPEG, true
	case ".png":
		return FormatPNG, true
	}
	return 0, false
}

// ImageFile is one collected image.
type ImageFile struct {
	Path   string // Absolute or caller-relative path
	Name   string // Base filename, used for ordering and error messages
	Format Format
}

// Listing is the result of scanning a source directory.
type Listing struct {
	Dir        string      // The scanned directory
	Images     []ImageFile // Sorted alphanumerically by filename
	ReadmePath string      // Empty if no README.md is present
}

// HasReadme reports whether the directory contains a README.md.
func (l *Listing) HasReadme() bool { return l.ReadmePath != "" }

// Collect scans dir for image files and an optional README.md.
//
// Images are regular files whose extension matches .jpg, .jpeg or .png
// (case-insensitive), returned sorted alphanumerically by filename.
// Returns ErrNotDirectory if dir does not exist or is not a directory,
// and ErrNoImages if no image qualifies (a README alone is not enough).
func Collect(dir string) (*Listing, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
		}
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	listing := &Listing{Dir: dir}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if name == readmeName {
			listing.ReadmePath = filepath.Join(dir, name)
			continue
		}
		format, ok := formatForExt(strings.ToLower(filepath.Ext(name)))
		if !ok {
			continue
		}
		listing.Images = append(listing.Images, ImageFile{
			Path:   filepath.Join(dir, name),
			Name:   name,
			Format: format,
		})
	}

	sort.Slice(listing.Images, func(i, j int) bool {
		return listing.Images[i].Name < listing.Images[j].Name
	})

	if len(listing.Images) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoImages, dir)
	}

	return listing, nil
}
