package img2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyInput     = errors.New("input directory cannot be empty")
	ErrNotDirectory   = errors.New("input path is not a directory")
	ErrNoImages       = errors.New("no JPG or PNG images found")
	ErrImageDecode    = errors.New("failed to decode image")
	ErrRenderMarkdown = errors.New("failed to render README")
	ErrMergePDF       = errors.New("failed to merge PDF parts")

	// Page settings validation errors.
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")
	ErrInvalidDPI      = errors.New("invalid image DPI")
)
