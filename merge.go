package img2pdf

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// pdfcpuSetup keeps pdfcpu from touching a user config directory.
var pdfcpuSetup sync.Once

// pdfcpuMerger concatenates part documents and counts pages.
type pdfcpuMerger struct{}

func newMerger() *pdfcpuMerger {
	pdfcpuSetup.Do(api.DisableConfigDir)
	return &pdfcpuMerger{}
}

// Merge concatenates the given part PDFs in order into one document.
func (m *pdfcpuMerger) Merge(parts [][]byte) ([]byte, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: nothing to merge", ErrMergePDF)
	}

	readers := make([]io.ReadSeeker, len(parts))
	for i, p := range parts {
		readers[i] = bytes.NewReader(p)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMergePDF, err)
	}
	return buf.Bytes(), nil
}

// PageCount returns the number of pages in a PDF document.
func (m *pdfcpuMerger) PageCount(pdf []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(pdf), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: counting pages: %v", ErrMergePDF, err)
	}
	return n, nil
}
