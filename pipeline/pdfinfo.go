package pipeline

// pdfinfo.go — PDF introspection via github.com/ledongthuc/pdf.
//
// Used to fail fast on unreadable input and to warn when a document has more
// pages than the output collector can match. The rasterizer remains the
// authority on what the PDF actually contains.

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ProbePDF opens pdfPath and returns its page count. It fails for files
// that are missing, unreadable, or not parseable as PDF.
func (p *Preprocessor) ProbePDF(pdfPath string) (int, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("open pdf %s: %w", pdfPath, err)
	}
	defer func() { _ = f.Close() }()

	return r.NumPage(), nil
}
