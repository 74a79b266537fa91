package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolvePaths turns a possibly-relative PDF path into its absolute form and
// derives the directory images are written to and the filename stem used to
// prefix them. targetDir is the override when non-empty (made absolute),
// otherwise the PDF's own directory.
func (p *Preprocessor) resolvePaths(pdfPath, outputDir string) (absPDF, targetDir, stem string, err error) {
	absPDF, err = filepath.Abs(pdfPath)
	if err != nil {
		return "", "", "", fmt.Errorf("resolve pdf path %s: %w", pdfPath, err)
	}

	targetDir = filepath.Dir(absPDF)
	if outputDir != "" {
		targetDir, err = filepath.Abs(outputDir)
		if err != nil {
			return "", "", "", fmt.Errorf("resolve output dir %s: %w", outputDir, err)
		}
	}

	return absPDF, targetDir, stemOf(filepath.Base(absPDF), p.cfg.LegacyStem), nil
}

// stemOf strips one trailing ".pdf" extension (case-insensitive) from
// filename. In legacy mode the name is instead truncated at the first ".pdf"
// occurrence, so "a.pdf.pdf" becomes "a" — kept only for compatibility with
// output produced under the old behavior.
func stemOf(filename string, legacy bool) string {
	if legacy {
		if i := strings.Index(filename, ".pdf"); i >= 0 {
			return filename[:i]
		}
		return filename
	}
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return filename[:len(filename)-len(".pdf")]
	}
	return filename
}
