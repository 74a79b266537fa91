// Package pipeline turns PDF documents into per-page PNG images and
// normalizes their orientation ahead of text recognition.
//
// All heavy lifting is delegated to external command-line tools: the Poppler
// "pdfimages" utility for rasterization, Tesseract in legacy OSD mode for
// orientation detection, and ImageMagick "mogrify" for in-place rotation.
// This package resolves paths, invokes the tools, parses their text output,
// and maps generated files back to sorted absolute paths.
package pipeline

import (
	"os/exec"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/ocrtools/pdfprep/config"
)

// lookPath is the exec.LookPath implementation used by the availability
// probes. Tests may replace it to simulate a missing binary.
var lookPath = exec.LookPath

// PagePreprocessor is the surface the MCP tools are built on.
// main.go accepts this interface so tests can inject a mock.
type PagePreprocessor interface {
	PDFToImages(pdfPath, outputDir string) ([]string, error)
	PreprocessImage(imagePath string, params ...string) (string, error)
	ProbePDF(pdfPath string) (int, error)
	MaxPages() int
}

// Preprocessor orchestrates the external rasterizer, OCR, and rotation
// tools. Every invocation blocks until the subprocess exits; no timeout is
// applied. The zero value is not usable; construct with NewPreprocessor.
type Preprocessor struct {
	cfg *config.Config
}

// NewPreprocessor creates a Preprocessor using environment-driven config.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{cfg: config.Load()}
}

// MaxPages returns the highest page index the output collector can match at
// the configured digit width.
func (p *Preprocessor) MaxPages() int {
	return p.cfg.MaxPages()
}

// PDFToImages rasterizes pdfPath into one PNG per embedded page image and
// returns the generated files as absolute paths, sorted lexicographically.
// With zero-padded page indices that order coincides with page order up to
// MaxPages.
//
// Images are written to outputDir, or to the PDF's own directory when
// outputDir is empty. The directory's lifecycle belongs to the caller; this
// package does not clean up, even on failure.
func (p *Preprocessor) PDFToImages(pdfPath, outputDir string) ([]string, error) {
	absPDF, targetDir, stem, err := p.resolvePaths(pdfPath, outputDir)
	if err != nil {
		return nil, err
	}

	if pages, err := p.ProbePDF(absPDF); err == nil && pages > p.cfg.MaxPages() {
		log.WithFields(log.Fields{
			"pdf":   absPDF,
			"pages": pages,
			"max":   p.cfg.MaxPages(),
		}).Warn("page count exceeds collector ceiling; trailing pages will be missed")
	}

	if err := p.rasterize(absPDF, targetDir, stem); err != nil {
		return nil, err
	}

	names, err := matchingImages(stem, targetDir, p.cfg.DigitWidth)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(targetDir, name))
	}
	sort.Strings(paths)

	log.WithFields(log.Fields{
		"pdf":    absPDF,
		"images": len(paths),
	}).Debug("converted pdf to images")
	return paths, nil
}

// PreprocessImage detects the orientation of a single image and rotates it
// in place to upright. It returns the applied rotation angle in degrees, as
// reported by the OCR tool. params override the OCR invocation parameters;
// when omitted, legacy-engine OSD mode is used (see DefaultOSDParams).
//
// Images the OCR tool reports no orientation for fail with ErrNoRotateLine.
func (p *Preprocessor) PreprocessImage(imagePath string, params ...string) (string, error) {
	rotate, err := p.DetectRotation(imagePath, params)
	if err != nil {
		return "", err
	}
	log.WithFields(log.Fields{
		"image":  imagePath,
		"rotate": rotate,
	}).Debug("rotating image")
	if err := p.rotateInPlace(imagePath, rotate); err != nil {
		return "", err
	}
	return rotate, nil
}
