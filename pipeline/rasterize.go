package pipeline

// rasterize.go — pdfimages invocation and output collection.
//
// pdfimages only writes into its current working directory, so the
// subprocess runs with Cmd.Dir set to the target directory. The process-wide
// working directory is never touched, which keeps concurrent conversions
// safe.

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

// RasterError is returned for every failure of the rasterizer invocation:
// non-zero exit, missing binary, or anything else that goes wrong running
// the tool. Stderr carries the tool's captured error output when there is
// any.
type RasterError struct {
	PDFPath string
	Stderr  string
	Err     error
}

func (e *RasterError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("rasterize %s: %v: %s", e.PDFPath, e.Err, e.Stderr)
	}
	return fmt.Sprintf("rasterize %s: %v", e.PDFPath, e.Err)
}

func (e *RasterError) Unwrap() error { return e.Err }

// RasterizerAvailable returns true when the configured rasterizer binary is
// on PATH.
func (p *Preprocessor) RasterizerAvailable() bool {
	_, err := lookPath(p.cfg.Rasterizer)
	return err == nil
}

// rasterize runs the rasterizer over absPDF with outputDir as the
// subprocess's working directory. One PNG per embedded page image is written
// there as a side effect, named <stem>-<index>*.png; nothing is cleaned up
// on failure.
func (p *Preprocessor) rasterize(absPDF, outputDir, stem string) error {
	tool := p.cfg.Rasterizer
	if _, err := lookPath(tool); err != nil {
		rerr := &RasterError{
			PDFPath: absPDF,
			Err:     fmt.Errorf("%s is not installed or not on PATH; install Poppler: %w", tool, err),
		}
		log.WithField("tool", tool).Error(rerr.Err)
		return rerr
	}

	cmd := exec.Command(tool, "-png", absPDF, stem)
	cmd.Dir = outputDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		rerr := &RasterError{
			PDFPath: absPDF,
			Stderr:  strings.TrimSpace(strings.ToValidUTF8(stderr.String(), "�")),
			Err:     err,
		}
		log.WithFields(log.Fields{
			"tool": tool,
			"pdf":  absPDF,
		}).Errorf("rasterizer failed: %v; stderr: %s", err, rerr.Stderr)
		return rerr
	}
	return nil
}

// matchingImages lists dir and returns the names generated for stem: a
// literal stem prefix, a dash, a zero-padded page index of exactly width
// digits, any suffix, and a ".png" extension. Zero matches is not an error.
func matchingImages(stem, dir string, width int) ([]string, error) {
	re, err := regexp.Compile(
		fmt.Sprintf(`^%s-\d{%d}.*\.png$`, regexp.QuoteMeta(stem), width))
	if err != nil {
		return nil, fmt.Errorf("image name pattern for %q: %w", stem, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan output dir %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && re.MatchString(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
