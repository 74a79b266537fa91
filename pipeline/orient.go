package pipeline

// orient.go — Tesseract orientation and script detection.

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ErrNoRotateLine is returned when the OCR tool's report contains no
// "Rotate:" line. Some images genuinely yield no orientation, so callers
// must be prepared for it.
var ErrNoRotateLine = errors.New(`no "Rotate:" line in OCR output`)

// DefaultOSDParams returns the OCR parameters for orientation detection.
// Orientation and script detection is only supported by the legacy engine
// (--oem 0); some Tesseract versions segfault when OSD runs under the
// default engine mode.
func DefaultOSDParams() []string {
	return []string{"--psm", "0", "--oem", "0"}
}

// OCRAvailable returns true when the configured OCR binary is on PATH.
func (p *Preprocessor) OCRAvailable() bool {
	_, err := lookPath(p.cfg.OCR)
	return err == nil
}

// DetectRotation runs the OCR tool against imagePath and extracts the
// reported rotation angle in degrees as a string token, e.g. "0" or "90".
// The token is passed through verbatim, without numeric validation. A nil or
// empty params slice selects DefaultOSDParams.
func (p *Preprocessor) DetectRotation(imagePath string, params []string) (string, error) {
	tool := p.cfg.OCR
	if _, err := lookPath(tool); err != nil {
		err = fmt.Errorf("%s is not installed or not on PATH; cannot detect orientation of %s: %w",
			tool, imagePath, err)
		log.WithField("tool", tool).Error(err)
		return "", err
	}

	if len(params) == 0 {
		params = DefaultOSDParams()
	}
	args := append(append([]string{}, params...), imagePath, "-")

	out, err := exec.Command(tool, args...).Output()
	if err != nil {
		// Output() captures stderr on the ExitError; surface it the same
		// way raster failures do.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			msg := strings.TrimSpace(strings.ToValidUTF8(string(exitErr.Stderr), "�"))
			err = fmt.Errorf("detect orientation of %s: %w: %s", imagePath, err, msg)
		} else {
			err = fmt.Errorf("detect orientation of %s: %w", imagePath, err)
		}
		log.WithFields(log.Fields{
			"tool":  tool,
			"image": imagePath,
		}).Error(err)
		return "", err
	}

	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, "Rotate: ") {
			if _, after, ok := strings.Cut(line, ": "); ok {
				return after, nil
			}
		}
	}
	return "", fmt.Errorf("%s: %w", imagePath, ErrNoRotateLine)
}
