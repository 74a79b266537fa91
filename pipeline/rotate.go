package pipeline

// rotate.go — ImageMagick mogrify invocation.

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// rotateInPlace rotates imagePath by angle degrees, mutating the file in
// place. A missing rotator binary is always an error. Beyond that, rotation
// is a best-effort cosmetic step: a non-zero exit is logged as a warning and
// otherwise ignored, unless strict mode is configured, in which case the
// wrapped error is returned.
func (p *Preprocessor) rotateInPlace(imagePath, angle string) error {
	tool := p.cfg.Rotator
	if _, err := lookPath(tool); err != nil {
		err = fmt.Errorf("%s is not installed or not on PATH; cannot rotate %s: %w",
			tool, imagePath, err)
		log.WithField("tool", tool).Error(err)
		return err
	}

	cmd := exec.Command(tool, "-rotate", angle, imagePath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if p.cfg.StrictRotate {
			if msg != "" {
				return fmt.Errorf("rotate %s by %s: %w: %s", imagePath, angle, err, msg)
			}
			return fmt.Errorf("rotate %s by %s: %w", imagePath, angle, err)
		}
		log.WithFields(log.Fields{
			"tool":   tool,
			"image":  imagePath,
			"rotate": angle,
		}).Warnf("rotation failed, leaving image as is: %v; stderr: %s", err, msg)
	}
	return nil
}
