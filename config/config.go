package config

import (
	"math"
	"os"
	"strconv"
)

// Environment variable names.
const (
	// EnvRasterizer overrides the PDF rasterizer binary name.
	EnvRasterizer = "PDFPREP_RASTERIZER"

	// EnvOCR overrides the OCR binary used for orientation detection.
	EnvOCR = "PDFPREP_OCR"

	// EnvRotator overrides the image rotation binary.
	EnvRotator = "PDFPREP_ROTATOR"

	// EnvDigitWidth overrides the page-index width in generated image names.
	EnvDigitWidth = "PDFPREP_DIGIT_WIDTH"

	// EnvLegacyStem, when set to "1" or "true", truncates filename stems at
	// the first ".pdf" occurrence instead of stripping one trailing
	// extension.
	EnvLegacyStem = "PDFPREP_LEGACY_STEM"

	// EnvStrictRotate, when set to "1" or "true", turns rotation-tool
	// failures into errors instead of logged warnings.
	EnvStrictRotate = "PDFPREP_STRICT_ROTATE"
)

// Defaults.
const (
	// DefaultRasterizer is the Poppler utility that extracts page images.
	DefaultRasterizer = "pdfimages"

	// DefaultOCR performs orientation and script detection.
	DefaultOCR = "tesseract"

	// DefaultRotator is the ImageMagick in-place rotation utility.
	DefaultRotator = "mogrify"

	// DefaultDigitWidth is the zero-padded page-index width pdfimages uses,
	// which caps the output collector at 999 pages.
	DefaultDigitWidth = 3
)

// Config holds runtime configuration sourced from environment variables.
type Config struct {
	Rasterizer   string
	OCR          string
	Rotator      string
	DigitWidth   int
	LegacyStem   bool
	StrictRotate bool
}

// MaxPages returns the highest page index representable at the configured
// digit width (999 at the default width of 3).
func (c *Config) MaxPages() int {
	return int(math.Pow10(c.DigitWidth)) - 1
}

// Load reads Config from environment variables, falling back to defaults for
// missing or invalid values.
func Load() *Config {
	cfg := &Config{
		Rasterizer: DefaultRasterizer,
		OCR:        DefaultOCR,
		Rotator:    DefaultRotator,
		DigitWidth: DefaultDigitWidth,
	}
	if v := os.Getenv(EnvRasterizer); v != "" {
		cfg.Rasterizer = v
	}
	if v := os.Getenv(EnvOCR); v != "" {
		cfg.OCR = v
	}
	if v := os.Getenv(EnvRotator); v != "" {
		cfg.Rotator = v
	}
	if v := os.Getenv(EnvDigitWidth); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DigitWidth = n
		}
	}
	cfg.LegacyStem = boolEnv(EnvLegacyStem)
	cfg.StrictRotate = boolEnv(EnvStrictRotate)
	return cfg
}

func boolEnv(name string) bool {
	switch os.Getenv(name) {
	case "1", "true":
		return true
	}
	return false
}
