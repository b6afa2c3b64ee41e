// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"errors"
	"fmt"
)

// ErrInvalidCount is returned when a requested colour count is out of range.
var ErrInvalidCount = errors.New("invalid colour count")

const (
	// MinColourCount is the smallest number of accents that can be requested.
	MinColourCount = 1
	// MaxColourCount is the largest number of accents that can be requested.
	MaxColourCount = 256
	// DefaultColourCount is the number of accents extracted when none is requested.
	DefaultColourCount = 5
)

// PixelSource is a rectangular grid of RGB pixels.
type PixelSource interface {
	// Size returns the grid width and height.
	Size() (width, height int)
	// RGBAt returns the pixel at column x, row y (zero based).
	RGBAt(x, y int) RGB
}

// Grid is a PixelSource backed by a row-major slice.
type Grid struct {
	Width  int
	Height int
	Pix    []RGB
}

// NewSolidGrid returns a width x height grid filled with c.
func NewSolidGrid(width, height int, c RGB) *Grid {
	pix := make([]RGB, width*height)
	for i := range pix {
		pix[i] = c
	}
	return &Grid{Width: width, Height: height, Pix: pix}
}

// Size implements PixelSource.
func (g *Grid) Size() (int, int) { return g.Width, g.Height }

// RGBAt implements PixelSource.
func (g *Grid) RGBAt(x, y int) RGB { return g.Pix[y*g.Width+x] }

// Set writes the pixel at column x, row y.
func (g *Grid) Set(x, y int, c RGB) { g.Pix[y*g.Width+x] = c }

// Extractor defines the interface for accent extraction algorithms.
type Extractor interface {
	// Extract returns up to count accent colours, primary first.
	Extract(src PixelSource, count int) ([]RGB, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmDominant scores quantised histogram buckets by saturation and
	// frequency and picks a hue-diverse set.
	AlgorithmDominant Algorithm = "dominant"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmDominant}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewExtractor creates a new Extractor based on the specified algorithm.
func NewExtractor(alg Algorithm, opts ExtractOptions) (Extractor, error) {
	switch alg {
	case AlgorithmDominant, "":
		return NewDominantExtractor(opts), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm  Algorithm
	ColorCount int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:  AlgorithmDominant,
		ColorCount: DefaultColourCount,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s", c.Algorithm)
	}
	return validateCount(c.ColorCount)
}

func validateCount(count int) error {
	if count < MinColourCount || count > MaxColourCount {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidCount, count, MinColourCount, MaxColourCount)
	}
	return nil
}
