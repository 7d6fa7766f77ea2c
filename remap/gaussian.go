package remap

import (
	"math"

	"github.com/NicoNex/prism/palette"
)

// GaussianRemapper is the RBF scaffold with phi(d²) = exp(-shape · d²).
type GaussianRemapper struct{ *rbfRemapper }

// NewGaussianRemapper builds a Gaussian RBF remapper. shape must be > 0.
func NewGaussianRemapper(pal palette.Palette, lumFactor float64, preserveLuminosity bool, nearestK int, shape float64) (*GaussianRemapper, error) {
	if err := requirePositive(shape); err != nil {
		return nil, err
	}

	base, err := newRBFRemapper(pal, lumFactor, preserveLuminosity, nearestK, func(sqDist float64) float64 {
		return math.Exp(-shape * sqDist)
	})
	if err != nil {
		return nil, err
	}
	return &GaussianRemapper{base}, nil
}
