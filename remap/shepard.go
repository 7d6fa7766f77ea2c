package remap

import (
	"math"

	"github.com/NicoNex/prism/palette"
)

// ShepardRemapper is the RBF scaffold with phi(d²) = 1 / (√d²)^power,
// i.e. classic inverse-distance weighting.
type ShepardRemapper struct{ *rbfRemapper }

// NewShepardRemapper builds a Shepard's-method remapper. power must be > 0.
func NewShepardRemapper(pal palette.Palette, lumFactor float64, preserveLuminosity bool, nearestK int, power float64) (*ShepardRemapper, error) {
	if err := requirePositive(power); err != nil {
		return nil, err
	}

	base, err := newRBFRemapper(pal, lumFactor, preserveLuminosity, nearestK, func(sqDist float64) float64 {
		// The exact-match short-circuit in RemapPixel handles true
		// coincidence with a palette point; this guards the residual
		// case of a non-palette pixel landing exactly on a contributor's
		// weighted-OKLab coordinate, where 1/0 would otherwise poison
		// the accumulation with +Inf.
		if sqDist == 0 {
			return math.MaxFloat64
		}
		return 1 / math.Pow(math.Sqrt(sqDist), power)
	})
	if err != nil {
		return nil, err
	}
	return &ShepardRemapper{base}, nil
}
