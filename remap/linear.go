package remap

import "github.com/NicoNex/prism/palette"

// LinearRemapper is the RBF scaffold with phi(d²) = d², i.e. the squared
// distance itself used directly as the contributor weight.
type LinearRemapper struct{ *rbfRemapper }

// NewLinearRemapper builds a linear RBF remapper.
func NewLinearRemapper(pal palette.Palette, lumFactor float64, preserveLuminosity bool, nearestK int) (*LinearRemapper, error) {
	base, err := newRBFRemapper(pal, lumFactor, preserveLuminosity, nearestK, func(sqDist float64) float64 {
		return sqDist
	})
	if err != nil {
		return nil, err
	}
	return &LinearRemapper{base}, nil
}
