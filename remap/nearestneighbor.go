package remap

import (
	"image"
	"image/color"

	"github.com/NicoNex/prism/cancel"
	"github.com/NicoNex/prism/oklab"
	"github.com/NicoNex/prism/palette"
)

// NearestNeighborRemapper replaces each pixel with its single closest
// palette entry under squared OKLab distance (§4.3).
type NearestNeighborRemapper struct {
	palette            palette.Palette
	weighted           [][3]float64
	index              *palette.Index
	lumFactor          float64
	preserveLuminosity bool
}

// NewNearestNeighborRemapper validates pal and builds its K-NN index.
func NewNearestNeighborRemapper(pal palette.Palette, lumFactor float64, preserveLuminosity bool) (*NearestNeighborRemapper, error) {
	if err := pal.Validate(); err != nil {
		return nil, err
	}

	weighted := make([][3]float64, len(pal))
	pts := make([]palette.WeightedPoint, len(pal))
	for i, c := range pal {
		w := oklab.Weighted(oklab.FromSRGB(c), lumFactor)
		weighted[i] = w
		pts[i] = palette.WeightedPoint{Coords: w, Index: i}
	}

	return &NearestNeighborRemapper{
		palette:            pal,
		weighted:           weighted,
		index:              palette.NewIndex(pts),
		lumFactor:          lumFactor,
		preserveLuminosity: preserveLuminosity,
	}, nil
}

// RemapPixel implements Remapper.
func (r *NearestNeighborRemapper) RemapPixel(c color.RGBA) color.RGBA {
	lab := oklab.FromSRGB(c)
	w := oklab.Weighted(lab, r.lumFactor)
	idx, _ := r.index.Nearest(w)

	target := r.palette[idx]
	if !r.preserveLuminosity {
		out := target
		out.A = c.A
		return out
	}

	targetLab := oklab.FromSRGB(target)
	out := oklab.ToSRGB(oklab.Lab{L: lab.L, A: targetLab.A, B: targetLab.B})
	out.A = c.A
	return out
}

// RemapImage implements Remapper.
func (r *NearestNeighborRemapper) RemapImage(img *image.RGBA) {
	remapSerial(img, func(_ int, c color.RGBA) color.RGBA { return r.RemapPixel(c) })
}

// RemapImageParallel implements Remapper.
func (r *NearestNeighborRemapper) RemapImageParallel(img *image.RGBA) {
	remapParallel(img, func(_ int, c color.RGBA) color.RGBA { return r.RemapPixel(c) })
}

// RemapImageCancellable implements Remapper.
func (r *NearestNeighborRemapper) RemapImageCancellable(img *image.RGBA, tok *cancel.Token) bool {
	return remapCancellable(img, tok, func(_ int, c color.RGBA) color.RGBA { return r.RemapPixel(c) })
}
