package remap

import (
	"image"
	"image/color"

	"github.com/NicoNex/prism/cancel"
	"github.com/NicoNex/prism/oklab"
	"github.com/NicoNex/prism/palette"
)

// radialBasisFn weights a palette contributor by its squared distance from
// the query point. Shared by the Gaussian, Shepard, and linear RBF variants
// (§4.4) — only this function differs between them.
type radialBasisFn func(sqDist float64) float64

// rbfRemapper is the common RBF accumulation scaffold. GaussianRemapper,
// ShepardRemapper, and LinearRemapper are thin constructors over it,
// mirroring the single generic body the three variants share in
// original_source's impl_rbf! macro.
type rbfRemapper struct {
	palette            palette.Palette
	weighted           [][3]float64
	index              *palette.Index // nil when iterating the palette exhaustively
	nearestK           int
	lumFactor          float64
	preserveLuminosity bool
	phi                radialBasisFn
}

func newRBFRemapper(pal palette.Palette, lumFactor float64, preserveLuminosity bool, nearestK int, phi radialBasisFn) (*rbfRemapper, error) {
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

	var index *palette.Index
	if nearestK > 0 && nearestK < len(pal) {
		index = palette.NewIndex(pts)
	}

	return &rbfRemapper{
		palette:            pal,
		weighted:           weighted,
		index:              index,
		nearestK:           nearestK,
		lumFactor:          lumFactor,
		preserveLuminosity: preserveLuminosity,
		phi:                phi,
	}, nil
}

func (r *rbfRemapper) exactMatch(c color.RGBA) (int, bool) {
	for i, p := range r.palette {
		if p.R == c.R && p.G == c.G && p.B == c.B {
			return i, true
		}
	}
	return 0, false
}

func (r *rbfRemapper) contributors(w [3]float64) []palette.Neighbor {
	if r.index != nil {
		return r.index.NearestN(w, r.nearestK)
	}

	out := make([]palette.Neighbor, len(r.weighted))
	for i, pw := range r.weighted {
		out[i] = palette.Neighbor{Index: i, SqDist: oklab.SquaredDistance(w, pw)}
	}
	return out
}

// RemapPixel runs the full RBF accumulation: exact-match short-circuit,
// contributor gathering (K-NN or exhaustive), weighted accumulation, and
// L-axis unweighting (§4.4 steps 2-7).
func (r *rbfRemapper) RemapPixel(c color.RGBA) color.RGBA {
	if idx, ok := r.exactMatch(c); ok {
		out := r.palette[idx]
		out.A = c.A
		return out
	}

	lab := oklab.FromSRGB(c)
	w := oklab.Weighted(lab, r.lumFactor)

	var sum [3]float64
	var sumW float64
	for _, nb := range r.contributors(w) {
		wt := r.phi(nb.SqDist)
		pw := r.weighted[nb.Index]
		sum[0] += wt * pw[0]
		sum[1] += wt * pw[1]
		sum[2] += wt * pw[2]
		sumW += wt
	}

	q := oklab.Lab{
		L: float32((sum[0] / sumW) / r.lumFactor),
		A: float32(sum[1] / sumW),
		B: float32(sum[2] / sumW),
	}
	if r.preserveLuminosity {
		q.L = lab.L
	}

	out := oklab.ToSRGB(q)
	out.A = c.A
	return out
}

func (r *rbfRemapper) RemapImage(img *image.RGBA) {
	remapSerial(img, func(_ int, c color.RGBA) color.RGBA { return r.RemapPixel(c) })
}

func (r *rbfRemapper) RemapImageParallel(img *image.RGBA) {
	remapParallel(img, func(_ int, c color.RGBA) color.RGBA { return r.RemapPixel(c) })
}

func (r *rbfRemapper) RemapImageCancellable(img *image.RGBA, tok *cancel.Token) bool {
	return remapCancellable(img, tok, func(_ int, c color.RGBA) color.RGBA { return r.RemapPixel(c) })
}
