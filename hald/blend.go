package hald

import (
	"image"
	"image/color"

	"github.com/NicoNex/prism/parallel"
	"github.com/NicoNex/prism/prismerr"
)

// Blend produces a new Hald CLUT image that is the weighted average of two
// same-level Hald CLUT images, normalizing w1/w2 so the result always
// reflects their relative proportion regardless of scale. Used by the CLI's
// blend subcommand to combine two palette LUTs without re-deriving either
// from scratch.
func Blend(a, b image.Image, w1, w2 float64) (*image.RGBA, error) {
	level, err := DetectLevel(a)
	if err != nil {
		return nil, err
	}
	levelB, err := DetectLevel(b)
	if err != nil {
		return nil, err
	}
	if level != levelB {
		return nil, prismerr.ErrInvalidHaldDim
	}

	total := w1 + w2
	if total == 0 {
		return nil, prismerr.ErrInvalidParam
	}
	w1, w2 = w1/total, w2/total

	bounds := a.Bounds()
	out := image.NewRGBA(bounds)

	size := bounds.Dx() * bounds.Dy()
	parallel.Pixels(size, func(start, end int) {
		w := bounds.Dx()
		for i := start; i < end; i++ {
			x := bounds.Min.X + i%w
			y := bounds.Min.Y + i/w

			r1, g1, b1, _ := a.At(x, y).RGBA()
			r2, g2, b2, _ := b.At(x, y).RGBA()

			out.SetRGBA(x, y, color.RGBA{
				R: roundU8(w1*float64(r1>>8) + w2*float64(r2>>8)),
				G: roundU8(w1*float64(g1>>8) + w2*float64(g2>>8)),
				B: roundU8(w1*float64(b1>>8) + w2*float64(b2>>8)),
				A: 255,
			})
		}
	})

	return out, nil
}
