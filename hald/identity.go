// Package hald implements Hald CLUT identity construction, the Sampler that
// flattens one into a 3D lookup array, and the three interpolation modes
// (nearest, trilinear, tetrahedral) used to correct an arbitrary image with
// it. Correction runs as goroutines over 256-pixel chunks, the same chunk
// contract the remap package uses, across all three sampling modes.
package hald

import (
	"image"
	"image/color"
	"math"

	"github.com/NicoNex/prism/prismerr"
)

// MinLevel and MaxLevel bound the valid Hald CLUT level range (§6).
const (
	MinLevel = 2
	MaxLevel = 16
)

// GenerateIdentity builds the identity Hald CLUT for the given level: an
// RGB image of side level^3 in which pixel (x, y) stores its own unquantized
// cube color, laid out with blue outermost, green in the middle, and red
// innermost, per §4.1.
func GenerateIdentity(level int) (*image.RGBA, error) {
	if level < MinLevel || level > MaxLevel {
		return nil, prismerr.ErrInvalidLevel
	}

	s := level * level // samples per axis (cube side)
	size := s * level  // image width & height: level^3
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	den := float64(s - 1)

	p := 0
	for b := 0; b < s; b++ {
		bv := uint8(math.Round(float64(b) / den * 255))
		for g := 0; g < s; g++ {
			gv := uint8(math.Round(float64(g) / den * 255))
			for r := 0; r < s; r++ {
				rv := uint8(math.Round(float64(r) / den * 255))

				x := p % size
				y := p / size
				img.SetRGBA(x, y, color.RGBA{R: rv, G: gv, B: bv, A: 255})
				p++
			}
		}
	}

	return img, nil
}

// DetectLevel finds the smallest level L >= MinLevel with L^3 equal to the
// image's (square) width, the inverse of GenerateIdentity's dimensions.
func DetectLevel(img image.Image) (int, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w != h || w == 0 {
		return 0, prismerr.ErrInvalidHaldDim
	}

	for level := MinLevel; level <= MaxLevel; level++ {
		if level*level*level == w {
			return level, nil
		}
	}
	return 0, prismerr.ErrInvalidHaldDim
}
