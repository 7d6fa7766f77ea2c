// Package remap implements the six palette remapping algorithms: plain
// nearest-neighbor, the three RBF variants (Gaussian, Shepard, linear), the
// Gaussian-sampling Monte Carlo remapper, and the Gaussian-blur LUT
// smoother. All but the last share the common Remapper interface and the
// generate-identity-then-remap composition in GenerateLut; Gaussian-blur
// builds its LUT directly and exposes its own GenerateLut method instead.
package remap

import (
	"image"
	"image/color"

	"github.com/NicoNex/prism/cancel"
	"github.com/NicoNex/prism/hald"
	"github.com/NicoNex/prism/parallel"
	"github.com/NicoNex/prism/prismerr"
)

// Remapper is the common capability set every palette remapping algorithm
// implements: a serial, a parallel, and a cancellable form, mirroring the
// Apply/ApplyScaled duality the hald and cube LUT appliers expose.
type Remapper interface {
	RemapPixel(c color.RGBA) color.RGBA
	RemapImage(img *image.RGBA)
	RemapImageParallel(img *image.RGBA)
	RemapImageCancellable(img *image.RGBA, tok *cancel.Token) bool
}

// GenerateLut builds the identity Hald CLUT for level and remaps every
// pixel of it in parallel.
func GenerateLut(r Remapper, level int) (*image.RGBA, error) {
	img, err := hald.GenerateIdentity(level)
	if err != nil {
		return nil, err
	}
	r.RemapImageParallel(img)
	return img, nil
}

// GenerateLutCancellable is GenerateLut with cooperative cancellation;
// reports false if tok fired before completion.
func GenerateLutCancellable(r Remapper, level int, tok *cancel.Token) (*image.RGBA, bool, error) {
	img, err := hald.GenerateIdentity(level)
	if err != nil {
		return nil, false, err
	}
	ok := r.RemapImageCancellable(img, tok)
	return img, ok, nil
}

func pixelAt(img *image.RGBA, i int) color.RGBA {
	w := img.Bounds().Dx()
	x := img.Bounds().Min.X + i%w
	y := img.Bounds().Min.Y + i/w
	return img.RGBAAt(x, y)
}

func setPixelAt(img *image.RGBA, i int, c color.RGBA) {
	w := img.Bounds().Dx()
	x := img.Bounds().Min.X + i%w
	y := img.Bounds().Min.Y + i/w
	img.SetRGBA(x, y, c)
}

// remapSerial, remapParallel, and remapCancellable drive fn (which receives
// each pixel's linear index, for the remappers that need it) over every
// pixel of img. Shared by every concrete Remapper's RemapImage* trio.
func remapSerial(img *image.RGBA, fn func(i int, c color.RGBA) color.RGBA) {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	for i := 0; i < n; i++ {
		setPixelAt(img, i, fn(i, pixelAt(img, i)))
	}
}

func remapParallel(img *image.RGBA, fn func(i int, c color.RGBA) color.RGBA) {
	b := img.Bounds()
	parallel.Pixels(b.Dx()*b.Dy(), func(start, end int) {
		for i := start; i < end; i++ {
			setPixelAt(img, i, fn(i, pixelAt(img, i)))
		}
	})
}

func remapCancellable(img *image.RGBA, tok *cancel.Token, fn func(i int, c color.RGBA) color.RGBA) bool {
	b := img.Bounds()
	return parallel.PixelsCancellable(b.Dx()*b.Dy(), tok, func(start, end int) {
		for i := start; i < end; i++ {
			setPixelAt(img, i, fn(i, pixelAt(img, i)))
		}
	})
}

func requirePositive(v float64) error {
	if v <= 0 {
		return prismerr.ErrInvalidParam
	}
	return nil
}
