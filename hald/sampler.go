package hald

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/NicoNex/prism/cancel"
	"github.com/NicoNex/prism/parallel"
	"github.com/NicoNex/prism/prismerr"
)

// Mode selects one of the three interpolation algorithms a Sampler can use
// to correct a pixel.
type Mode int

const (
	ModeNearest Mode = iota
	ModeTrilinear
	ModeTetrahedral
)

// Sampler is the preprocessed, immutable flat-array view of a Hald CLUT
// used for O(1) 3D lookups. Built once per Hald CLUT and shared read-only
// across correction workers.
type Sampler struct {
	level   int
	s       int // S = level^2, samples per axis
	entries []color.RGBA
}

// Level reports the Hald CLUT level this sampler was built from.
func (sp *Sampler) Level() int { return sp.level }

func (sp *Sampler) idx(r, g, b int) int {
	return r + g*sp.s + b*sp.s*sp.s
}

func (sp *Sampler) at(r, g, b int) color.RGBA {
	return sp.entries[sp.idx(r, g, b)]
}

// BuildSampler flattens a Hald CLUT image into a Sampler. If level is 0 it
// is detected from the image's dimensions; otherwise the image is required
// to match it exactly. Panics if the image dimensions do not match the
// (detected or supplied) level, per §4.2.
func BuildSampler(img image.Image, level int) (*Sampler, error) {
	if level == 0 {
		detected, err := DetectLevel(img)
		if err != nil {
			return nil, err
		}
		level = detected
	}
	if level < MinLevel || level > MaxLevel {
		return nil, prismerr.ErrInvalidLevel
	}

	s := level * level
	size := s * level
	b := img.Bounds()
	if b.Dx() != size || b.Dy() != size {
		panic(fmt.Sprintf("hald: image dimensions %dx%d do not match level %d (want %dx%d)", b.Dx(), b.Dy(), level, size, size))
	}

	entries := make([]color.RGBA, s*s*s)
	for bch := 0; bch < s; bch++ {
		for g := 0; g < s; g++ {
			for r := 0; r < s; r++ {
				x := r + (g%level)*s
				y := bch*level + g/level
				cr, cg, cb, ca := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				entries[r+g*s+bch*s*s] = color.RGBA{
					R: uint8(cr >> 8),
					G: uint8(cg >> 8),
					B: uint8(cb >> 8),
					A: uint8(ca >> 8),
				}
			}
		}
	}

	return &Sampler{level: level, s: s, entries: entries}, nil
}

// SampleNearest truncates each channel to the cube index at or below it via
// integer division and returns that entry unchanged, with the input's
// alpha preserved.
func (sp *Sampler) SampleNearest(c color.RGBA) color.RGBA {
	s := sp.s
	rIdx := int(c.R) * (s - 1) / 255
	gIdx := int(c.G) * (s - 1) / 255
	bIdx := int(c.B) * (s - 1) / 255

	out := sp.at(rIdx, gIdx, bIdx)
	out.A = c.A
	return out
}

type triplet struct{ r, g, b float64 }

func fromRGBA(c color.RGBA) triplet {
	return triplet{float64(c.R), float64(c.G), float64(c.B)}
}

func lerpTriplet(a, b triplet, t float64) triplet {
	return triplet{
		a.r + t*(b.r-a.r),
		a.g + t*(b.g-a.g),
		a.b + t*(b.b-a.b),
	}
}

// RoundU8 clamps v to [0,255] and rounds to the nearest u8. Exported so the
// cube package's .cube trilinear sampling rounds channels the same way
// Hald CLUT sampling does.
func RoundU8(v float64) uint8 {
	return roundU8(v)
}

func roundU8(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(math.Round(v))
}

func (t triplet) toRGBA(a uint8) color.RGBA {
	return color.RGBA{R: roundU8(t.r), G: roundU8(t.g), B: roundU8(t.b), A: a}
}

// cubeCoords projects an sRGB8 channel triplet to cube space and returns the
// base corner indices and fractional offsets used by both trilinear and
// tetrahedral sampling.
func (sp *Sampler) cubeCoords(c color.RGBA) (r0, g0, b0, r1, g1, b1 int, fr, fg, fb float64) {
	s := sp.s
	scale := float64(s-1) / 255

	rf := float64(c.R) * scale
	gf := float64(c.G) * scale
	bf := float64(c.B) * scale

	r0, g0, b0 = int(math.Floor(rf)), int(math.Floor(gf)), int(math.Floor(bf))
	r1 = min(r0+1, s-1)
	g1 = min(g0+1, s-1)
	b1 = min(b0+1, s-1)

	fr = rf - float64(r0)
	fg = gf - float64(g0)
	fb = bf - float64(b0)
	return
}

// SampleTrilinear interpolates the 8 cube corners around the query point,
// first along R, then G, then B, rounding the final channels to u8.
func (sp *Sampler) SampleTrilinear(c color.RGBA) color.RGBA {
	r0, g0, b0, r1, g1, b1, fr, fg, fb := sp.cubeCoords(c)

	c000 := fromRGBA(sp.at(r0, g0, b0))
	c100 := fromRGBA(sp.at(r1, g0, b0))
	c010 := fromRGBA(sp.at(r0, g1, b0))
	c110 := fromRGBA(sp.at(r1, g1, b0))
	c001 := fromRGBA(sp.at(r0, g0, b1))
	c101 := fromRGBA(sp.at(r1, g0, b1))
	c011 := fromRGBA(sp.at(r0, g1, b1))
	c111 := fromRGBA(sp.at(r1, g1, b1))

	c00 := lerpTriplet(c000, c100, fr)
	c10 := lerpTriplet(c010, c110, fr)
	c01 := lerpTriplet(c001, c101, fr)
	c11 := lerpTriplet(c011, c111, fr)

	c0 := lerpTriplet(c00, c10, fg)
	c1 := lerpTriplet(c01, c11, fg)

	out := lerpTriplet(c0, c1, fb)
	return out.toRGBA(c.A)
}

// SampleTetrahedral splits the unit cube into the 6 tetrahedra implied by
// the ordering of (fr, fg, fb) and interpolates within the one containing
// the query point, per the dispatch table in §4.2.
func (sp *Sampler) SampleTetrahedral(c color.RGBA) color.RGBA {
	r0, g0, b0, r1, g1, b1, fr, fg, fb := sp.cubeCoords(c)

	c0 := fromRGBA(sp.at(r0, g0, b0))

	var v1, v2, v3 triplet
	var w1, w2, w3 float64

	switch {
	case fr >= fg && fg >= fb: // R >= G >= B
		v1, v2, v3 = fromRGBA(sp.at(r1, g0, b0)), fromRGBA(sp.at(r1, g1, b0)), fromRGBA(sp.at(r1, g1, b1))
		w1, w2, w3 = fr, fg, fb
	case fr >= fb && fb > fg: // R >= B > G
		v1, v2, v3 = fromRGBA(sp.at(r1, g0, b0)), fromRGBA(sp.at(r1, g0, b1)), fromRGBA(sp.at(r1, g1, b1))
		w1, w2, w3 = fr, fb, fg
	case fb > fr && fr >= fg: // B > R >= G
		v1, v2, v3 = fromRGBA(sp.at(r0, g0, b1)), fromRGBA(sp.at(r1, g0, b1)), fromRGBA(sp.at(r1, g1, b1))
		w1, w2, w3 = fb, fr, fg
	case fb >= fg && fg > fr: // B >= G > R
		v1, v2, v3 = fromRGBA(sp.at(r0, g0, b1)), fromRGBA(sp.at(r0, g1, b1)), fromRGBA(sp.at(r1, g1, b1))
		w1, w2, w3 = fb, fg, fr
	case fg > fb && fb > fr: // G > B > R
		v1, v2, v3 = fromRGBA(sp.at(r0, g1, b0)), fromRGBA(sp.at(r0, g1, b1)), fromRGBA(sp.at(r1, g1, b1))
		w1, w2, w3 = fg, fb, fr
	default: // G >= R, G >= B
		v1, v2, v3 = fromRGBA(sp.at(r0, g1, b0)), fromRGBA(sp.at(r1, g1, b0)), fromRGBA(sp.at(r1, g1, b1))
		w1, w2, w3 = fg, fr, fb
	}

	out := triplet{
		r: c0.r*(1-w1) + v1.r*(w1-w2) + v2.r*(w2-w3) + v3.r*w3,
		g: c0.g*(1-w1) + v1.g*(w1-w2) + v2.g*(w2-w3) + v3.g*w3,
		b: c0.b*(1-w1) + v1.b*(w1-w2) + v2.b*(w2-w3) + v3.b*w3,
	}
	return out.toRGBA(c.A)
}

// Sample dispatches to one of the three sampling modes.
func (sp *Sampler) Sample(c color.RGBA, mode Mode) color.RGBA {
	switch mode {
	case ModeTrilinear:
		return sp.SampleTrilinear(c)
	case ModeTetrahedral:
		return sp.SampleTetrahedral(c)
	default:
		return sp.SampleNearest(c)
	}
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

func correctRange(img *image.RGBA, sp *Sampler, mode Mode, start, end int) {
	for i := start; i < end; i++ {
		setPixelAt(img, i, sp.Sample(pixelAt(img, i), mode))
	}
}

// CorrectImage replaces every pixel's RGB with the sampler's lookup,
// preserving alpha, serially.
func CorrectImage(img *image.RGBA, sp *Sampler, mode Mode) {
	b := img.Bounds()
	correctRange(img, sp, mode, 0, b.Dx()*b.Dy())
}

// CorrectImageParallel is CorrectImage, chunk-parallel over 256-pixel
// ranges.
func CorrectImageParallel(img *image.RGBA, sp *Sampler, mode Mode) {
	b := img.Bounds()
	parallel.Pixels(b.Dx()*b.Dy(), func(start, end int) {
		correctRange(img, sp, mode, start, end)
	})
}

// CorrectImageCancellable is CorrectImageParallel, polling tok at each
// chunk boundary. Reports whether it completed without being cancelled; on
// cancellation no partial output is guaranteed meaningful to the caller.
func CorrectImageCancellable(img *image.RGBA, sp *Sampler, mode Mode, tok *cancel.Token) bool {
	b := img.Bounds()
	return parallel.PixelsCancellable(b.Dx()*b.Dy(), tok, func(start, end int) {
		correctRange(img, sp, mode, start, end)
	})
}
