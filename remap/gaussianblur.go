package remap

import (
	"image"
	"image/color"
	"math"

	"github.com/NicoNex/prism/cancel"
	"github.com/NicoNex/prism/hald"
	"github.com/NicoNex/prism/oklab"
	"github.com/NicoNex/prism/palette"
	"github.com/NicoNex/prism/prismerr"
)

// GaussianBlurRemapper treats the LUT itself as a signal to smooth, rather
// than remapping every pixel independently (§4.6). It does not implement
// Remapper: its GenerateLut builds the nearest-neighbor-in-OKLab LUT and
// blurs it directly, and it has no per-pixel remap operation to offer an
// arbitrary image.
type GaussianBlurRemapper struct {
	palette            palette.Palette
	weighted           [][3]float64
	lumFactor          float64
	preserveLuminosity bool
	radius             float64
}

// NewGaussianBlurRemapper builds a Gaussian-blur LUT remapper. radius must
// be > 0.
func NewGaussianBlurRemapper(pal palette.Palette, lumFactor float64, preserveLuminosity bool, radius float64) (*GaussianBlurRemapper, error) {
	if err := pal.Validate(); err != nil {
		return nil, err
	}
	if err := requirePositive(radius); err != nil {
		return nil, err
	}

	weighted := make([][3]float64, len(pal))
	for i, c := range pal {
		weighted[i] = oklab.Weighted(oklab.FromSRGB(c), lumFactor)
	}

	return &GaussianBlurRemapper{
		palette:            pal,
		weighted:           weighted,
		lumFactor:          lumFactor,
		preserveLuminosity: preserveLuminosity,
		radius:             radius,
	}, nil
}

// GenerateLut builds the Hald CLUT for level directly from the smoothed
// nearest-neighbor-in-OKLab LUT.
func (r *GaussianBlurRemapper) GenerateLut(level int) (*image.RGBA, error) {
	img, _, err := r.generateLut(level, nil)
	return img, err
}

// GenerateLutCancellable is GenerateLut, checking tok before each of the
// three axis passes.
func (r *GaussianBlurRemapper) GenerateLutCancellable(level int, tok *cancel.Token) (*image.RGBA, bool, error) {
	return r.generateLut(level, tok)
}

func (r *GaussianBlurRemapper) generateLut(level int, tok *cancel.Token) (*image.RGBA, bool, error) {
	if level < hald.MinLevel || level > hald.MaxLevel {
		return nil, false, prismerr.ErrInvalidLevel
	}
	s := level * level

	channels := []int{0, 1, 2}
	if r.preserveLuminosity {
		channels = []int{1, 2}
	}

	lut := r.buildNNLut(level)
	kernel := gaussianKernel(r.radius)

	for axis := 0; axis < 3; axis++ {
		if tok.Cancelled() {
			return nil, false, nil
		}
		lut = blurAxis(lut, s, axis, kernel, channels)
	}

	return r.toImage(lut, level, s), true, nil
}

// buildNNLut assigns every cube voxel the weighted-OKLab coordinates of
// its nearest palette point, exhaustively (palette sizes here are small
// enough that a K-NN tree buys nothing over a direct scan).
func (r *GaussianBlurRemapper) buildNNLut(level int) [][3]float64 {
	s := level * level
	den := float64(s - 1)
	out := make([][3]float64, s*s*s)

	for b := 0; b < s; b++ {
		bv := uint8(math.Round(float64(b) / den * 255))
		for g := 0; g < s; g++ {
			gv := uint8(math.Round(float64(g) / den * 255))
			for rr := 0; rr < s; rr++ {
				rv := uint8(math.Round(float64(rr) / den * 255))

				q := oklab.Weighted(oklab.FromSRGB(color.RGBA{R: rv, G: gv, B: bv, A: 255}), r.lumFactor)
				out[rr+g*s+b*s*s] = r.weighted[nearestWeightedIndex(r.weighted, q)]
			}
		}
	}
	return out
}

func (r *GaussianBlurRemapper) toImage(lut [][3]float64, level, s int) *image.RGBA {
	den := float64(s - 1)
	size := s * level
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	for b := 0; b < s; b++ {
		bv := uint8(math.Round(float64(b) / den * 255))
		for g := 0; g < s; g++ {
			gv := uint8(math.Round(float64(g) / den * 255))
			for rr := 0; rr < s; rr++ {
				rv := uint8(math.Round(float64(rr) / den * 255))

				w := lut[rr+g*s+b*s*s]
				var lab oklab.Lab
				if r.preserveLuminosity {
					orig := oklab.FromSRGB(color.RGBA{R: rv, G: gv, B: bv, A: 255})
					lab = oklab.Lab{L: orig.L, A: float32(w[1]), B: float32(w[2])}
				} else {
					lab = oklab.Lab{L: float32(w[0] / r.lumFactor), A: float32(w[1]), B: float32(w[2])}
				}

				x := rr + (g%level)*s
				y := b*level + g/level
				img.SetRGBA(x, y, oklab.ToSRGB(lab))
			}
		}
	}
	return img
}

func nearestWeightedIndex(weighted [][3]float64, q [3]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, w := range weighted {
		d := oklab.SquaredDistance(w, q)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// gaussianKernel builds a normalized 1D Gaussian kernel with
// half = ceil(3*radius), per §4.6.
func gaussianKernel(radius float64) []float64 {
	half := int(math.Ceil(3 * radius))
	kernel := make([]float64, 2*half+1)

	var sum float64
	for i := -half; i <= half; i++ {
		w := math.Exp(-float64(i*i) / (2 * radius * radius))
		kernel[i+half] = w
		sum += w
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func clampAxis(v, s int) int {
	switch {
	case v < 0:
		return 0
	case v >= s:
		return s - 1
	default:
		return v
	}
}

// blurAxis applies kernel separably along one axis of the flattened 3D
// LUT, clamping out-of-range coordinates to the cube's edge ("extend"
// boundary handling), touching only the given channels.
func blurAxis(data [][3]float64, s, axis int, kernel []float64, channels []int) [][3]float64 {
	half := len(kernel) / 2
	out := make([][3]float64, len(data))

	for b := 0; b < s; b++ {
		for g := 0; g < s; g++ {
			for r := 0; r < s; r++ {
				idx := r + g*s + b*s*s
				out[idx] = data[idx]

				var acc [3]float64
				for k := -half; k <= half; k++ {
					var rr, gg, bb int
					switch axis {
					case 0:
						rr, gg, bb = clampAxis(r+k, s), g, b
					case 1:
						rr, gg, bb = r, clampAxis(g+k, s), b
					default:
						rr, gg, bb = r, g, clampAxis(b+k, s)
					}
					w := kernel[k+half]
					src := data[rr+gg*s+bb*s*s]
					for _, ch := range channels {
						acc[ch] += w * src[ch]
					}
				}
				for _, ch := range channels {
					out[idx][ch] = acc[ch]
				}
			}
		}
	}
	return out
}
