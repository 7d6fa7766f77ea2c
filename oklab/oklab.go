// Package oklab implements the fixed sRGB <-> OKLab transform used for all
// distance and nearest-neighbor work in prism. There is no configuration
// surface: the matrices below are the well-known OKLab constants, the same
// ones soypat-colorspace builds up via a sRGB -> linear -> XYZ -> LMS ->
// OKLab matrix chain; since prism only ever needs the sRGB <-> OKLab
// endpoints (never generic CIE XYZ), the chain is composed directly here
// instead of carrying a vector/matrix dependency for a single 3x3 multiply.
package oklab

import (
	"image/color"
	"math"
)

// Lab is a perceptually-uniform OKLab triplet. Per the data model, these are
// 32-bit floats; distance and accumulation work happens in float64 to avoid
// compounding rounding error across many palette contributors.
type Lab struct {
	L, A, B float32
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func linearToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// FromSRGB converts an sRGB8 color (alpha ignored) to OKLab.
func FromSRGB(c color.RGBA) Lab {
	r := srgbToLinear(float64(c.R) / 255)
	g := srgbToLinear(float64(c.G) / 255)
	b := srgbToLinear(float64(c.B) / 255)

	l := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	m := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	s := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	l, m, s = math.Cbrt(l), math.Cbrt(m), math.Cbrt(s)

	return Lab{
		L: float32(0.2104542553*l + 0.7936177850*m - 0.0040720468*s),
		A: float32(1.9779984951*l - 2.4285922050*m + 0.4505937099*s),
		B: float32(0.0259040371*l + 0.7827717662*m - 0.8086757660*s),
	}
}

// ToSRGB converts an OKLab triplet back to sRGB8. Alpha is always set to
// fully opaque (255); callers carry the original pixel's alpha separately,
// per the "alpha passes through untouched" contract.
func ToSRGB(o Lab) color.RGBA {
	L, a, b := float64(o.L), float64(o.A), float64(o.B)

	l_ := L + 0.3963377774*a + 0.2158037573*b
	m_ := L - 0.1055613458*a - 0.0638541728*b
	s_ := L - 0.0894841775*a - 1.2914855480*b

	l, m, s := l_*l_*l_, m_*m_*m_, s_*s_*s_

	r := +4.0767416621*l - 3.3077115913*m + 0.2309699292*s
	g := -1.2684380046*l + 2.6097574011*m - 0.3413193965*s
	bb := -0.0041960863*l - 0.7034186147*m + 1.7076147010*s

	return color.RGBA{
		R: uint8(math.Round(clamp01(linearToSRGB(r)) * 255)),
		G: uint8(math.Round(clamp01(linearToSRGB(g)) * 255)),
		B: uint8(math.Round(clamp01(linearToSRGB(bb)) * 255)),
		A: 255,
	}
}

// Weighted returns the luminosity-weighted OKLab coordinates
// (L*lumFactor, a, b) used for every distance and nearest-neighbor
// computation.
func Weighted(o Lab, lumFactor float64) [3]float64 {
	return [3]float64{float64(o.L) * lumFactor, float64(o.A), float64(o.B)}
}

// SquaredDistance returns the squared Euclidean distance between two
// weighted OKLab coordinates.
func SquaredDistance(a, b [3]float64) float64 {
	dl := a[0] - b[0]
	da := a[1] - b[1]
	db := a[2] - b[2]
	return dl*dl + da*da + db*db
}
