package oklab

import (
	"image/color"
	"math"
	"testing"
)

func TestRoundTripPrimaries(t *testing.T) {
	tests := []color.RGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
		{R: 128, G: 64, B: 200, A: 255},
	}
	for _, c := range tests {
		lab := FromSRGB(c)
		got := ToSRGB(lab)
		if absDiff(got.R, c.R) > 1 || absDiff(got.G, c.G) > 1 || absDiff(got.B, c.B) > 1 {
			t.Errorf("round trip %v -> %v -> %v, want within 1 of original", c, lab, got)
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestToSRGBAlwaysOpaque(t *testing.T) {
	got := ToSRGB(FromSRGB(color.RGBA{R: 10, G: 20, B: 30, A: 128}))
	if got.A != 255 {
		t.Errorf("ToSRGB alpha = %d, want 255", got.A)
	}
}

func TestWeightedScalesLuminosity(t *testing.T) {
	lab := Lab{L: 0.5, A: 0.1, B: -0.2}

	w1 := Weighted(lab, 1.0)
	w2 := Weighted(lab, 2.0)

	if w1[0]*2 != w2[0] {
		t.Errorf("Weighted L scaling: got %v and %v, want second L = 2x first", w1, w2)
	}
	if w1[1] != w2[1] || w1[2] != w2[2] {
		t.Errorf("Weighted must not touch a/b: got %v and %v", w1, w2)
	}
}

func TestSquaredDistanceZeroForIdenticalPoints(t *testing.T) {
	p := [3]float64{0.4, 0.1, -0.3}
	if d := SquaredDistance(p, p); d != 0 {
		t.Errorf("SquaredDistance(p, p) = %v, want 0", d)
	}
}

func TestSquaredDistanceSymmetric(t *testing.T) {
	a := [3]float64{0.1, 0.2, 0.3}
	b := [3]float64{0.4, -0.1, 0.2}

	if SquaredDistance(a, b) != SquaredDistance(b, a) {
		t.Errorf("SquaredDistance not symmetric")
	}

	want := (a[0]-b[0])*(a[0]-b[0]) + (a[1]-b[1])*(a[1]-b[1]) + (a[2]-b[2])*(a[2]-b[2])
	if got := SquaredDistance(a, b); math.Abs(got-want) > 1e-12 {
		t.Errorf("SquaredDistance = %v, want %v", got, want)
	}
}
