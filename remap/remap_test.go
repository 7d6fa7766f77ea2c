package remap

import (
	"image/color"
	"testing"

	"github.com/NicoNex/prism/cancel"
	"github.com/NicoNex/prism/hald"
	"github.com/NicoNex/prism/palette"
)

var testPalette = palette.Palette{
	{R: 0, G: 0, B: 0, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
	{R: 255, G: 0, B: 0, A: 255},
	{R: 0, G: 255, B: 0, A: 255},
	{R: 0, G: 0, B: 255, A: 255},
}

func paletteContains(pal palette.Palette, c color.RGBA) bool {
	for _, p := range pal {
		if p.R == c.R && p.G == c.G && p.B == c.B {
			return true
		}
	}
	return false
}

func TestNearestNeighborRemapsIntoPalette(t *testing.T) {
	r, err := NewNearestNeighborRemapper(testPalette, 1.0, false)
	if err != nil {
		t.Fatalf("NewNearestNeighborRemapper: %v", err)
	}

	queries := []color.RGBA{
		{R: 10, G: 10, B: 10, A: 255},
		{R: 240, G: 240, B: 240, A: 255},
		{R: 200, G: 20, B: 20, A: 255},
	}
	for _, q := range queries {
		out := r.RemapPixel(q)
		if !paletteContains(testPalette, out) {
			t.Errorf("RemapPixel(%v) = %v, not in palette", q, out)
		}
	}
}

func TestNearestNeighborExactMatchIsStable(t *testing.T) {
	r, err := NewNearestNeighborRemapper(testPalette, 1.0, false)
	if err != nil {
		t.Fatalf("NewNearestNeighborRemapper: %v", err)
	}
	for _, p := range testPalette {
		out := r.RemapPixel(p)
		if out.R != p.R || out.G != p.G || out.B != p.B {
			t.Errorf("RemapPixel(%v) = %v, want the same color unchanged", p, out)
		}
	}
}

func TestNearestNeighborPreservesAlpha(t *testing.T) {
	r, err := NewNearestNeighborRemapper(testPalette, 1.0, false)
	if err != nil {
		t.Fatalf("NewNearestNeighborRemapper: %v", err)
	}
	in := color.RGBA{R: 100, G: 100, B: 100, A: 17}
	out := r.RemapPixel(in)
	if out.A != 17 {
		t.Errorf("RemapPixel alpha = %d, want 17", out.A)
	}
}

func TestNearestNeighborRejectsEmptyPalette(t *testing.T) {
	if _, err := NewNearestNeighborRemapper(nil, 1.0, false); err == nil {
		t.Error("expected error for empty palette, got nil")
	}
}

func TestRBFVariantsExactMatchShortCircuit(t *testing.T) {
	gaussian, err := NewGaussianRemapper(testPalette, 1.0, false, 0, 128.0)
	if err != nil {
		t.Fatalf("NewGaussianRemapper: %v", err)
	}
	shepard, err := NewShepardRemapper(testPalette, 1.0, false, 0, 4.0)
	if err != nil {
		t.Fatalf("NewShepardRemapper: %v", err)
	}
	linear, err := NewLinearRemapper(testPalette, 1.0, false, 0)
	if err != nil {
		t.Fatalf("NewLinearRemapper: %v", err)
	}

	for _, p := range testPalette {
		for name, r := range map[string]Remapper{"gaussian": gaussian, "shepard": shepard, "linear": linear} {
			out := r.RemapPixel(p)
			if out.R != p.R || out.G != p.G || out.B != p.B {
				t.Errorf("%s: RemapPixel(%v) = %v, want unchanged on exact match", name, p, out)
			}
		}
	}
}

func TestRBFVariantsRejectNonPositiveParam(t *testing.T) {
	if _, err := NewGaussianRemapper(testPalette, 1.0, false, 0, 0); err == nil {
		t.Error("NewGaussianRemapper: expected error for shape=0")
	}
	if _, err := NewShepardRemapper(testPalette, 1.0, false, 0, -1); err == nil {
		t.Error("NewShepardRemapper: expected error for power<0")
	}
}

func TestGaussianSamplingIsDeterministic(t *testing.T) {
	r, err := NewGaussianSamplingRemapper(testPalette, 1.0, false, 0, 20, 64, 42080085)
	if err != nil {
		t.Fatalf("NewGaussianSamplingRemapper: %v", err)
	}

	in := color.RGBA{R: 80, G: 120, B: 160, A: 255}
	a := r.remapAt(7, in)
	b := r.remapAt(7, in)
	if a != b {
		t.Errorf("same pixel index should produce identical output: %v vs %v", a, b)
	}
}

func TestGaussianSamplingParallelMatchesSerial(t *testing.T) {
	r, err := NewGaussianSamplingRemapper(testPalette, 1.0, false, 0, 15, 32, 1)
	if err != nil {
		t.Fatalf("NewGaussianSamplingRemapper: %v", err)
	}

	serial, err := hald.GenerateIdentity(hald.MinLevel)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	parallelImg, err := hald.GenerateIdentity(hald.MinLevel)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}

	r.RemapImage(serial)
	r.RemapImageParallel(parallelImg)

	b := serial.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if serial.RGBAAt(x, y) != parallelImg.RGBAAt(x, y) {
				t.Fatalf("serial/parallel mismatch at (%d,%d): %v vs %v", x, y, serial.RGBAAt(x, y), parallelImg.RGBAAt(x, y))
			}
		}
	}
}

func TestRemapImageCancellableStopsEarly(t *testing.T) {
	r, err := NewNearestNeighborRemapper(testPalette, 1.0, false)
	if err != nil {
		t.Fatalf("NewNearestNeighborRemapper: %v", err)
	}

	img, err := hald.GenerateIdentity(hald.MinLevel)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}

	tok := cancel.New()
	tok.Cancel()

	ok := r.RemapImageCancellable(img, tok)
	if ok {
		t.Error("RemapImageCancellable with a pre-cancelled token should report false")
	}
}
