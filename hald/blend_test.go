package hald

import (
	"testing"

	"github.com/NicoNex/prism/prismerr"
)

func TestBlendEqualWeightsAverages(t *testing.T) {
	a, err := GenerateIdentity(MinLevel)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	b, err := GenerateIdentity(MinLevel)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}

	out, err := Blend(a, b, 1, 1)
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}

	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if out.RGBAAt(x, y) != a.RGBAAt(x, y) {
				t.Fatalf("blending a LUT with itself at equal weight should reproduce it: (%d,%d) = %v, want %v", x, y, out.RGBAAt(x, y), a.RGBAAt(x, y))
			}
		}
	}
}

func TestBlendRejectsMismatchedLevels(t *testing.T) {
	a, err := GenerateIdentity(MinLevel)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	b, err := GenerateIdentity(MinLevel + 1)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}

	_, err = Blend(a, b, 1, 1)
	if err != prismerr.ErrInvalidHaldDim {
		t.Errorf("Blend mismatched levels error = %v, want ErrInvalidHaldDim", err)
	}
}

func TestBlendRejectsZeroTotalWeight(t *testing.T) {
	a, err := GenerateIdentity(MinLevel)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	b, err := GenerateIdentity(MinLevel)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}

	_, err = Blend(a, b, 1, -1)
	if err != prismerr.ErrInvalidParam {
		t.Errorf("Blend zero-total-weight error = %v, want ErrInvalidParam", err)
	}
}
