package cube

import (
	"image/color"
	"strings"
	"testing"

	"github.com/NicoNex/prism/hald"
)

func TestLoadParsesBasicCube(t *testing.T) {
	input := `TITLE "test"
LUT_3D_SIZE 2

DOMAIN_MIN 0.0 0.0 0.0
DOMAIN_MAX 1.0 1.0 1.0

0.0 0.0 0.0
1.0 0.0 0.0
0.0 1.0 0.0
1.0 1.0 0.0
0.0 0.0 1.0
1.0 0.0 1.0
0.0 1.0 1.0
1.0 1.0 1.0
`
	c, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Title != "test" {
		t.Errorf("Title = %q, want %q", c.Title, "test")
	}
	if c.LUT3Dsize != 2 {
		t.Errorf("LUT3Dsize = %d, want 2", c.LUT3Dsize)
	}
	if len(c.Samples) != 8 {
		t.Fatalf("got %d samples, want 8", len(c.Samples))
	}
}

func TestLoadRejectsUnrecognisedLine(t *testing.T) {
	_, err := Load(strings.NewReader("LUT_3D_SIZE 2\nFOO BAR BAZ QUX\n"))
	if err == nil {
		t.Fatal("expected an error for an unrecognised line, got nil")
	}
}

func TestWriteToRoundTrip(t *testing.T) {
	c := Cube{
		Title:     "round-trip",
		LUT3Dsize: 2,
		DomainMin: Sample{R: 0, G: 0, B: 0},
		DomainMax: Sample{R: 1, G: 1, B: 1},
		Samples: []Sample{
			{R: 0, G: 0, B: 0}, {R: 1, G: 0, B: 0},
			{R: 0, G: 1, B: 0}, {R: 1, G: 1, B: 0},
			{R: 0, G: 0, B: 1}, {R: 1, G: 0, B: 1},
			{R: 0, G: 1, B: 1}, {R: 1, G: 1, B: 1},
		},
	}

	var buf strings.Builder
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	got, err := Load(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Load(written output): %v", err)
	}
	if got.LUT3Dsize != c.LUT3Dsize || len(got.Samples) != len(c.Samples) {
		t.Errorf("round trip mismatch: got size %d/%d samples, want %d/%d", got.LUT3Dsize, len(got.Samples), c.LUT3Dsize, len(c.Samples))
	}
}

func TestFromHaldImageAndToHaldImageRoundTrip(t *testing.T) {
	idImg, err := hald.GenerateIdentity(hald.MinLevel)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}

	c, err := FromHaldImage(idImg, 0)
	if err != nil {
		t.Fatalf("FromHaldImage: %v", err)
	}
	if c.LUT3Dsize != hald.MinLevel*hald.MinLevel {
		t.Errorf("LUT3Dsize = %d, want %d", c.LUT3Dsize, hald.MinLevel*hald.MinLevel)
	}

	back, err := c.ToHaldImage()
	if err != nil {
		t.Fatalf("ToHaldImage: %v", err)
	}
	if back.Bounds() != idImg.Bounds() {
		t.Fatalf("ToHaldImage bounds = %v, want %v", back.Bounds(), idImg.Bounds())
	}

	b := idImg.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			want := idImg.At(x, y).(color.RGBA)
			got := back.RGBAAt(x, y)
			if absU8(got.R, want.R) > 1 || absU8(got.G, want.G) > 1 || absU8(got.B, want.B) > 1 {
				t.Fatalf("pixel (%d,%d) = %v, want ~%v", x, y, got, want)
			}
		}
	}
}

func absU8(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestBlendEqualWeightsReproducesInput(t *testing.T) {
	c1 := Cube{
		LUT3Dsize: 2,
		DomainMin: Sample{R: 0, G: 0, B: 0},
		DomainMax: Sample{R: 1, G: 1, B: 1},
		Samples:   []Sample{{R: 0.2, G: 0.4, B: 0.6}},
	}
	c2 := c1

	blended, err := c1.Blend(c2, 1, 1)
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}
	if blended.Samples[0] != c1.Samples[0] {
		t.Errorf("blending identical LUTs at equal weight changed samples: got %v, want %v", blended.Samples[0], c1.Samples[0])
	}
}

func TestBlendRejectsMismatchedSampleCounts(t *testing.T) {
	c1 := Cube{Samples: []Sample{{R: 1}}}
	c2 := Cube{Samples: []Sample{{R: 1}, {R: 2}}}

	if _, err := c1.Blend(c2, 1, 1); err != ErrDifferentSampleSize {
		t.Errorf("Blend error = %v, want ErrDifferentSampleSize", err)
	}
}
