package palette

import (
	"strings"
	"testing"
)

func TestParseHexList(t *testing.T) {
	input := `
// a comment line
#ff0000
00ff00
  #0000ff

#abcdef
`
	pal, err := ParseHexList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseHexList: %v", err)
	}

	want := Palette{
		{R: 0xff, G: 0x00, B: 0x00, A: 255},
		{R: 0x00, G: 0xff, B: 0x00, A: 255},
		{R: 0x00, G: 0x00, B: 0xff, A: 255},
		{R: 0xab, G: 0xcd, B: 0xef, A: 255},
	}
	if len(pal) != len(want) {
		t.Fatalf("parsed %d colors, want %d", len(pal), len(want))
	}
	for i, c := range pal {
		if c != want[i] {
			t.Errorf("color %d = %v, want %v", i, c, want[i])
		}
	}
}

func TestParseHexListRejectsBadLength(t *testing.T) {
	_, err := ParseHexList(strings.NewReader("#ff00"))
	if err == nil {
		t.Fatal("expected error for a 4-digit hex color, got nil")
	}
}

func TestParseHexListRejectsNonHex(t *testing.T) {
	_, err := ParseHexList(strings.NewReader("#zzzzzz"))
	if err == nil {
		t.Fatal("expected error for non-hex digits, got nil")
	}
}

func TestPaletteValidateRejectsEmpty(t *testing.T) {
	var p Palette
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for empty palette, got nil")
	}
}

func TestPaletteValidateAcceptsNonEmpty(t *testing.T) {
	p := Palette{{R: 1, G: 2, B: 3, A: 255}}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestIndexNearestFindsExactPoint(t *testing.T) {
	pts := []WeightedPoint{
		{Coords: [3]float64{0, 0, 0}, Index: 0},
		{Coords: [3]float64{1, 1, 1}, Index: 1},
		{Coords: [3]float64{5, 5, 5}, Index: 2},
	}
	ix := NewIndex(pts)

	idx, dist := ix.Nearest([3]float64{1, 1, 1})
	if idx != 1 {
		t.Errorf("Nearest index = %d, want 1", idx)
	}
	if dist != 0 {
		t.Errorf("Nearest dist = %v, want 0", dist)
	}
}

func TestIndexNearestNSortedAscending(t *testing.T) {
	pts := []WeightedPoint{
		{Coords: [3]float64{0, 0, 0}, Index: 0},
		{Coords: [3]float64{2, 0, 0}, Index: 1},
		{Coords: [3]float64{4, 0, 0}, Index: 2},
		{Coords: [3]float64{6, 0, 0}, Index: 3},
	}
	ix := NewIndex(pts)

	neighbors := ix.NearestN([3]float64{1, 0, 0}, 3)
	if len(neighbors) != 3 {
		t.Fatalf("got %d neighbors, want 3", len(neighbors))
	}
	for i := 1; i < len(neighbors); i++ {
		if neighbors[i-1].SqDist > neighbors[i].SqDist {
			t.Errorf("neighbors not sorted ascending: %v", neighbors)
		}
	}
	if neighbors[0].Index != 0 && neighbors[0].Index != 1 {
		t.Errorf("closest neighbor should be index 0 or 1, got %d", neighbors[0].Index)
	}
}

func TestIndexNearestNHonorsN(t *testing.T) {
	pts := make([]WeightedPoint, 10)
	for i := range pts {
		pts[i] = WeightedPoint{Coords: [3]float64{float64(i), 0, 0}, Index: i}
	}
	ix := NewIndex(pts)

	got := ix.NearestN([3]float64{0, 0, 0}, 4)
	if len(got) != 4 {
		t.Errorf("NearestN returned %d results, want 4", len(got))
	}
}
