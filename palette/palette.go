// Package palette holds the Palette data model and its K-NN spatial index.
//
// Named built-in palette catalogs (the curated "nord", "gruvbox", and
// similar presets other tools ship) are treated as an external concern, so
// this package never embeds one — callers always supply a raw, ordered list
// of colors. ParseHexList is the one parsing helper kept here, since turning
// caller-supplied hex text into a color list is squarely a core concern,
// not catalog curation.
package palette

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/NicoNex/prism/prismerr"
)

// Palette is an ordered sequence of sRGB triplets. Alpha is ignored; by
// convention palette colors carry A=255.
type Palette []color.RGBA

// Validate rejects the one invalid shape the core must catch before doing
// any remapping work: an empty palette.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return prismerr.ErrEmptyPalette
	}
	return nil
}

// ParseHexList parses one "#rrggbb" (or "rrggbb") color per non-empty,
// non-comment line, the same hex-list catalog format lutgen's palette
// sources use.
func ParseHexList(r io.Reader) (Palette, error) {
	var pal Palette

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		line = strings.TrimPrefix(line, "#")
		if len(line) != 6 {
			return nil, fmt.Errorf("parse hex color %q: expected 6 hex digits", line)
		}

		v, err := strconv.ParseUint(line, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("parse hex color %q: %w", line, err)
		}

		pal = append(pal, color.RGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 255,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return pal, nil
}
