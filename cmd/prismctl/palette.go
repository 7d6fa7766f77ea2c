package main

import (
	"os"
	"strings"

	"github.com/NicoNex/prism/palette"
)

// loadPalette reads a hex-list file when given, falling back to the
// repeated --color flags; both are fed through the same ParseHexList
// parser since they're the same "#rrggbb per line" shape.
func loadPalette(file string, colors []string) (palette.Palette, error) {
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return palette.ParseHexList(f)
	}
	return palette.ParseHexList(strings.NewReader(strings.Join(colors, "\n")))
}
