package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

func init() {
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
	image.RegisterFormat("webp", "RIFF", webp.Decode, webp.DecodeConfig)
}

// encodeImage writes img in the named format. BMP is included alongside
// PNG/JPEG since x/image only brings the corresponding decoder into the
// registry above for input, but its Encoder is happy to produce output too.
func encodeImage(format string, w io.Writer, img image.Image) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// pathAndIntensity splits a "PATH[:INTENSITY]" CLI argument as accepted by
// both the apply and blend commands.
func pathAndIntensity(s string) (string, float64) {
	toks := strings.SplitN(s, ":", 2)
	if len(toks) < 2 {
		return toks[0], 1
	}
	f, err := strconv.ParseFloat(toks[1], 64)
	if err != nil {
		return toks[0], 1
	}
	return toks[0], f
}
