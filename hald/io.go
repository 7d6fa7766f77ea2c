package hald

import (
	"image"
	"image/png"
	"io"
	"os"
)

// Load decodes a Hald CLUT PNG from r.
func Load(r io.Reader) (*image.RGBA, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// LoadFile decodes a Hald CLUT PNG from path.
func LoadFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// WriteTo encodes img as PNG to w.
func WriteTo(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// ToRGBA converts img to *image.RGBA, returning it unchanged if it already
// is one.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}
