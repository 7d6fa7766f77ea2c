package hald

import (
	"image"
	"image/color"
	"testing"
)

func TestGenerateIdentityDimensions(t *testing.T) {
	for level := MinLevel; level <= 6; level++ {
		img, err := GenerateIdentity(level)
		if err != nil {
			t.Fatalf("GenerateIdentity(%d): %v", level, err)
		}
		want := level * level * level
		b := img.Bounds()
		if b.Dx() != want || b.Dy() != want {
			t.Errorf("level %d: image is %dx%d, want %dx%d", level, b.Dx(), b.Dy(), want, want)
		}
	}
}

func TestGenerateIdentityRejectsOutOfRangeLevel(t *testing.T) {
	if _, err := GenerateIdentity(MinLevel - 1); err == nil {
		t.Error("expected error for level below MinLevel, got nil")
	}
	if _, err := GenerateIdentity(MaxLevel + 1); err == nil {
		t.Error("expected error for level above MaxLevel, got nil")
	}
}

func TestGenerateIdentityCornersAreBlackAndWhite(t *testing.T) {
	img, err := GenerateIdentity(4)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	b := img.Bounds()

	origin := img.RGBAAt(b.Min.X, b.Min.Y)
	if origin != (color.RGBA{R: 0, G: 0, B: 0, A: 255}) {
		t.Errorf("pixel (0,0) = %v, want black", origin)
	}

	last := img.RGBAAt(b.Max.X-1, b.Max.Y-1)
	if last != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("last pixel = %v, want white", last)
	}
}

func TestDetectLevelRoundTrip(t *testing.T) {
	for level := MinLevel; level <= 6; level++ {
		img, err := GenerateIdentity(level)
		if err != nil {
			t.Fatalf("GenerateIdentity(%d): %v", level, err)
		}
		got, err := DetectLevel(img)
		if err != nil {
			t.Fatalf("DetectLevel(level %d image): %v", level, err)
		}
		if got != level {
			t.Errorf("DetectLevel = %d, want %d", got, level)
		}
	}
}

func TestDetectLevelRejectsNonSquareImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 20))
	if _, err := DetectLevel(img); err == nil {
		t.Error("expected error for a non-square image, got nil")
	}
}

func TestDetectLevelRejectsUnrecognizedSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 7, 7))
	if _, err := DetectLevel(img); err == nil {
		t.Error("expected error for a size matching no valid level, got nil")
	}
}
