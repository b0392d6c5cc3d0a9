package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestModeFor(t *testing.T) {
	tests := []struct {
		running bool
		elapsed int64
		want    Mode
	}{
		{false, 0, ModeEnabled},
		{true, 0, ModeEnabled},
		{true, 5000, ModeEnabled},
		{false, 5000, ModeDisabled},
	}
	for _, tc := range tests {
		if got := ModeFor(tc.running, tc.elapsed); got != tc.want {
			t.Fatalf("ModeFor(%v, %d): expected %v, got %v", tc.running, tc.elapsed, tc.want, got)
		}
	}
}

func TestRenderProducesSquarePNG(t *testing.T) {
	renderer, err := New(DefaultSize)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	img, err := renderer.Render("12:34:56", true, 0)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(img.PNG))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != DefaultSize || bounds.Dy() != DefaultSize {
		t.Fatalf("expected %dx%d, got %v", DefaultSize, DefaultSize, bounds)
	}
	if !hasColor(decoded, color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("expected white text pixels on the enabled face")
	}
}

func TestRenderDisabledPalette(t *testing.T) {
	renderer, err := New(72)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	img, err := renderer.Render("0:05", false, 5000)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if img.Mode != ModeDisabled {
		t.Fatalf("expected disabled mode, got %v", img.Mode)
	}
	decoded, err := png.Decode(bytes.NewReader(img.PNG))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	r, g, b, _ := decoded.At(0, 0).RGBA()
	if r>>8 != 51 || g>>8 != 51 || b>>8 != 51 {
		t.Fatalf("expected dark gray corner, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestRenderFitsLongText(t *testing.T) {
	renderer, err := New(72)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render("1234:59:59", true, 1); err != nil {
		t.Fatalf("render long text: %v", err)
	}
	if _, err := renderer.Render("", true, 1); err != ErrEmptyText {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func hasColor(img image.Image, want color.NRGBA) bool {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if color.NRGBAModel.Convert(img.At(x, y)) == want {
				return true
			}
		}
	}
	return false
}
