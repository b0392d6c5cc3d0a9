// Package render draws key faces for the stopwatch.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the edge length of a key face in pixels.
const DefaultSize = 144

const (
	minFontSize   = 8
	textWidthFrac = 0.88
	baseFontFrac  = 0.30
)

// ErrEmptyText indicates there was nothing to draw.
var ErrEmptyText = errors.New("render: empty text")

// Mode selects the key palette.
type Mode int

const (
	// ModeEnabled is used while running and for a key that was never started.
	ModeEnabled Mode = iota
	// ModeDisabled is used for a stopped key holding accumulated time.
	ModeDisabled
)

func (mode Mode) String() string {
	if mode == ModeDisabled {
		return "disabled"
	}
	return "enabled"
}

type palette struct {
	background color.Color
	text       color.Color
}

var palettes = map[Mode]palette{
	ModeEnabled: {
		background: color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		text:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	},
	ModeDisabled: {
		background: color.NRGBA{R: 51, G: 51, B: 51, A: 255},
		text:       color.NRGBA{R: 140, G: 140, B: 140, A: 255},
	},
}

// Image is an encoded key face.
type Image struct {
	Text string
	Mode Mode
	Size int
	PNG  []byte
}

// ModeFor picks the palette from the stopwatch state.
func ModeFor(running bool, elapsedMs int64) Mode {
	if running || elapsedMs == 0 {
		return ModeEnabled
	}
	return ModeDisabled
}

// Renderer draws centred text on a square canvas. Faces are cached per
// point size; a Renderer is safe for concurrent use.
type Renderer struct {
	mu    sync.Mutex
	size  int
	font  *opentype.Font
	faces map[int]font.Face
}

// New creates a renderer producing size×size images.
func New(size int) (*Renderer, error) {
	if size <= 0 {
		size = DefaultSize
	}
	parsed, err := opentype.Parse(gomonobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Renderer{
		size:  size,
		font:  parsed,
		faces: make(map[int]font.Face),
	}, nil
}

// Size returns the edge length of rendered images.
func (renderer *Renderer) Size() int {
	return renderer.size
}

// Render draws text using the palette for the given stopwatch state.
func (renderer *Renderer) Render(text string, running bool, elapsedMs int64) (*Image, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	mode := ModeFor(running, elapsedMs)
	colors := palettes[mode]

	renderer.mu.Lock()
	defer renderer.mu.Unlock()

	face, width, err := renderer.fitFaceLocked(text)
	if err != nil {
		return nil, err
	}

	bounds := image.Rect(0, 0, renderer.size, renderer.size)
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, image.NewUniform(colors.background), image.Point{}, draw.Src)

	metrics := face.Metrics()
	edge := fixed.I(renderer.size)
	drawer := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(colors.text),
		Face: face,
		Dot: fixed.Point26_6{
			X: (edge - width) / 2,
			Y: (edge + metrics.Ascent - metrics.Descent) / 2,
		},
	}
	drawer.DrawString(text)

	var encoded bytes.Buffer
	if err := png.Encode(&encoded, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return &Image{
		Text: text,
		Mode: mode,
		Size: renderer.size,
		PNG:  encoded.Bytes(),
	}, nil
}

// fitFaceLocked shrinks the face until text fits the usable width.
func (renderer *Renderer) fitFaceLocked(text string) (font.Face, fixed.Int26_6, error) {
	maxWidth := fixed.I(int(float64(renderer.size) * textWidthFrac))
	points := int(float64(renderer.size) * baseFontFrac)
	for {
		face, err := renderer.faceLocked(points)
		if err != nil {
			return nil, 0, err
		}
		width := font.MeasureString(face, text)
		if width <= maxWidth || points <= minFontSize {
			return face, width, nil
		}
		next := int(float64(points) * float64(maxWidth) / float64(width))
		if next >= points {
			next = points - 1
		}
		if next < minFontSize {
			next = minFontSize
		}
		points = next
	}
}

func (renderer *Renderer) faceLocked(points int) (font.Face, error) {
	if face, ok := renderer.faces[points]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(renderer.font, &opentype.FaceOptions{
		Size:    float64(points),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %dpt: %w", points, err)
	}
	renderer.faces[points] = face
	return face, nil
}
