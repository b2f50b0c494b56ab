package textmetrics

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// OpenType measures text with the glyph advances of a parsed font.
// Faces are created lazily per font size and reused; OpenType is safe for
// concurrent use.
type OpenType struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewOpenType parses TrueType or OpenType font data.
func NewOpenType(data []byte) (*OpenType, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &OpenType{font: f, faces: make(map[float64]font.Face)}, nil
}

// NewGoRegular returns a measurer backed by the bundled Go Regular face.
func NewGoRegular() (*OpenType, error) {
	return NewOpenType(goregular.TTF)
}

// Measure implements Measurer. A font size the face cannot be built for
// falls back to the Estimator.
func (o *OpenType) Measure(text string, fontSize float64) float64 {
	face, err := o.face(fontSize)
	if err != nil {
		return Estimator{}.Measure(text, fontSize)
	}
	o.mu.Lock()
	adv := font.MeasureString(face, text)
	o.mu.Unlock()
	return float64(adv) / 64
}

// face returns the cached face for size, creating it on first use. DPI 72
// makes one point equal one pixel.
func (o *OpenType) face(size float64) (font.Face, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if f, ok := o.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(o.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	o.faces[size] = f
	return f, nil
}

// Close releases all cached faces.
func (o *OpenType) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for size, f := range o.faces {
		f.Close()
		delete(o.faces, size)
	}
	return nil
}

var _ Measurer = (*OpenType)(nil)
