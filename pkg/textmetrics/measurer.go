package textmetrics

import (
	"github.com/mattn/go-runewidth"
)

// Measurer reports the rendered width of text at a font size, in pixels.
// Implementations must be deterministic: equal inputs yield equal widths.
type Measurer interface {
	Measure(text string, fontSize float64) float64
}

// MeasurerFunc adapts a plain function to the Measurer interface.
type MeasurerFunc func(text string, fontSize float64) float64

// Measure calls f(text, fontSize).
func (f MeasurerFunc) Measure(text string, fontSize float64) float64 {
	return f(text, fontSize)
}

// DefaultCharWidth is the average glyph advance of a proportional sans-serif
// face, as a fraction of the font size.
const DefaultCharWidth = 0.55

// Estimator approximates text width without a font. Each rune advances
// CharWidth*fontSize, East Asian wide runes advance twice that and
// zero-width runes (combining marks, joiners) do not advance.
type Estimator struct {
	// CharWidth overrides DefaultCharWidth when positive.
	CharWidth float64
}

// Measure implements Measurer.
func (e Estimator) Measure(text string, fontSize float64) float64 {
	ratio := e.CharWidth
	if ratio <= 0 {
		ratio = DefaultCharWidth
	}
	cells := 0
	for _, r := range text {
		cells += runewidth.RuneWidth(r)
	}
	return float64(cells) * ratio * fontSize
}

// Cells measures text in terminal cells. The font size is ignored: a
// terminal renders every glyph at the same size.
type Cells struct{}

// Measure implements Measurer.
func (Cells) Measure(text string, _ float64) float64 {
	return float64(runewidth.StringWidth(text))
}

// DefaultFontSize is the label font size used when none is configured.
const DefaultFontSize = 12.0

// LineHeightRatio is the height of one line of text relative to its font
// size (15px lines at the 12px default font).
const LineHeightRatio = 1.25

// LineHeight returns the height of one line of text at fontSize.
func LineHeight(fontSize float64) float64 { return fontSize * LineHeightRatio }

// Default returns the measurer used when a caller does not inject one.
func Default() Measurer { return Estimator{} }

var (
	_ Measurer = Estimator{}
	_ Measurer = Cells{}
	_ Measurer = MeasurerFunc(nil)
)
