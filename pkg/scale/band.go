package scale

import (
	"math"

	cerrors "github.com/matzehuels/chartkit/pkg/errors"
)

// Inner padding presets for bar charts, as a fraction of the band step.
const (
	PaddingNone   = 0.0
	PaddingSmall  = 0.05
	PaddingMedium = 0.1
	PaddingLarge  = 0.3
)

// BandOption configures a Band scale.
type BandOption func(*bandConfig)

type bandConfig struct {
	outer float64
	round bool
}

// WithOuterPadding reserves padding*step before the first and after the
// last band.
func WithOuterPadding(padding float64) BandOption {
	return func(c *bandConfig) { c.outer = padding }
}

// WithRound snaps step and band positions to whole pixels.
func WithRound() BandOption {
	return func(c *bandConfig) { c.round = true }
}

// Band assigns equal-width bands to categories in declaration order.
type Band struct {
	categories []string
	index      map[string]int
	rng        Interval
	start      float64
	step       float64
	bandwidth  float64
}

// NewBand builds a band scale over categories. innerPadding is the fraction
// of each step left empty between bands and must lie in [0, 1).
func NewBand(categories []string, rng Interval, innerPadding float64, opts ...BandOption) (*Band, error) {
	var cfg bandConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	n := len(categories)
	if n == 0 {
		return nil, cerrors.EmptyDomain("band scale")
	}
	if !rng.finite() || rng.Span() == 0 {
		return nil, cerrors.InvalidRange(rng.Min, rng.Max)
	}
	if innerPadding < 0 || innerPadding >= 1 || math.IsNaN(innerPadding) {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "inner padding %g must be in [0, 1)", innerPadding)
	}
	if cfg.outer < 0 || math.IsNaN(cfg.outer) {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "outer padding %g must not be negative", cfg.outer)
	}

	length := math.Abs(rng.Span())
	step := length / math.Max(1, float64(n)-innerPadding+2*cfg.outer)
	if cfg.round {
		step = math.Floor(step)
	}
	start := (length - step*(float64(n)-innerPadding)) / 2
	if cfg.round {
		start = math.Round(start)
	}
	bandwidth := step * (1 - innerPadding)
	if cfg.round {
		bandwidth = math.Round(bandwidth)
	}

	index := make(map[string]int, n)
	for i, c := range categories {
		if _, seen := index[c]; !seen {
			index[c] = i
		}
	}
	return &Band{
		categories: append([]string(nil), categories...),
		index:      index,
		rng:        rng,
		start:      start,
		step:       step,
		bandwidth:  bandwidth,
	}, nil
}

// MapIndex returns the leading pixel edge of the band at position i.
func (s *Band) MapIndex(i int) float64 {
	off := s.start + float64(i)*s.step
	if s.rng.Max < s.rng.Min {
		return s.rng.Min - off - s.bandwidth
	}
	return s.rng.Min + off
}

// Map returns the leading edge of the first band labelled category.
func (s *Band) Map(category string) (float64, bool) {
	i, ok := s.index[category]
	if !ok {
		return 0, false
	}
	return s.MapIndex(i), true
}

// Center returns the pixel centre of the band at position i.
func (s *Band) Center(i int) float64 { return s.MapIndex(i) + s.bandwidth/2 }

// IndexAt returns the band under a pixel offset measured from the start of
// the range, or false when the pixel falls outside every step.
func (s *Band) IndexAt(px float64) (int, bool) {
	if s.step <= 0 || math.IsNaN(px) {
		return 0, false
	}
	i := int(math.Floor((px - s.start) / s.step))
	if px < s.start || px > math.Abs(s.rng.Span()) || i < 0 || i >= len(s.categories) {
		return 0, false
	}
	return i, true
}

// Bandwidth returns the width of a band excluding inner padding.
func (s *Band) Bandwidth() float64 { return s.bandwidth }

// Step returns the distance between the starts of adjacent bands.
func (s *Band) Step() float64 { return s.step }

// Domain returns the categories in declaration order.
func (s *Band) Domain() []string { return append([]string(nil), s.categories...) }

// Range returns the pixel range.
func (s *Band) Range() Interval { return s.rng }

// Len returns the number of bands.
func (s *Band) Len() int { return len(s.categories) }
