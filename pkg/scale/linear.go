package scale

import (
	"math"

	cerrors "github.com/matzehuels/chartkit/pkg/errors"
)

// Interval is a closed numeric interval. For pixel ranges Min may be larger
// than Max (a vertical axis usually maps to [height, 0]).
type Interval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max - Min.
func (iv Interval) Span() float64 { return iv.Max - iv.Min }

// Mid returns the midpoint of the interval.
func (iv Interval) Mid() float64 { return iv.Min + iv.Span()/2 }

// Contains reports whether v lies within the interval, in either direction.
func (iv Interval) Contains(v float64) bool {
	lo, hi := math.Min(iv.Min, iv.Max), math.Max(iv.Min, iv.Max)
	return v >= lo && v <= hi
}

func (iv Interval) finite() bool {
	return !math.IsNaN(iv.Min) && !math.IsInf(iv.Min, 0) &&
		!math.IsNaN(iv.Max) && !math.IsInf(iv.Max, 0)
}

// Extent returns the smallest interval containing every finite value.
// It fails with EMPTY_DOMAIN when there is none.
func Extent(values []float64) (Interval, error) {
	iv := Interval{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		iv.Min = math.Min(iv.Min, v)
		iv.Max = math.Max(iv.Max, v)
	}
	if iv.Min > iv.Max {
		return Interval{}, cerrors.EmptyDomain("value extent")
	}
	return iv, nil
}

// WithBaseline widens iv so that it contains zero.
func WithBaseline(iv Interval) Interval {
	return Interval{Min: math.Min(0, iv.Min), Max: math.Max(0, iv.Max)}
}

// LinearOption configures a Linear scale.
type LinearOption func(*linearConfig)

type linearConfig struct {
	baseline bool
}

// WithoutBaseline keeps the domain as given instead of widening it to
// include zero.
func WithoutBaseline() LinearOption {
	return func(c *linearConfig) { c.baseline = false }
}

// Linear maps a continuous domain onto a pixel range.
type Linear struct {
	domain Interval
	rng    Interval
}

// NewLinear builds a linear scale. The pixel range must be finite and have
// a non-zero length; the domain must be finite.
func NewLinear(domain, rng Interval, opts ...LinearOption) (*Linear, error) {
	cfg := linearConfig{baseline: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !rng.finite() || rng.Span() == 0 {
		return nil, cerrors.InvalidRange(rng.Min, rng.Max)
	}
	if !domain.finite() {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "domain [%g, %g] must be finite", domain.Min, domain.Max)
	}
	if domain.Min > domain.Max {
		domain.Min, domain.Max = domain.Max, domain.Min
	}
	if cfg.baseline {
		domain = WithBaseline(domain)
	}
	return &Linear{domain: domain, rng: rng}, nil
}

// Map converts a domain value to a pixel. Values outside the domain are
// extrapolated. A degenerate domain maps everything to the range midpoint.
func (s *Linear) Map(v float64) float64 {
	span := s.domain.Span()
	if span == 0 {
		return s.rng.Mid()
	}
	return s.rng.Min + (v-s.domain.Min)/span*s.rng.Span()
}

// Invert converts a pixel back to a domain value. A degenerate domain
// inverts every pixel to its single value.
func (s *Linear) Invert(px float64) float64 {
	span := s.domain.Span()
	if span == 0 {
		return s.domain.Min
	}
	return s.domain.Min + (px-s.rng.Min)/s.rng.Span()*span
}

// Domain returns the (possibly baseline-widened) domain.
func (s *Linear) Domain() Interval { return s.domain }

// Range returns the pixel range.
func (s *Linear) Range() Interval { return s.rng }
