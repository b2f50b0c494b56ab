package textmetrics

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/chartkit/pkg/observability"
)

// DefaultCacheSize bounds the number of (text, font size) widths kept by
// a Cached measurer.
const DefaultCacheSize = 4096

type measureKey struct {
	text string
	size float64
}

// Cached memoizes another Measurer in a size-bounded LRU. It is safe for
// concurrent use and emits observability.Measure() events.
type Cached struct {
	inner Measurer
	cache *lru.Cache[measureKey, float64]
}

// NewCached wraps inner with an LRU of the given capacity. A non-positive
// size selects DefaultCacheSize.
func NewCached(inner Measurer, size int) (*Cached, error) {
	if inner == nil {
		inner = Default()
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.NewWithEvict(size, func(measureKey, float64) {
		observability.Measure().OnMeasureEvict()
	})
	if err != nil {
		return nil, err
	}
	return &Cached{inner: inner, cache: c}, nil
}

// Measure implements Measurer.
func (c *Cached) Measure(text string, fontSize float64) float64 {
	k := measureKey{text, fontSize}
	if w, ok := c.cache.Get(k); ok {
		observability.Measure().OnMeasureHit(text, fontSize)
		return w
	}
	observability.Measure().OnMeasureMiss(text, fontSize)
	w := c.inner.Measure(text, fontSize)
	c.cache.Add(k, w)
	return w
}

// Len returns the number of cached widths.
func (c *Cached) Len() int { return c.cache.Len() }

// Purge drops every cached width.
func (c *Cached) Purge() { c.cache.Purge() }

var _ Measurer = (*Cached)(nil)
