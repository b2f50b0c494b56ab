package textmetrics

import (
	"math"
	"sync"
	"testing"

	"github.com/matzehuels/chartkit/pkg/observability"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEstimator(t *testing.T) {
	tests := []struct {
		name     string
		est      Estimator
		text     string
		fontSize float64
		want     float64
	}{
		{"empty", Estimator{}, "", 12, 0},
		{"ascii", Estimator{}, "abcd", 10, 4 * 0.55 * 10},
		{"custom ratio", Estimator{CharWidth: 0.5}, "ab", 20, 20},
		{"wide runes count twice", Estimator{}, "日本", 10, 4 * 0.55 * 10},
		{"combining mark adds nothing", Estimator{}, "é", 10, 0.55 * 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.est.Measure(tt.text, tt.fontSize); !approx(got, tt.want) {
				t.Errorf("Measure(%q, %v) = %v, want %v", tt.text, tt.fontSize, got, tt.want)
			}
		})
	}
}

func TestCells(t *testing.T) {
	if got := (Cells{}).Measure("abc", 40); got != 3 {
		t.Errorf("Cells.Measure(abc) = %v, want 3", got)
	}
	if got := (Cells{}).Measure("日本", 12); got != 4 {
		t.Errorf("Cells.Measure(日本) = %v, want 4", got)
	}
}

func TestMeasurerFunc(t *testing.T) {
	m := MeasurerFunc(func(text string, size float64) float64 { return float64(len(text)) * size })
	if got := m.Measure("ab", 3); got != 6 {
		t.Errorf("Measure() = %v, want 6", got)
	}
}

func TestOpenType(t *testing.T) {
	m, err := NewGoRegular()
	if err != nil {
		t.Fatalf("NewGoRegular() error = %v", err)
	}
	defer m.Close()

	short := m.Measure("1", 12)
	long := m.Measure("1,000,000", 12)
	if short <= 0 {
		t.Fatalf("Measure(1) = %v, want > 0", short)
	}
	if long <= short {
		t.Errorf("longer text should be wider: %v <= %v", long, short)
	}

	big := m.Measure("1,000,000", 24)
	if math.Abs(big-2*long) > 2 {
		t.Errorf("doubling the font size should roughly double the width: %v vs %v", big, long)
	}

	if got := m.Measure("", 12); got != 0 {
		t.Errorf("Measure(\"\") = %v, want 0", got)
	}
}

func TestNewOpenTypeInvalid(t *testing.T) {
	if _, err := NewOpenType([]byte("not a font")); err == nil {
		t.Error("expected error for invalid font data")
	}
}

type countingMeasurer struct {
	mu    sync.Mutex
	calls int
}

func (c *countingMeasurer) Measure(text string, size float64) float64 {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return float64(len(text)) * size
}

type recordingHooks struct {
	observability.NoopMeasureHooks
	hits, misses, evictions int
}

func (r *recordingHooks) OnMeasureHit(string, float64)  { r.hits++ }
func (r *recordingHooks) OnMeasureMiss(string, float64) { r.misses++ }
func (r *recordingHooks) OnMeasureEvict()               { r.evictions++ }

func TestCached(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetMeasureHooks(hooks)
	defer observability.Reset()

	inner := &countingMeasurer{}
	c, err := NewCached(inner, 2)
	if err != nil {
		t.Fatalf("NewCached() error = %v", err)
	}

	if got := c.Measure("ab", 10); got != 20 {
		t.Errorf("Measure() = %v, want 20", got)
	}
	c.Measure("ab", 10)
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}

	// Same text at a different size is a different entry.
	c.Measure("ab", 12)
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}

	// Third distinct key evicts the least recently used one.
	c.Measure("xyz", 10)
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if hooks.hits != 1 || hooks.misses != 3 || hooks.evictions != 1 {
		t.Errorf("hooks = %d hits, %d misses, %d evictions; want 1, 3, 1",
			hooks.hits, hooks.misses, hooks.evictions)
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d, want 0", c.Len())
	}
}

func TestCachedDefaults(t *testing.T) {
	c, err := NewCached(nil, 0)
	if err != nil {
		t.Fatalf("NewCached() error = %v", err)
	}
	if got, want := c.Measure("abc", 10), (Estimator{}).Measure("abc", 10); !approx(got, want) {
		t.Errorf("Measure() = %v, want %v", got, want)
	}
}
