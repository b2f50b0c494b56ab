package pipeline

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chartkit/pkg/cache"
	cerrors "github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/textmetrics"
)

const lineTOML = `
kind = "line"
width = 600
height = 300

[[series]]
name = "A"
data = [{ key = "a", value = 0 }, { key = "b", value = 50 }, { key = "c", value = 100 }]

[[series]]
name = "B"
data = [{ key = "a", value = 10 }, { key = "b" }]
`

const barJSON = `{
  "kind": "bar",
  "series": [{"name": "Votes", "data": [{"key": "x", "value": 3}, {"key": "y", "value": 5}]}]
}`

type recordingHooks struct {
	mu                    sync.Mutex
	hits, misses, sets    int
	starts, completes     int
	lastKind              string
	lastErr               error
	lastSeries, lastBytes int
}

func (h *recordingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *recordingHooks) OnCacheSet(_ context.Context, _ string, size int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
	h.lastBytes = size
}

func (h *recordingHooks) OnComputeStart(_ context.Context, kind string, n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
	h.lastKind = kind
	h.lastSeries = n
}

func (h *recordingHooks) OnComputeComplete(_ context.Context, _ string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completes++
	h.lastErr = err
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(c, nil, log.New(io.Discard))
	t.Cleanup(func() { r.Close() })
	return r
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code cerrors.Code
	}{
		{"empty", Options{Format: "toml"}, cerrors.ErrCodeInvalidInput},
		{"format", Options{Definition: []byte("x"), Format: "yaml"}, cerrors.ErrCodeInvalidFormat},
		{"ok", Options{Definition: []byte("x"), Format: "json"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, cerrors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	assert.IsType(t, &cache.NullCache{}, r.Cache)
	assert.NotNil(t, r.Keyer)
	assert.NotNil(t, r.Logger)
	assert.Equal(t, "estimate", r.MeasurerName)
	assert.Equal(t, cache.DefaultTTL, r.TTL)
}

func TestExecuteCaches(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetCacheHooks(hooks)
	observability.SetComputeHooks(hooks)
	defer observability.Reset()

	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Definition: []byte(lineTOML), Format: "toml", Name: "line.toml"}

	first, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	require.NotNil(t, first.Geometry.Line)
	assert.Equal(t, 2, first.Stats.SeriesCount)
	assert.Equal(t, "line", hooks.lastKind)
	assert.Equal(t, 2, hooks.lastSeries)
	assert.Equal(t, 1, hooks.misses)
	assert.Equal(t, 1, hooks.sets)
	assert.Equal(t, len(first.JSON), hooks.lastBytes)

	second, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Key, second.Key)
	assert.Equal(t, first.JSON, second.JSON)
	assert.Equal(t, first.Geometry.Line.Paths, second.Geometry.Line.Paths)
	assert.Equal(t, first.Stats.PointCount, second.Stats.PointCount)
	assert.Equal(t, 1, hooks.hits)
	assert.Equal(t, 1, hooks.starts, "a hit must not recompute")

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.False(t, third.CacheHit)
	assert.Equal(t, 2, hooks.starts)
}

func TestExecuteMeasurerChangesKey(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Definition: []byte(barJSON), Format: "json"}

	a, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	require.NotNil(t, a.Geometry.Bar)
	assert.Equal(t, 2, a.Stats.PointCount)
	assert.Equal(t, 1, a.Stats.SeriesCount)

	r.SetMeasurer("cells", textmetrics.Cells{})
	b, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.False(t, b.CacheHit)
	assert.NotEqual(t, a.Key, b.Key)
}

func TestExecuteErrors(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetComputeHooks(hooks)
	defer observability.Reset()

	r := newTestRunner(t)
	ctx := context.Background()

	_, err := r.Execute(ctx, Options{Definition: []byte(`kind = "pie"`), Format: "toml"})
	assert.True(t, cerrors.IsCallerError(err), "got %v", err)
	assert.Zero(t, hooks.starts, "invalid definitions are rejected before compute")

	_, err = r.Execute(ctx, Options{Definition: []byte(`kind = "line"
width = 40
[[series]]
name = "A"
data = [{ key = "a", value = 1 }]
`), Format: "toml"})
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeInvalidRange), "got %v", err)
	assert.Equal(t, 1, hooks.completes)
	assert.Error(t, hooks.lastErr)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = r.Execute(cancelled, Options{Definition: []byte(barJSON), Format: "json"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecuteGroupedBarStats(t *testing.T) {
	r := newTestRunner(t)
	def := `{
  "kind": "bar",
  "series": [
    {"name": "2023", "data": [{"key": "x", "value": 3}, {"key": "y", "value": 5}]},
    {"name": "2024", "data": [{"key": "x", "value": 4}]}
  ]
}`
	res, err := r.Execute(context.Background(), Options{Definition: []byte(def), Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.SeriesCount)
	assert.Equal(t, 3, res.Stats.PointCount)
}
