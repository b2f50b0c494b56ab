package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/buildinfo"
	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/io"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/textmetrics"
)

// keyType labels geometry entries in cache hooks.
const keyType = "geometry"

// Runner encapsulates pipeline execution with caching.
// Both CLI and preview server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for its cache, measurer and logger.
// Multiple goroutines can safely use the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Measurer measures label text. It must be safe for concurrent use.
	Measurer textmetrics.Measurer

	// MeasurerName is part of every cache key.
	MeasurerName string

	// TTL is how long results stay cached.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The runner measures with the estimating measurer until SetMeasurer is called.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:        c,
		Keyer:        keyer,
		Logger:       logger,
		Measurer:     textmetrics.Default(),
		MeasurerName: "estimate",
		TTL:          cache.DefaultTTL,
	}
}

// SetMeasurer replaces the text measurer. name distinguishes cache entries
// computed with different measurers.
func (r *Runner) SetMeasurer(name string, m textmetrics.Measurer) {
	r.MeasurerName = name
	r.Measurer = m
}

// Execute decodes, computes and encodes a definition, serving the encoded
// geometry from cache when possible.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := r.Keyer.GeometryKey(opts.Definition, cache.GeometryKeyOpts{
		Measurer: r.MeasurerName,
		Version:  buildinfo.Version,
	})
	logger := r.Logger.With("chart", opts.Name)

	if !opts.Refresh {
		if res, ok := r.cached(ctx, key); ok {
			logger.Debug("geometry cache hit", "key", key)
			return res, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyType)

	start := time.Now()
	d, err := io.Read(bytes.NewReader(opts.Definition), opts.Format)
	if err != nil {
		return nil, err
	}

	hooks := observability.Compute()
	hooks.OnComputeStart(ctx, d.Kind, len(d.Series))
	g, err := io.Compute(d, r.Measurer)
	hooks.OnComputeComplete(ctx, d.Kind, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := io.WriteJSON(g, &buf); err != nil {
		return nil, fmt.Errorf("encode geometry: %w", err)
	}

	res := &Result{Geometry: g, JSON: buf.Bytes(), Key: key, Stats: statsFor(g)}
	res.Stats.Duration = time.Since(start)

	if err := r.Cache.Set(ctx, key, res.JSON, r.TTL); err != nil {
		logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyType, len(res.JSON))
	}

	logger.Info("computed geometry",
		"kind", g.Kind,
		"series", res.Stats.SeriesCount,
		"points", res.Stats.PointCount,
		"duration", res.Stats.Duration)
	return res, nil
}

// cached returns the stored result for key. Read failures and undecodable
// entries count as misses.
func (r *Runner) cached(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	g, err := io.ReadGeometry(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return &Result{Geometry: g, JSON: data, Key: key, CacheHit: true, Stats: statsFor(g)}, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
