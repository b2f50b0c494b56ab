// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about text measurement, animation, geometry computation and
// cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Engine packages stay pure: hooks only observe, they never change results.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetMeasureHooks(&myMeasureHooks{})
//	    observability.SetAnimationHooks(&myAnimationHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Measure().OnMeasureMiss(text, fontSize)
//	observability.Animation().OnAnimationSkipped(length, ceiling)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Measure Hooks
// =============================================================================

// MeasureHooks receives events from the cached text measurer.
type MeasureHooks interface {
	// OnMeasureHit records a width served from the measurement cache.
	OnMeasureHit(text string, fontSize float64)

	// OnMeasureMiss records a width computed by the underlying measurer.
	OnMeasureMiss(text string, fontSize float64)

	// OnMeasureEvict records an entry evicted from a size-bounded cache.
	OnMeasureEvict()
}

// =============================================================================
// Animation Hooks
// =============================================================================

// AnimationHooks receives events from animation interpolators.
type AnimationHooks interface {
	// OnAnimationStart records a new transition towards fresh target coordinates.
	OnAnimationStart(seriesLength int)

	// OnAnimationSuperseded records a data change arriving mid-animation.
	OnAnimationSuperseded(progress float64)

	// OnAnimationSkipped records a transition bypassed because the series
	// length exceeds the animation ceiling (or animation is disabled).
	OnAnimationSkipped(seriesLength, ceiling int)

	// OnAnimationComplete records an animation reaching progress 1.
	OnAnimationComplete()
}

// =============================================================================
// Compute Hooks
// =============================================================================

// ComputeHooks receives events from geometry computation entry points
// (CLI, preview server).
type ComputeHooks interface {
	OnComputeStart(ctx context.Context, kind string, seriesCount int)
	OnComputeComplete(ctx context.Context, kind string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from geometry cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopMeasureHooks is a no-op implementation of MeasureHooks.
type NoopMeasureHooks struct{}

func (NoopMeasureHooks) OnMeasureHit(string, float64)  {}
func (NoopMeasureHooks) OnMeasureMiss(string, float64) {}
func (NoopMeasureHooks) OnMeasureEvict()               {}

// NoopAnimationHooks is a no-op implementation of AnimationHooks.
type NoopAnimationHooks struct{}

func (NoopAnimationHooks) OnAnimationStart(int)          {}
func (NoopAnimationHooks) OnAnimationSuperseded(float64) {}
func (NoopAnimationHooks) OnAnimationSkipped(int, int)   {}
func (NoopAnimationHooks) OnAnimationComplete()          {}

// NoopComputeHooks is a no-op implementation of ComputeHooks.
type NoopComputeHooks struct{}

func (NoopComputeHooks) OnComputeStart(context.Context, string, int)                     {}
func (NoopComputeHooks) OnComputeComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	measureHooks   MeasureHooks   = NoopMeasureHooks{}
	animationHooks AnimationHooks = NoopAnimationHooks{}
	computeHooks   ComputeHooks   = NoopComputeHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetMeasureHooks registers custom text measurement hooks.
func SetMeasureHooks(h MeasureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		measureHooks = h
	}
}

// SetAnimationHooks registers custom animation hooks.
func SetAnimationHooks(h AnimationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		animationHooks = h
	}
}

// SetComputeHooks registers custom compute hooks.
func SetComputeHooks(h ComputeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		computeHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Measure returns the registered measurement hooks.
func Measure() MeasureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return measureHooks
}

// Animation returns the registered animation hooks.
func Animation() AnimationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return animationHooks
}

// Compute returns the registered compute hooks.
func Compute() ComputeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return computeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	measureHooks = NoopMeasureHooks{}
	animationHooks = NoopAnimationHooks{}
	computeHooks = NoopComputeHooks{}
	cacheHooks = NoopCacheHooks{}
}
