// Package pipeline runs chart definitions through the geometry engine.
//
// This package implements the decode → compute → encode pipeline shared by
// the CLI and the preview server. By centralizing it, both entry points use
// the same cache keys, hooks and logging.
//
// # Architecture
//
// A run has three stages:
//
//  1. Decode: parse a TOML or JSON definition and validate it
//  2. Compute: lay out the chart with the configured text measurer
//  3. Encode: serialise the geometry as JSON
//
// Encoded geometry is cached under a key derived from the definition bytes,
// the measurer name and the engine version, so a cache hit skips all three
// stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Definition: data,
//	    Format:     "toml",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.JSON)
package pipeline

import (
	"time"

	cerrors "github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/io"
)

// =============================================================================
// Options
// =============================================================================

// Options describes one pipeline run.
type Options struct {
	// Definition holds the raw definition bytes.
	Definition []byte

	// Format is the definition format ("toml" or "json").
	Format string

	// Name identifies the definition in logs (usually its path).
	Name string

	// Refresh skips the cache read; the fresh result is still stored.
	Refresh bool
}

// Validate checks that the options describe a runnable definition.
func (o Options) Validate() error {
	if len(o.Definition) == 0 {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "empty chart definition")
	}
	return cerrors.ValidateFormatName(o.Format)
}

// =============================================================================
// Results
// =============================================================================

// Stats summarises a run.
type Stats struct {
	SeriesCount int
	PointCount  int
	Duration    time.Duration
}

// Result is the output of a run.
type Result struct {
	Geometry *io.Geometry
	JSON     []byte
	Key      string
	CacheHit bool
	Stats    Stats
}

func statsFor(g *io.Geometry) Stats {
	var s Stats
	switch {
	case g.Line != nil:
		s.SeriesCount = len(g.Line.Coordinates)
		for _, c := range g.Line.Coordinates {
			s.PointCount += len(c)
		}
	case g.Bar != nil:
		s.PointCount = len(g.Bar.Bars)
		for _, b := range g.Bar.Bars {
			s.SeriesCount = max(s.SeriesCount, b.Series+1)
		}
	}
	return s
}
