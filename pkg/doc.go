// Package pkg provides the core libraries for chartkit chart geometry.
//
// # Overview
//
// Chartkit turns chart definitions into everything a renderer needs to draw
// them: axis ticks, wrapped labels, margins, SVG paths and bar rectangles,
// plus the interaction and animation state of a live chart. The pkg
// directory is organized into four main areas:
//
//  1. Engine - pure geometry ([scale], [ticks], [labels], [series], [path])
//  2. Interaction - live chart state ([interaction], [animation], [chart])
//  3. Infrastructure - definitions, caching and orchestration ([io],
//     [cache], [pipeline])
//  4. Support - [textmetrics], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow through chartkit:
//
//	TOML/JSON definition
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [chart] package (ticks, labels, margins, scales)
//	         ↓
//	    [path] package (coordinates, SVG paths, bars)
//	         ↓
//	    geometry JSON
//
// Live charts keep a [chart.Instance], which feeds host events through
// [interaction] and eases between geometries with [animation].
//
// # Quick Start
//
// Lay out a line chart:
//
//	import (
//	    "github.com/matzehuels/chartkit/pkg/chart"
//	    "github.com/matzehuels/chartkit/pkg/series"
//	)
//
//	g, err := chart.ComputeLine(chart.LineInput{
//	    Series: []series.Series{{
//	        Name: "Sales",
//	        Data: []series.DataPoint{
//	            series.Point(series.StringKey("Jan"), 1200),
//	            series.Point(series.StringKey("Feb"), 1850),
//	        },
//	    }},
//	    Dimensions: chart.Dimensions{Width: 640, Height: 320},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(g.Paths[0].D)
//
// # Main Packages
//
// ## Engine
//
// [textmetrics] - Label width measurement: a character-class estimator, a
// terminal cell counter and an OpenType measurer, with an LRU cache.
//
// [scale] - Linear and band scales mapping data to pixels.
//
// [ticks] - Y axis tick planning: nice steps, label formatting and the axis
// margin the labels need.
//
// [labels] - X axis label layout: wrapping, minimal labels and visibility
// thinning.
//
// [series] - Series validation and normalization to a common length.
//
// [path] - Coordinates, SVG path data (linear, step and rounded step curves),
// areas and bars.
//
// ## Interaction
//
// [interaction] - Pointer, touch and keyboard resolution to the active index
// and tooltip anchor.
//
// [animation] - Interpolation between coordinate sets.
//
// [chart] - Line and bar layout, and the stateful chart instance.
//
// ## Infrastructure
//
// [io] - TOML and JSON chart definitions and geometry export.
//
// [cache] - Geometry cache backends (file, Redis, null).
//
// [pipeline] - Decode → compute → encode with caching, shared by the CLI and
// the preview server.
package pkg
