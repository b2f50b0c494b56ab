// Package path turns normalized series and scales into pixel geometry.
//
// # Overview
//
// [Line] produces one [Coordinate] per data point with x = xScale(index)
// and y = yScale(value), treating null values as zero. Null points keep
// their slot and are flagged with IsNull so a renderer can break the line
// at null runs ([Segments] does the splitting).
//
// Curve smoothing is a pluggable strategy ([Curve]); [Linear] is the
// default and [StepRounded] is what charts use when the theme enables
// splines. [SVGPath] formats drawing commands as SVG path data.
//
// [Area] closes a line down to a baseline for filled series and [Bars]
// computes rectangles for band-scale bar charts.
package path

import (
	"github.com/matzehuels/chartkit/pkg/series"
)

// Scale maps a value to a pixel. Both *scale.Linear and plain functions
// (via ScaleFunc) satisfy it.
type Scale interface {
	Map(v float64) float64
}

// ScaleFunc adapts a function to the Scale interface.
type ScaleFunc func(float64) float64

// Map calls f(v).
func (f ScaleFunc) Map(v float64) float64 { return f(v) }

// Coordinate is one point of a series in pixel space.
type Coordinate struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	IsNull bool    `json:"is_null,omitempty"`
}

// Line returns the coordinates of one series.
func Line(data []series.DataPoint, x, y Scale) []Coordinate {
	out := make([]Coordinate, len(data))
	for i, p := range data {
		out[i] = Coordinate{
			X:      x.Map(float64(i)),
			Y:      y.Map(p.ValueOr(0)),
			IsNull: p.IsNull(),
		}
	}
	return out
}

// Lines returns the coordinates of every series in render order. Each
// series keeps its own length; padded tail slots produce no coordinates.
func Lines(n *series.Normalized, x, y Scale) [][]Coordinate {
	all := n.Series()
	out := make([][]Coordinate, 0, len(all))
	for _, orig := range n.RenderOrder() {
		out = append(out, Line(all[orig].Data, x, y))
	}
	return out
}

// Segments splits coordinates into runs of non-null points.
func Segments(coords []Coordinate) [][]Coordinate {
	var out [][]Coordinate
	start := -1
	for i, c := range coords {
		switch {
		case !c.IsNull && start < 0:
			start = i
		case c.IsNull && start >= 0:
			out = append(out, coords[start:i])
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, coords[start:])
	}
	return out
}
