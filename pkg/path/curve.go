package path

import (
	"math"
	"strconv"
	"strings"
)

// Op is a path drawing operation.
type Op byte

const (
	MoveTo Op = 'M'
	LineTo Op = 'L'
	QuadTo Op = 'Q' // quadratic Bézier through control point (CX, CY)
	Close  Op = 'Z'
)

func (o Op) String() string { return string(rune(o)) }

// MarshalText encodes the operation as its SVG letter.
func (o Op) MarshalText() ([]byte, error) { return []byte{byte(o)}, nil }

// Command is one drawing operation ending at (X, Y).
type Command struct {
	Op     Op      `json:"op"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	CX, CY float64 `json:"-"`
}

// Curve interpolates a run of non-null points into drawing commands.
type Curve interface {
	Commands(points []Coordinate) []Command
}

// Linear connects points with straight lines.
type Linear struct{}

// Commands implements Curve.
func (Linear) Commands(points []Coordinate) []Command {
	out := make([]Command, 0, len(points))
	for i, p := range points {
		op := LineTo
		if i == 0 {
			op = MoveTo
		}
		out = append(out, Command{Op: op, X: p.X, Y: p.Y})
	}
	return out
}

// Step moves horizontally to the midpoint between two points, vertically
// to the next value, then horizontally to the next point.
type Step struct{}

// Commands implements Curve.
func (Step) Commands(points []Coordinate) []Command {
	if len(points) == 0 {
		return nil
	}
	out := []Command{{Op: MoveTo, X: points[0].X, Y: points[0].Y}}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		mid := (a.X + b.X) / 2
		out = append(out,
			Command{Op: LineTo, X: mid, Y: a.Y},
			Command{Op: LineTo, X: mid, Y: b.Y},
			Command{Op: LineTo, X: b.X, Y: b.Y},
		)
	}
	return out
}

// DefaultStepRadius is the corner radius of StepRounded.
const DefaultStepRadius = 5.0

// StepRounded is Step with the two corners of every vertical riser
// rounded by quadratic curves.
type StepRounded struct {
	// Radius overrides DefaultStepRadius when positive. It shrinks further
	// when a step is too short or too narrow.
	Radius float64
}

// Commands implements Curve.
func (c StepRounded) Commands(points []Coordinate) []Command {
	if len(points) == 0 {
		return nil
	}
	radius := c.Radius
	if radius <= 0 {
		radius = DefaultStepRadius
	}
	out := []Command{{Op: MoveTo, X: points[0].X, Y: points[0].Y}}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if a.Y == b.Y {
			out = append(out, Command{Op: LineTo, X: b.X, Y: b.Y})
			continue
		}
		mid := (a.X + b.X) / 2
		dir := math.Copysign(1, b.Y-a.Y)
		side := math.Copysign(1, b.X-a.X)
		r := math.Min(radius, math.Min(math.Abs(mid-a.X), math.Abs(b.Y-a.Y)/2))
		out = append(out,
			Command{Op: LineTo, X: mid - side*r, Y: a.Y},
			Command{Op: QuadTo, CX: mid, CY: a.Y, X: mid, Y: a.Y + dir*r},
			Command{Op: LineTo, X: mid, Y: b.Y - dir*r},
			Command{Op: QuadTo, CX: mid, CY: b.Y, X: mid + side*r, Y: b.Y},
			Command{Op: LineTo, X: b.X, Y: b.Y},
		)
	}
	return out
}

// CurveFor returns the curve charts use for a theme's spline flag.
func CurveFor(hasSpline bool) Curve {
	if hasSpline {
		return StepRounded{}
	}
	return Linear{}
}

// SVGPath formats commands as SVG path data.
func SVGPath(cmds []Command) string {
	var b strings.Builder
	for _, c := range cmds {
		b.WriteByte(byte(c.Op))
		switch c.Op {
		case Close:
			continue
		case QuadTo:
			writePoint(&b, c.CX, c.CY)
			b.WriteByte(' ')
		}
		writePoint(&b, c.X, c.Y)
	}
	return b.String()
}

func writePoint(b *strings.Builder, x, y float64) {
	b.WriteString(formatNumber(x))
	b.WriteByte(',')
	b.WriteString(formatNumber(y))
}

// formatNumber prints v with at most three decimals.
func formatNumber(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// D returns SVG path data for coordinates, starting a new subpath after
// every run of nulls. A nil curve draws straight lines.
func D(coords []Coordinate, c Curve) string {
	if c == nil {
		c = Linear{}
	}
	var b strings.Builder
	for _, seg := range Segments(coords) {
		b.WriteString(SVGPath(c.Commands(seg)))
	}
	return b.String()
}

// Area returns SVG path data filling the region between the line and
// baselineY, one closed subpath per run of non-null points.
func Area(coords []Coordinate, baselineY float64, c Curve) string {
	if c == nil {
		c = Linear{}
	}
	var b strings.Builder
	for _, seg := range Segments(coords) {
		cmds := c.Commands(seg)
		first, last := seg[0], seg[len(seg)-1]
		cmds = append(cmds,
			Command{Op: LineTo, X: last.X, Y: baselineY},
			Command{Op: LineTo, X: first.X, Y: baselineY},
			Command{Op: Close},
		)
		b.WriteString(SVGPath(cmds))
	}
	return b.String()
}
