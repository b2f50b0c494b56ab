// Package interaction maps pointer, touch and keyboard events to the
// active data index and the tooltip anchor.
//
// # Overview
//
// A [Resolver] is rebuilt whenever the chart's x scale changes and is then
// called synchronously for every host event. Resolution never fails:
// stale or out-of-range indices are clamped and an unavailable scale or an
// empty chart yields [NoPosition], which callers treat as "render
// nothing".
//
// Pointer and touch events invert the x scale and round the fractional
// index with the configured [Rounding] (half up by default). The anchor
// follows the raw pointer. Keyboard navigation anchors the tooltip to the
// data point itself: x = XScale(index), y = 0.
//
// [BandResolver] does the same for band-scale (bar) charts, where the hit
// test is the band under the pointer rather than the nearest index.
package interaction

import (
	"math"

	cerrors "github.com/matzehuels/chartkit/pkg/errors"
)

// Scale is the x scale a resolver inverts. *scale.Linear satisfies it.
type Scale interface {
	Map(v float64) float64
	Invert(px float64) float64
}

// Rounding resolves a fractional index to an integer one.
type Rounding int

const (
	// RoundHalfUp rounds to the nearest index; exact halves go up.
	RoundHalfUp Rounding = iota
	// RoundHalfDown rounds to the nearest index; exact halves go down.
	RoundHalfDown
	// RoundHalfEven rounds to the nearest index; exact halves go to the
	// even neighbour.
	RoundHalfEven
	// RoundFloor always picks the index at or left of the pointer.
	RoundFloor
)

func (r Rounding) String() string {
	switch r {
	case RoundHalfDown:
		return "half-down"
	case RoundHalfEven:
		return "half-even"
	case RoundFloor:
		return "floor"
	default:
		return "half-up"
	}
}

// ParseRounding resolves a rounding mode by name. The empty name selects
// RoundHalfUp.
func ParseRounding(name string) (Rounding, error) {
	if name == "" {
		return RoundHalfUp, nil
	}
	for _, r := range []Rounding{RoundHalfUp, RoundHalfDown, RoundHalfEven, RoundFloor} {
		if r.String() == name {
			return r, nil
		}
	}
	return RoundHalfUp, cerrors.New(cerrors.ErrCodeInvalidInput,
		"unknown rounding %q (must be half-up, half-down, half-even or floor)", name)
}

// Apply rounds f.
func (r Rounding) Apply(f float64) float64 {
	switch r {
	case RoundHalfDown:
		return math.Ceil(f - 0.5)
	case RoundHalfEven:
		return math.RoundToEven(f)
	case RoundFloor:
		return math.Floor(f)
	default:
		return math.Floor(f + 0.5)
	}
}

// Placement says where a tooltip is anchored.
type Placement string

const (
	// PlacementPointer anchors the tooltip at the pointer.
	PlacementPointer Placement = "pointer"
	// PlacementDatum anchors the tooltip at the data point.
	PlacementDatum Placement = "datum"
)

// Position is a resolved tooltip anchor.
type Position struct {
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	ActiveIndex int       `json:"active_index"`
	Placement   Placement `json:"placement"`
	Valid       bool      `json:"valid"`
}

// NoPosition is the neutral result: nothing to highlight.
var NoPosition = Position{ActiveIndex: -1}

// EventKind is the type of a host event.
type EventKind int

const (
	PointerMove EventKind = iota
	PointerLeave
	TouchMove
	TouchEnd
	Keyboard
)

func (k EventKind) String() string {
	switch k {
	case PointerMove:
		return "pointer-move"
	case PointerLeave:
		return "pointer-leave"
	case TouchMove:
		return "touch-move"
	case TouchEnd:
		return "touch-end"
	case Keyboard:
		return "keyboard"
	}
	return "unknown"
}

// ParseEventKind resolves an event kind by the name String returns.
func ParseEventKind(name string) (EventKind, error) {
	for k := PointerMove; k <= Keyboard; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, cerrors.New(cerrors.ErrCodeInvalidInput, "unknown event kind %q", name)
}

// Event is a host event in SVG-local coordinates. Index is only read for
// Keyboard events.
type Event struct {
	Kind  EventKind
	X, Y  float64
	Index int
}

// Resolver resolves events for a linear x axis.
type Resolver struct {
	// XScale maps data indices to pixels within the drawable area.
	XScale Scale

	// Length is the number of index positions (the normalized length).
	Length int

	// DataStart is the pixel offset of index 0 from the SVG origin.
	DataStart float64

	Rounding Rounding
}

// Resolve dispatches an event. Leave and touch-end events clear the
// position.
func (r *Resolver) Resolve(e Event) Position {
	switch e.Kind {
	case PointerMove, TouchMove:
		return r.Pointer(e.X, e.Y)
	case Keyboard:
		return r.Index(e.Index)
	}
	return NoPosition
}

// Pointer resolves a pointer at (svgX, svgY). The returned anchor is the
// pointer itself.
func (r *Resolver) Pointer(svgX, svgY float64) Position {
	if !r.ready() || math.IsNaN(svgX) {
		return NoPosition
	}
	f := r.XScale.Invert(svgX - r.DataStart)
	if math.IsNaN(f) {
		return NoPosition
	}
	return Position{
		X:           svgX,
		Y:           svgY,
		ActiveIndex: r.clamp(r.Rounding.Apply(f)),
		Placement:   PlacementPointer,
		Valid:       true,
	}
}

// Index resolves an explicit index, anchoring at the data point.
func (r *Resolver) Index(i int) Position {
	if !r.ready() {
		return NoPosition
	}
	i = Clamp(i, r.Length)
	return Position{
		X:           r.XScale.Map(float64(i)),
		Y:           0,
		ActiveIndex: i,
		Placement:   PlacementDatum,
		Valid:       true,
	}
}

func (r *Resolver) ready() bool { return r != nil && r.XScale != nil && r.Length > 0 }

func (r *Resolver) clamp(f float64) int {
	if f <= 0 {
		return 0
	}
	if f >= float64(r.Length-1) {
		return r.Length - 1
	}
	return int(f)
}

// Clamp limits i to [0, length-1]. A non-positive length yields 0.
func Clamp(i, length int) int {
	if length <= 0 || i < 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	return i
}
