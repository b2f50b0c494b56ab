package interaction

import (
	"github.com/matzehuels/chartkit/pkg/scale"
)

// BandResolver resolves events for a band-scale (bar) chart.
type BandResolver struct {
	Band *scale.Band

	// YScale places the anchor at the top of the bar.
	YScale interface{ Map(float64) float64 }

	// Values holds the bar values by band index; nil entries are nulls.
	Values []*float64

	// DataStart is the pixel offset of the first band from the SVG origin.
	DataStart float64
}

// Resolve dispatches an event.
func (r *BandResolver) Resolve(e Event) Position {
	switch e.Kind {
	case PointerMove, TouchMove:
		return r.Pointer(e.X)
	case Keyboard:
		return r.Index(e.Index)
	}
	return NoPosition
}

// Pointer hit-tests the band under svgX. Pointers outside every band,
// and bands without a value, resolve to NoPosition.
func (r *BandResolver) Pointer(svgX float64) Position {
	if r == nil || r.Band == nil || r.YScale == nil {
		return NoPosition
	}
	i, ok := r.Band.IndexAt(svgX - r.DataStart)
	if !ok || i >= len(r.Values) || r.Values[i] == nil {
		return NoPosition
	}
	return r.anchor(i)
}

// Index resolves an explicit index, clamped to the bands with values.
func (r *BandResolver) Index(i int) Position {
	if r == nil || r.Band == nil || r.YScale == nil {
		return NoPosition
	}
	n := min(len(r.Values), r.Band.Len())
	if n == 0 {
		return NoPosition
	}
	i = Clamp(i, n)
	if r.Values[i] == nil {
		return NoPosition
	}
	return r.anchor(i)
}

// anchor centres the tooltip over band i at the bar's value.
func (r *BandResolver) anchor(i int) Position {
	return Position{
		X:           r.DataStart + r.Band.Center(i),
		Y:           r.YScale.Map(*r.Values[i]),
		ActiveIndex: i,
		Placement:   PlacementDatum,
		Valid:       true,
	}
}
