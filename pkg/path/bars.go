package path

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/scale"
	"github.com/matzehuels/chartkit/pkg/series"
)

// Bar is the rectangle of one bar. Negative values hang below the zero
// baseline; null values collapse to a zero-height bar on the baseline.
type Bar struct {
	Index int `json:"index"`

	// Series is the declaration index of the series the bar belongs to.
	Series int `json:"series"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Value  float64 `json:"value"`
	IsNull bool    `json:"is_null,omitempty"`
}

// Bars lays out one bar per data point. Points beyond the band count are
// dropped.
func Bars(data []series.DataPoint, band *scale.Band, y Scale) []Bar {
	n := min(len(data), band.Len())
	out := make([]Bar, n)
	for i := range n {
		out[i] = bar(data[i], i, band.MapIndex(i), band.Bandwidth(), y)
	}
	return out
}

// GroupedBars lays out one group of bars per band: group splits every
// band into one slot per series, in declaration order. group's range must
// span the outer bandwidth. Padded tail slots of shorter series get no bar.
func GroupedBars(n *series.Normalized, band, group *scale.Band, y Scale) []Bar {
	var out []Bar
	for i := range min(n.Length, band.Len()) {
		x := band.MapIndex(i)
		for s := range min(n.Count(), group.Len()) {
			p, ok := n.At(s, i)
			if !ok {
				continue
			}
			b := bar(p, i, x+group.MapIndex(s), group.Bandwidth(), y)
			b.Series = s
			out = append(out, b)
		}
	}
	return out
}

func bar(p series.DataPoint, index int, x, width float64, y Scale) Bar {
	zero := y.Map(0)
	v := p.ValueOr(0)
	top := y.Map(v)
	return Bar{
		Index:  index,
		X:      x,
		Y:      math.Min(zero, top),
		Width:  width,
		Height: math.Abs(zero - top),
		Value:  v,
		IsNull: p.IsNull(),
	}
}
