package series

import (
	"math"
	"strconv"

	"github.com/matzehuels/chartkit/pkg/textmetrics"
)

// Normalized aligns a set of series by position.
type Normalized struct {
	series []Series

	// Length is the length of the longest series.
	Length int

	// LongestIndex is the declaration index of the first series reaching
	// Length, or -1 when there are no series. Ties go to the first-declared
	// series; a reduction over render order with a strict comparison would
	// pick the last-declared one instead, which changes the series the
	// crosshair and default x labels follow.
	LongestIndex int
}

// Normalize aligns series by position. No resampling happens: shorter
// series simply have absent tail entries.
func Normalize(series []Series) *Normalized {
	n := &Normalized{series: series, LongestIndex: -1}
	for i, s := range series {
		if n.LongestIndex < 0 || len(s.Data) > n.Length {
			n.Length = len(s.Data)
			n.LongestIndex = i
		}
	}
	return n
}

// LongestSeriesLength is the last valid index of the longest series, the
// upper bound of the x domain. It is 0 when there is no data.
func (n *Normalized) LongestSeriesLength() int {
	if n.Length == 0 {
		return 0
	}
	return n.Length - 1
}

// Series returns the series in declaration order.
func (n *Normalized) Series() []Series { return n.series }

// Count returns the number of series.
func (n *Normalized) Count() int { return len(n.series) }

// EmptyState reports whether there is nothing to draw: no series, or only
// empty ones.
func (n *Normalized) EmptyState() bool { return n.Length == 0 }

// At returns point i of series s. ok is false when i lies beyond the end of
// that series (a padded tail slot) or outside the normalized length.
func (n *Normalized) At(s, i int) (p DataPoint, ok bool) {
	if s < 0 || s >= len(n.series) || i < 0 || i >= len(n.series[s].Data) {
		return DataPoint{}, false
	}
	return n.series[s].Data[i], true
}

// Value returns the value at point i of series s; ok is false for nulls
// and padded slots.
func (n *Normalized) Value(s, i int) (v float64, ok bool) {
	p, ok := n.At(s, i)
	if !ok || p.Value == nil {
		return 0, false
	}
	return *p.Value, true
}

// Padded returns the values of series s over the full normalized length;
// nulls and the padded tail are nil.
func (n *Normalized) Padded(s int) []*float64 {
	out := make([]*float64, n.Length)
	if s < 0 || s >= len(n.series) {
		return out
	}
	for i, p := range n.series[s].Data {
		out[i] = p.Value
	}
	return out
}

// Keys returns the keys of the longest series, the default x axis labels.
func (n *Normalized) Keys() []Key {
	if n.LongestIndex < 0 {
		return nil
	}
	data := n.series[n.LongestIndex].Data
	keys := make([]Key, len(data))
	for i, p := range data {
		keys[i] = p.Key
	}
	return keys
}

// RenderOrder lists declaration indices in drawing order: last-declared
// first, so the first-declared series ends up on top.
func (n *Normalized) RenderOrder() []int {
	order := make([]int, len(n.series))
	for pos := range order {
		order[pos] = n.OriginalIndex(pos)
	}
	return order
}

// OriginalIndex maps a render position to a declaration index.
func (n *Normalized) OriginalIndex(renderPos int) int {
	return len(n.series) - 1 - renderPos
}

// RenderPosition maps a declaration index to a render position.
func (n *Normalized) RenderPosition(original int) int {
	return len(n.series) - 1 - original
}

// Values returns every non-null, finite value in declaration order.
func (n *Normalized) Values() []float64 {
	var out []float64
	for _, s := range n.series {
		for _, p := range s.Data {
			if p.Value != nil && isFinite(*p.Value) {
				out = append(out, *p.Value)
			}
		}
	}
	return out
}

// Extent summarises the sign of the plotted values.
type Extent struct {
	LowestNegative  float64 `json:"lowest_negative"`
	HighestPositive float64 `json:"highest_positive"`
	AllNegative     bool    `json:"all_negative"`
	HasValues       bool    `json:"has_values"`
}

// Extent returns the lowest and highest values over all non-null points
// and whether every value is negative.
func (n *Normalized) Extent() Extent {
	values := n.Values()
	if len(values) == 0 {
		return Extent{}
	}
	e := Extent{
		LowestNegative:  math.Inf(1),
		HighestPositive: math.Inf(-1),
		AllNegative:     true,
		HasValues:       true,
	}
	for _, v := range values {
		e.LowestNegative = math.Min(e.LowestNegative, v)
		e.HighestPositive = math.Max(e.HighestPositive, v)
		if v >= 0 {
			e.AllNegative = false
		}
	}
	return e
}

// HorizontalBarLabelOffset is the gap between the end of a horizontal bar
// and its value label.
const HorizontalBarLabelOffset = 10.0

// LabelWidths is the room value labels need beside horizontal bars, on the
// negative and the positive side of the zero line.
type LabelWidths struct {
	Negative float64 `json:"negative"`
	Positive float64 `json:"positive"`
}

// LabelWidths measures the formatted extreme values plus
// HorizontalBarLabelOffset. A side without values gets 0. A nil format
// prints the shortest decimal representation.
func (e Extent) LabelWidths(format func(float64) string, fontSize float64, m textmetrics.Measurer) LabelWidths {
	if !e.HasValues {
		return LabelWidths{}
	}
	if format == nil {
		format = func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	}
	if m == nil {
		m = textmetrics.Default()
	}
	var w LabelWidths
	if e.LowestNegative < 0 {
		w.Negative = m.Measure(format(e.LowestNegative), fontSize) + HorizontalBarLabelOffset
	}
	if e.HighestPositive >= 0 {
		w.Positive = m.Measure(format(e.HighestPositive), fontSize) + HorizontalBarLabelOffset
	}
	return w
}

// TooltipEntry is one row of a tooltip: the point of one series at the
// active index.
type TooltipEntry struct {
	// Series is the declaration index of the series.
	Series    int       `json:"series"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	LineStyle LineStyle `json:"line_style,omitempty"`
	Label     string    `json:"label"`
	Value     float64   `json:"value"`
}

// TooltipEntries returns one entry per series that has a point at index,
// in declaration order. Null values are reported as 0.
func (n *Normalized) TooltipEntries(index int) []TooltipEntry {
	var out []TooltipEntry
	for i, s := range n.series {
		p, ok := n.At(i, index)
		if !ok {
			continue
		}
		out = append(out, TooltipEntry{
			Series:    i,
			Name:      s.Name,
			Color:     s.Color,
			LineStyle: s.LineStyle,
			Label:     p.Key.String(),
			Value:     p.ValueOr(0),
		})
	}
	return out
}
