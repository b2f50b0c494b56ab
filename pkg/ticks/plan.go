package ticks

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/scale"
	"github.com/matzehuels/chartkit/pkg/textmetrics"
)

// Tick is a labelled reference point on an axis.
type Tick struct {
	Value  float64 `json:"value"`
	Label  string  `json:"label"`
	Offset float64 `json:"offset"`
}

// Result is the outcome of Plan.
type Result struct {
	Ticks []Tick

	// Scale maps values onto the axis: [Length, 0] for vertical axes and
	// [0, Length] for horizontal ones, over the niced domain.
	Scale *scale.Linear

	// Step is the distance between adjacent tick values.
	Step float64

	// MaxLabelWidth is the widest formatted label.
	MaxLabelWidth float64

	// AxisMargin is MaxLabelWidth plus label padding.
	AxisMargin float64
}

// maxLevels bounds the ladder climb; 60 levels span twenty decades.
const maxLevels = 60

// Plan chooses ticks for values along an axis of opts.Length pixels.
func Plan(values []float64, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	dom := domainFor(values, opts.IntegersOnly)
	target := max(1, int(math.Floor(opts.Length/opts.Spacing)))
	maxTicks := target + 1

	level := levelFor(dom.Span() / float64(target))
	if opts.IntegersOnly {
		level = max(level, 0)
	}

	// When nothing fits, fall back to the sparsest set seen.
	var best, fewest *candidate
	for i := 0; i < maxLevels; i++ {
		c := newCandidate(dom, stepAt(level+i), opts)
		if fewest == nil || len(c.values) < len(fewest.values) {
			fewest = c
		}
		if len(c.values) <= maxTicks && c.fits(opts) {
			best = c
			break
		}
	}
	if best == nil {
		best = fewest
	}
	return best.result(opts)
}

// domainFor returns the data extent widened to zero, or [0, DefaultMax]
// when there is nothing to plot.
func domainFor(values []float64, integers bool) scale.Interval {
	dom, err := scale.Extent(values)
	if err != nil || (dom.Min == 0 && dom.Max == 0) {
		return scale.Interval{Min: 0, Max: DefaultMax}
	}
	dom = scale.WithBaseline(dom)
	if integers {
		dom.Min, dom.Max = math.Floor(dom.Min), math.Ceil(dom.Max)
	}
	return dom
}

// stepAt returns the ladder step for a level: level 0 is 1, level 1 is 2,
// level 2 is 5, level 3 is 10 and so on in both directions.
func stepAt(level int) float64 {
	decade := level / 3
	m := level % 3
	if m < 0 {
		m += 3
		decade--
	}
	return [3]float64{1, 2, 5}[m] * math.Pow(10, float64(decade))
}

// levelFor returns the lowest level whose step is at least raw.
func levelFor(raw float64) int {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0
	}
	level := 3 * (int(math.Floor(math.Log10(raw))) - 1)
	for stepAt(level) < raw*(1-1e-12) {
		level++
	}
	return level
}

type candidate struct {
	step   float64
	values []float64
	labels []string
	widths []float64
	dom    scale.Interval
}

func newCandidate(dom scale.Interval, step float64, opts Options) *candidate {
	lo := math.Floor(dom.Min/step+1e-9) * step
	hi := math.Ceil(dom.Max/step-1e-9) * step
	n := int(math.Round((hi-lo)/step)) + 1
	decimals := max(0, -int(math.Floor(math.Log10(step))))
	pow := math.Pow(10, float64(decimals))

	c := &candidate{
		step:   step,
		values: make([]float64, n),
		labels: make([]string, n),
		widths: make([]float64, n),
		dom:    scale.Interval{Min: lo, Max: hi},
	}
	for i := range n {
		v := math.Round((lo+float64(i)*step)*pow) / pow
		if v == 0 {
			v = 0 // normalise -0
		}
		c.values[i] = v
		c.labels[i] = opts.Formatter(v)
		c.widths[i] = opts.Measurer.Measure(c.labels[i], opts.FontSize)
	}
	return c
}

// fits reports whether adjacent labels clear each other.
func (c *candidate) fits(opts Options) bool {
	if len(c.values) < 2 {
		return true
	}
	gap := opts.Length / float64(len(c.values)-1)
	if opts.Orientation == Vertical {
		return gap >= textmetrics.LineHeight(opts.FontSize)
	}
	for i := 1; i < len(c.widths); i++ {
		if (c.widths[i-1]+c.widths[i])/2+opts.LabelPadding > gap {
			return false
		}
	}
	return true
}

func (c *candidate) result(opts Options) (*Result, error) {
	rng := scale.Interval{Min: opts.Length, Max: 0}
	if opts.Orientation == Horizontal {
		rng = scale.Interval{Min: 0, Max: opts.Length}
	}
	s, err := scale.NewLinear(c.dom, rng, scale.WithoutBaseline())
	if err != nil {
		return nil, err
	}

	res := &Result{Scale: s, Step: c.step, Ticks: make([]Tick, len(c.values))}
	for i, v := range c.values {
		res.Ticks[i] = Tick{Value: v, Label: c.labels[i], Offset: s.Map(v)}
		res.MaxLabelWidth = math.Max(res.MaxLabelWidth, c.widths[i])
	}
	res.AxisMargin = res.MaxLabelWidth + max(opts.LabelPadding, 0)
	return res, nil
}
