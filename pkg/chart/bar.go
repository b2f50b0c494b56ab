package chart

import (
	"strconv"

	cerrors "github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/interaction"
	"github.com/matzehuels/chartkit/pkg/labels"
	"github.com/matzehuels/chartkit/pkg/path"
	"github.com/matzehuels/chartkit/pkg/scale"
	"github.com/matzehuels/chartkit/pkg/series"
	"github.com/matzehuels/chartkit/pkg/textmetrics"
	"github.com/matzehuels/chartkit/pkg/ticks"
)

// BarInput is everything ComputeBar needs.
type BarInput struct {
	// Series are drawn side by side in declaration order, one group per
	// data index.
	Series     []series.Series
	Dimensions Dimensions
	XAxis      XAxisOptions
	YAxis      YAxisOptions
	Theme      Theme
	Measurer   textmetrics.Measurer

	// Padding is the inner band padding. Zero selects scale.PaddingMedium;
	// a negative value disables padding.
	Padding float64

	// GroupPadding is the inner padding between the bars of one group,
	// used when there is more than one series. Zero lets them touch.
	GroupPadding float64
}

// BarGeometry is the complete layout of a bar chart.
type BarGeometry struct {
	EmptyState bool    `json:"empty_state"`
	FontSize   float64 `json:"font_size"`

	YTicks  []ticks.Tick       `json:"y_ticks"`
	XLabels []labels.BandLabel `json:"x_labels"`

	AxisMargin     float64 `json:"axis_margin"`
	MarginBottom   float64 `json:"margin_bottom"`
	DrawableWidth  float64 `json:"drawable_width"`
	DrawableHeight float64 `json:"drawable_height"`
	Bandwidth      float64 `json:"bandwidth"`
	BarWidth       float64 `json:"bar_width"`
	BaselineY      float64 `json:"baseline_y"`

	Bars   []path.Bar    `json:"bars"`
	Extent series.Extent `json:"extent"`

	Normalized *series.Normalized        `json:"-"`
	Band       *scale.Band               `json:"-"`
	Group      *scale.Band               `json:"-"`
	YScale     *scale.Linear             `json:"-"`
	Resolver   *interaction.BandResolver `json:"-"`
}

// Tooltip returns the tooltip rows for a group: one per series with a
// point at index.
func (g *BarGeometry) Tooltip(index int) []series.TooltipEntry {
	return g.Normalized.TooltipEntries(index)
}

// ComputeBar lays out a vertical bar chart: one band per data index, split
// into one bar per series.
func ComputeBar(in BarInput) (*BarGeometry, error) {
	width, height := in.Dimensions.Width, in.Dimensions.Height
	if err := cerrors.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if err := series.Validate(in.Series); err != nil {
		return nil, err
	}
	if in.GroupPadding < 0 || in.GroupPadding >= 1 {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "group padding %g must be in [0, 1)", in.GroupPadding)
	}
	m := in.Measurer
	if m == nil {
		m = textmetrics.Default()
	}
	padding := in.Padding
	if padding == 0 {
		padding = scale.PaddingMedium
	} else if padding < 0 {
		padding = scale.PaddingNone
	}
	theme := in.Theme

	norm := series.Normalize(in.Series)
	values := norm.Values()
	fontSize := fontSizeFor(width)

	tickOpts := ticks.Options{
		Length:       height - theme.Margin.Top,
		FontSize:     fontSize,
		IntegersOnly: in.YAxis.IntegersOnly,
		Formatter:    in.YAxis.Formatter,
		Measurer:     m,
	}
	initial, err := ticks.Plan(values, tickOpts)
	if err != nil {
		return nil, err
	}

	g := &BarGeometry{
		FontSize:   fontSize,
		Extent:     norm.Extent(),
		Normalized: norm,
		EmptyState: norm.EmptyState(),
	}
	if g.EmptyState {
		g.YTicks = initial.Ticks
		g.YScale = initial.Scale
		g.AxisMargin = Spacing + initial.MaxLabelWidth
		g.DrawableHeight = height - theme.Margin.Top
		g.BaselineY = initial.Scale.Map(0)
		return g, nil
	}

	hideX := in.XAxis.Hide || theme.HideXAxis
	xLabels := xAxisLabels(in.XAxis, norm)
	bandOpts := labels.BandOptions{
		FontSize: fontSize,
		Measurer: m,
		Wrap:     in.XAxis.WrapLabels,
		Minimal:  in.XAxis.UseMinimalLabels,
	}

	layoutBand := func(axisMargin float64) error {
		g.AxisMargin = axisMargin
		g.DrawableWidth = width - theme.Margin.Right - axisMargin
		if g.DrawableWidth <= 0 {
			return cerrors.New(cerrors.ErrCodeInvalidRange,
				"chart too narrow: %g pixels left for bars", g.DrawableWidth)
		}
		band, err := scale.NewBand(bandCategories(norm.Length),
			scale.Interval{Min: 0, Max: g.DrawableWidth}, padding)
		if err != nil {
			return err
		}
		g.Band = band
		g.Bandwidth = band.Bandwidth()
		g.XLabels = nil
		if !hideX {
			g.XLabels = labels.Band(xLabels, band, bandOpts)
		}
		return nil
	}

	if err := layoutBand(Spacing + initial.MaxLabelWidth); err != nil {
		return nil, err
	}

	g.MarginBottom = SpacingTight
	if !hideX {
		lines := 0
		for _, l := range g.XLabels {
			lines = max(lines, len(l.Lines))
		}
		g.MarginBottom = theme.Margin.Bottom + float64(lines)*textmetrics.LineHeight(fontSize)
	}
	g.DrawableHeight = height - theme.Margin.Top - g.MarginBottom

	tickOpts.Length = g.DrawableHeight
	final, err := ticks.Plan(values, tickOpts)
	if err != nil {
		return nil, err
	}
	if margin := Spacing + final.MaxLabelWidth; margin != g.AxisMargin {
		if err := layoutBand(margin); err != nil {
			return nil, err
		}
	}

	g.YTicks = final.Ticks
	g.YScale = final.Scale
	g.BaselineY = final.Scale.Map(0)

	groupPadding := in.GroupPadding
	if norm.Count() == 1 {
		groupPadding = 0
	}
	g.Group, err = scale.NewBand(bandCategories(norm.Count()),
		scale.Interval{Min: 0, Max: g.Bandwidth}, groupPadding)
	if err != nil {
		return nil, err
	}
	g.BarWidth = g.Group.Bandwidth()
	g.Bars = path.GroupedBars(norm, g.Band, g.Group, final.Scale)
	g.Resolver = &interaction.BandResolver{
		Band:      g.Band,
		YScale:    final.Scale,
		Values:    groupTops(norm),
		DataStart: g.AxisMargin,
	}
	return g, nil
}

// groupTops returns, per data index, the largest value of the group, where
// the tooltip is anchored. Groups without any value are nil.
func groupTops(norm *series.Normalized) []*float64 {
	out := make([]*float64, norm.Length)
	for i := range out {
		for s := range norm.Count() {
			v, ok := norm.Value(s, i)
			if !ok {
				continue
			}
			if out[i] == nil || v > *out[i] {
				out[i] = &v
			}
		}
	}
	return out
}

// bandCategories names bands by index so duplicate labels still get
// their own band.
func bandCategories(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}
