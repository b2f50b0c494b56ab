package chart

import (
	"github.com/matzehuels/chartkit/pkg/animation"
	cerrors "github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/interaction"
	"github.com/matzehuels/chartkit/pkg/labels"
	"github.com/matzehuels/chartkit/pkg/path"
	"github.com/matzehuels/chartkit/pkg/scale"
	"github.com/matzehuels/chartkit/pkg/series"
	"github.com/matzehuels/chartkit/pkg/textmetrics"
	"github.com/matzehuels/chartkit/pkg/ticks"
)

// =============================================================================
// Inputs
// =============================================================================

// Dimensions is the outer size of a chart in pixels.
type Dimensions struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// XAxisOptions configures the x axis.
type XAxisOptions struct {
	// Labels are the x axis labels. When nil the keys of the longest
	// series are used.
	Labels []string

	// Formatter is applied to every label before layout.
	Formatter func(string) string

	Hide             bool
	WrapLabels       bool
	UseMinimalLabels bool
}

// YAxisOptions configures the y axis.
type YAxisOptions struct {
	Formatter    ticks.Formatter
	IntegersOnly bool
}

// LineInput is everything ComputeLine needs.
type LineInput struct {
	Series     []series.Series
	Dimensions Dimensions
	XAxis      XAxisOptions
	YAxis      YAxisOptions
	Theme      Theme

	// Measurer measures label text. Nil selects textmetrics.Default.
	Measurer textmetrics.Measurer

	Animated bool

	// MaxAnimatedLength is the longest series (by last index) that still
	// animates. Zero selects animation.DefaultMaxSeriesLength.
	MaxAnimatedLength int

	Rounding interaction.Rounding
}

// =============================================================================
// Geometry
// =============================================================================

// SeriesPath is the drawable outline of one series.
type SeriesPath struct {
	// Series is the declaration index of the series.
	Series    int              `json:"series"`
	Name      string           `json:"name"`
	Color     string           `json:"color,omitempty"`
	LineStyle series.LineStyle `json:"line_style,omitempty"`
	D         string           `json:"d"`
	Area      string           `json:"area,omitempty"`
}

// LineGeometry is the complete layout of a line chart. Coordinates and
// Paths are in render order (reverse declaration order).
type LineGeometry struct {
	EmptyState bool    `json:"empty_state"`
	FontSize   float64 `json:"font_size"`

	YTicks  []ticks.Tick  `json:"y_ticks"`
	XLabels []string      `json:"x_labels"`
	XAxis   *labels.XAxis `json:"x_axis"`

	AxisMargin        float64 `json:"axis_margin"`
	MarginBottom      float64 `json:"margin_bottom"`
	DataStartPosition float64 `json:"data_start_position"`
	DrawableWidth     float64 `json:"drawable_width"`
	DrawableHeight    float64 `json:"drawable_height"`
	BaselineY         float64 `json:"baseline_y"`

	// LongestSeriesIndex is the declaration index of the longest series.
	LongestSeriesIndex  int `json:"longest_series_index"`
	LongestSeriesLength int `json:"longest_series_length"`

	Coordinates [][]path.Coordinate `json:"coordinates"`
	Paths       []SeriesPath        `json:"paths"`
	HasSpline   bool                `json:"has_spline"`

	// AnimatePoints is false when the series are too long to animate.
	AnimatePoints  bool    `json:"animate_points"`
	CrosshairWidth float64 `json:"crosshair_width"`

	Normalized *series.Normalized    `json:"-"`
	XScale     *scale.Linear         `json:"-"`
	YScale     *scale.Linear         `json:"-"`
	Resolver   *interaction.Resolver `json:"-"`
}

// CrosshairX returns the left edge of the crosshair for a data index.
func (g *LineGeometry) CrosshairX(index int) float64 {
	return g.XScale.Map(float64(index)) - g.CrosshairWidth/2
}

// Tooltip returns the tooltip rows for a data index.
func (g *LineGeometry) Tooltip(index int) []series.TooltipEntry {
	return g.Normalized.TooltipEntries(index)
}

// =============================================================================
// Line Layout
// =============================================================================

// ComputeLine lays out a line chart.
func ComputeLine(in LineInput) (*LineGeometry, error) {
	width, height := in.Dimensions.Width, in.Dimensions.Height
	if err := cerrors.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if err := series.Validate(in.Series); err != nil {
		return nil, err
	}
	m := in.Measurer
	if m == nil {
		m = textmetrics.Default()
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

	hideX := in.XAxis.Hide || theme.HideXAxis
	xLabels := xAxisLabels(in.XAxis, norm)
	var laidOut []string
	if !hideX {
		laidOut = xLabels
	}
	xAxis := labels.XAxisDetails(labels.XAxisOptions{
		Labels:           laidOut,
		Width:            width - 2*theme.HorizontalMargin - initial.AxisMargin,
		FontSize:         fontSize,
		Measurer:         m,
		WrapLabels:       in.XAxis.WrapLabels,
		UseMinimalLabels: in.XAxis.UseMinimalLabels,
	})

	marginBottom := SpacingTight
	if !hideX {
		marginBottom = theme.Margin.Bottom + xAxis.MaxLabelHeight
	}
	drawableHeight := height - theme.Margin.Top - marginBottom

	tickOpts.Length = drawableHeight
	final, err := ticks.Plan(values, tickOpts)
	if err != nil {
		return nil, err
	}

	axisMargin := final.AxisMargin
	dataStart := axisMargin + theme.HorizontalMargin + SpacingBaseTight
	drawableWidth := width - theme.Margin.Right - axisMargin - 2*theme.HorizontalMargin - SpacingBaseTight
	if drawableWidth <= 0 {
		return nil, cerrors.New(cerrors.ErrCodeInvalidRange,
			"chart too narrow: %g pixels left for data", drawableWidth)
	}

	lsl := norm.LongestSeriesLength()
	xScale, err := scale.NewLinear(
		scale.Interval{Min: 0, Max: float64(lsl)},
		scale.Interval{Min: 0, Max: drawableWidth},
		scale.WithoutBaseline(),
	)
	if err != nil {
		return nil, err
	}
	yScale := final.Scale

	maxAnimated := in.MaxAnimatedLength
	if maxAnimated <= 0 {
		maxAnimated = animation.DefaultMaxSeriesLength
	}

	g := &LineGeometry{
		EmptyState:          norm.EmptyState(),
		FontSize:            fontSize,
		YTicks:              final.Ticks,
		XLabels:             xLabels,
		XAxis:               xAxis,
		AxisMargin:          axisMargin,
		MarginBottom:        marginBottom,
		DataStartPosition:   dataStart,
		DrawableWidth:       drawableWidth,
		DrawableHeight:      drawableHeight,
		BaselineY:           yScale.Map(0),
		LongestSeriesIndex:  norm.LongestIndex,
		LongestSeriesLength: lsl,
		AnimatePoints:       in.Animated && lsl <= maxAnimated,
		CrosshairWidth:      theme.CrosshairWidth,
		HasSpline:           theme.HasSpline,
		Normalized:          norm,
		XScale:              xScale,
		YScale:              yScale,
		Resolver: &interaction.Resolver{
			XScale:    xScale,
			Length:    norm.Length,
			DataStart: dataStart,
			Rounding:  in.Rounding,
		},
	}
	if g.EmptyState {
		return g, nil
	}

	g.Coordinates = path.Lines(norm, xScale, yScale)
	curve := path.CurveFor(theme.HasSpline)
	all := norm.Series()
	for pos, coords := range g.Coordinates {
		orig := norm.OriginalIndex(pos)
		s := all[orig]
		sp := SeriesPath{
			Series:    orig,
			Name:      s.Name,
			Color:     s.Color,
			LineStyle: s.LineStyle,
			D:         path.D(coords, curve),
		}
		if s.HasArea() {
			sp.Area = path.Area(coords, g.BaselineY, curve)
		}
		g.Paths = append(g.Paths, sp)
	}
	return g, nil
}

// xAxisLabels returns the formatted x axis labels, one per index of the
// longest series.
func xAxisLabels(opts XAxisOptions, norm *series.Normalized) []string {
	raw := opts.Labels
	if raw == nil {
		for _, k := range norm.Keys() {
			raw = append(raw, k.String())
		}
	}
	if opts.Formatter == nil {
		return raw
	}
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = opts.Formatter(l)
	}
	return out
}
