package chart

import (
	"github.com/matzehuels/chartkit/pkg/textmetrics"
)

// Layout constants shared by every chart.
const (
	// SmallScreen is the width below which labels use SmallFontSize.
	SmallScreen = 500.0

	FontSize      = textmetrics.DefaultFontSize
	SmallFontSize = 10.0

	SpacingTight     = 8.0
	SpacingBaseTight = 12.0
	Spacing          = 16.0
)

// Margin is the space around the drawable area.
type Margin struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// DefaultMargin is the margin used by DefaultTheme.
var DefaultMargin = Margin{Top: Spacing, Right: Spacing, Bottom: Spacing, Left: 0}

// Theme is the resolved theme a chart is computed with. It is passed by
// value; the engine keeps no global theme.
type Theme struct {
	// HasSpline selects the rounded step curve for lines.
	HasSpline bool `json:"has_spline" toml:"has_spline"`

	ShowHorizontalLines bool `json:"show_horizontal_lines" toml:"show_horizontal_lines"`

	// HorizontalMargin is the grid inset on both sides of the chart.
	HorizontalMargin float64 `json:"horizontal_margin" toml:"horizontal_margin"`

	CrosshairWidth float64 `json:"crosshair_width" toml:"crosshair_width"`

	// HideXAxis hides x axis labels unless the axis options say otherwise.
	HideXAxis bool `json:"hide_x_axis" toml:"hide_x_axis"`

	Margin Margin `json:"margin" toml:"margin"`
}

// DefaultTheme returns the theme used when none is configured.
func DefaultTheme() Theme {
	return Theme{
		ShowHorizontalLines: true,
		CrosshairWidth:      10,
		Margin:              DefaultMargin,
	}
}

// fontSizeFor picks the label font size for a chart width.
func fontSizeFor(width float64) float64 {
	if width < SmallScreen {
		return SmallFontSize
	}
	return FontSize
}
