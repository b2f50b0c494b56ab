package ticks

import (
	"math"
	"strconv"

	cerrors "github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/textmetrics"
)

// Orientation selects how label overlap is checked.
type Orientation int

const (
	// Vertical axes stack labels; ticks must be at least one line apart.
	Vertical Orientation = iota
	// Horizontal axes place labels side by side; widths must not overlap.
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

const (
	// DefaultSpacing is the target number of pixels per tick interval.
	DefaultSpacing = 50.0

	// DefaultFontSize is the label font size in pixels.
	DefaultFontSize = textmetrics.DefaultFontSize

	// DefaultLabelPadding separates labels from the data area and from each
	// other on horizontal axes.
	DefaultLabelPadding = 8.0

	// DefaultMax is the upper bound of the domain planned for empty or
	// all-zero data.
	DefaultMax = 10.0
)

// Formatter turns a tick value into its label.
type Formatter func(v float64) string

// DefaultFormatter prints the shortest decimal representation of v.
func DefaultFormatter(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Options configures Plan.
type Options struct {
	// Length is the drawable length of the axis in pixels.
	Length float64

	Orientation  Orientation
	FontSize     float64
	IntegersOnly bool
	Formatter    Formatter
	Measurer     textmetrics.Measurer

	// Spacing is the target number of pixels per tick interval.
	Spacing float64

	// LabelPadding is added to the widest label to form the axis margin.
	// Zero selects DefaultLabelPadding; a negative value disables padding.
	LabelPadding float64
}

// SetDefaults fills zero-valued fields with package defaults.
func (o *Options) SetDefaults() {
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Formatter == nil {
		o.Formatter = DefaultFormatter
	}
	if o.Measurer == nil {
		o.Measurer = textmetrics.Default()
	}
	if o.Spacing <= 0 {
		o.Spacing = DefaultSpacing
	}
	if o.LabelPadding < 0 {
		o.LabelPadding = 0
	} else if o.LabelPadding == 0 {
		o.LabelPadding = DefaultLabelPadding
	}
}

// Validate checks the axis length.
func (o *Options) Validate() error {
	if math.IsNaN(o.Length) || math.IsInf(o.Length, 0) || o.Length <= 0 {
		return cerrors.InvalidRange(0, o.Length)
	}
	return nil
}
