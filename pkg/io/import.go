package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartkit/pkg/chart"
	cerrors "github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/interaction"
	"github.com/matzehuels/chartkit/pkg/series"
	"github.com/matzehuels/chartkit/pkg/textmetrics"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	KindLine = "line"
	KindBar  = "bar"

	DefaultWidth  = 640.0
	DefaultHeight = 320.0

	FormatTOML = "toml"
	FormatJSON = "json"
)

// =============================================================================
// Definition
// =============================================================================

// AxisDefinition configures one axis.
type AxisDefinition struct {
	// Labels overrides the x axis labels. Ignored on the y axis.
	Labels []string `json:"labels,omitempty" toml:"labels"`

	Hide             bool        `json:"hide,omitempty" toml:"hide"`
	WrapLabels       bool        `json:"wrap_labels,omitempty" toml:"wrap_labels"`
	UseMinimalLabels bool        `json:"use_minimal_labels,omitempty" toml:"use_minimal_labels"`
	IntegersOnly     bool        `json:"integers_only,omitempty" toml:"integers_only"`
	Format           LabelFormat `json:"format,omitempty" toml:"format"`
}

// Definition is a chart as written in a definition file.
type Definition struct {
	Kind     string  `json:"kind" toml:"kind"`
	Title    string  `json:"title,omitempty" toml:"title"`
	Width    float64 `json:"width" toml:"width"`
	Height   float64 `json:"height" toml:"height"`
	Animated bool    `json:"animated,omitempty" toml:"animated"`

	// Rounding names the pointer rounding mode ("half-up" when empty).
	Rounding string `json:"rounding,omitempty" toml:"rounding"`

	// Padding is the inner band padding of bar charts.
	Padding float64 `json:"padding,omitempty" toml:"padding"`

	// GroupPadding separates the bars of one group in multi-series bar
	// charts.
	GroupPadding float64 `json:"group_padding,omitempty" toml:"group_padding"`

	XAxis  AxisDefinition  `json:"x_axis" toml:"x_axis"`
	YAxis  AxisDefinition  `json:"y_axis" toml:"y_axis"`
	Theme  chart.Theme     `json:"theme" toml:"theme"`
	Series []series.Series `json:"series" toml:"series"`
}

// NewDefinition returns a definition holding every default, ready to be
// decoded into.
func NewDefinition() *Definition {
	return &Definition{
		Kind:   KindLine,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Theme:  chart.DefaultTheme(),
	}
}

// SetDefaults fills zero-valued fields.
func (d *Definition) SetDefaults() {
	if d.Kind == "" {
		d.Kind = KindLine
	}
	d.Kind = strings.ToLower(d.Kind)
	if d.Width == 0 {
		d.Width = DefaultWidth
	}
	if d.Height == 0 {
		d.Height = DefaultHeight
	}
}

// Validate checks the definition before any geometry is computed.
func (d *Definition) Validate() error {
	switch d.Kind {
	case KindLine:
	case KindBar:
		if d.GroupPadding < 0 || d.GroupPadding >= 1 {
			return cerrors.New(cerrors.ErrCodeInvalidChart, "group_padding %g must be in [0, 1)", d.GroupPadding)
		}
	default:
		return cerrors.New(cerrors.ErrCodeInvalidChart, "unknown chart kind %q (must be line or bar)", d.Kind)
	}
	if err := cerrors.ValidateDimensions(d.Width, d.Height); err != nil {
		return err
	}
	if _, err := interaction.ParseRounding(d.Rounding); err != nil {
		return err
	}
	for _, f := range []LabelFormat{d.XAxis.Format, d.YAxis.Format} {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return series.Validate(d.Series)
}

// LineInput converts the definition into line chart input.
func (d *Definition) LineInput(m textmetrics.Measurer) chart.LineInput {
	rounding, _ := interaction.ParseRounding(d.Rounding)
	return chart.LineInput{
		Series:     d.Series,
		Dimensions: chart.Dimensions{Width: d.Width, Height: d.Height},
		XAxis:      d.xAxis(),
		YAxis:      d.yAxis(),
		Theme:      d.Theme,
		Measurer:   m,
		Animated:   d.Animated,
		Rounding:   rounding,
	}
}

// BarInput converts the definition into bar chart input.
func (d *Definition) BarInput(m textmetrics.Measurer) chart.BarInput {
	return chart.BarInput{
		Series:     d.Series,
		Dimensions: chart.Dimensions{Width: d.Width, Height: d.Height},
		XAxis:      d.xAxis(),
		YAxis:      d.yAxis(),
		Theme:      d.Theme,
		Measurer:   m,
		Padding:    d.Padding,

		GroupPadding: d.GroupPadding,
	}
}

func (d *Definition) xAxis() chart.XAxisOptions {
	return chart.XAxisOptions{
		Labels:           d.XAxis.Labels,
		Formatter:        d.XAxis.Format.LabelFormatter(),
		Hide:             d.XAxis.Hide,
		WrapLabels:       d.XAxis.WrapLabels,
		UseMinimalLabels: d.XAxis.UseMinimalLabels,
	}
}

func (d *Definition) yAxis() chart.YAxisOptions {
	return chart.YAxisOptions{
		Formatter:    d.YAxis.Format.Formatter(),
		IntegersOnly: d.YAxis.IntegersOnly,
	}
}

// =============================================================================
// Decoding
// =============================================================================

// ReadTOML decodes a TOML definition from r, applies defaults and
// validates it.
func ReadTOML(r io.Reader) (*Definition, error) {
	d := NewDefinition()
	if _, err := toml.NewDecoder(r).Decode(d); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidChart, err, "decode toml")
	}
	return finish(d)
}

// ReadJSON decodes a JSON definition from r, applies defaults and
// validates it. Unknown fields are rejected.
func ReadJSON(r io.Reader) (*Definition, error) {
	d := NewDefinition()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(d); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidChart, err, "decode json")
	}
	return finish(d)
}

// Read decodes a definition in the named format ("toml" or "json").
func Read(r io.Reader, format string) (*Definition, error) {
	if err := cerrors.ValidateFormatName(format); err != nil {
		return nil, err
	}
	if strings.EqualFold(format, FormatTOML) {
		return ReadTOML(r)
	}
	return ReadJSON(r)
}

func finish(d *Definition) (*Definition, error) {
	d.SetDefaults()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// FormatFor returns the definition format implied by a file extension.
func FormatFor(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "", cerrors.New(cerrors.ErrCodeInvalidFormat, "cannot infer format of %s (use .toml or .json)", path)
	}
	if err := cerrors.ValidateFormatName(ext); err != nil {
		return "", err
	}
	return ext, nil
}

// Import reads the definition file at path.
func Import(path string) (*Definition, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cerrors.Wrap(cerrors.ErrCodeFileNotFound, err, "chart definition %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
