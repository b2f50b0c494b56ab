package labels

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/scale"
	"github.com/matzehuels/chartkit/pkg/textmetrics"
)

const (
	// DefaultMaxLines caps wrapped labels.
	DefaultMaxLines = 3

	// DefaultPadding is the minimum horizontal space between two labels.
	DefaultPadding = 8.0
)

// Minimal returns the indices of the labels to draw when labels are spaced
// evenly across width (first at 0, last at width). Every other label is
// dropped until neighbours clear each other by DefaultPadding. The first
// and last labels are always kept.
func Minimal(labels []string, width, fontSize float64, m textmetrics.Measurer) []int {
	n := len(labels)
	if n == 0 {
		return nil
	}
	widths := make([]float64, n)
	for i, l := range labels {
		widths[i] = m.Measure(l, fontSize)
	}

	for stride := 1; ; stride *= 2 {
		visible := strided(n, stride)
		if len(visible) <= 2 || separated(visible, widths, width, n) {
			return visible
		}
	}
}

// strided keeps every stride-th index plus the last one. An index that
// would crowd the last label is dropped.
func strided(n, stride int) []int {
	var out []int
	for i := 0; i < n-1; i += stride {
		out = append(out, i)
	}
	if len(out) > 1 && n-1-out[len(out)-1] < stride {
		out = out[:len(out)-1]
	}
	return append(out, n-1)
}

func separated(visible []int, widths []float64, width float64, n int) bool {
	if n < 2 {
		return true
	}
	spacing := width / float64(n-1)
	for k := 1; k < len(visible); k++ {
		a, b := visible[k-1], visible[k]
		gap := float64(b-a) * spacing
		if (widths[a]+widths[b])/2+DefaultPadding > gap {
			return false
		}
	}
	return true
}

// BandLabel is a label placed under a band.
type BandLabel struct {
	// Index is the band the label belongs to.
	Index int      `json:"index"`
	Text  string   `json:"text"`
	Lines []string `json:"lines"`

	// X is the leading edge of the band; XOffset centres the label in it.
	X       float64 `json:"x"`
	XOffset float64 `json:"x_offset"`
}

// BandOptions configures Band.
type BandOptions struct {
	FontSize float64
	Measurer textmetrics.Measurer
	MaxLines int

	// Wrap breaks each label into at most MaxLines lines of bandwidth.
	// Otherwise labels stay on one line, truncated to the bandwidth.
	Wrap bool

	// Minimal draws a thinned subset of untruncated single-line labels,
	// spaced one step apart. It takes precedence over Wrap.
	Minimal bool
}

func (o *BandOptions) setDefaults() {
	if o.FontSize <= 0 {
		o.FontSize = textmetrics.DefaultFontSize
	}
	if o.Measurer == nil {
		o.Measurer = textmetrics.Default()
	}
	if o.MaxLines <= 0 {
		o.MaxLines = DefaultMaxLines
	}
}

// Band lays out the labels of a band scale, centred with
// XOffset = bandwidth/2. Labels beyond the band count are ignored, as are
// labels that do not fit at all; the result lists the drawn labels in band
// order.
func Band(labels []string, band *scale.Band, opts BandOptions) []BandLabel {
	opts.setDefaults()
	n := min(len(labels), band.Len())
	if n == 0 {
		return nil
	}
	bw := band.Bandwidth()
	label := func(i int, lines []string) BandLabel {
		return BandLabel{
			Index:   i,
			Text:    labels[i],
			Lines:   lines,
			X:       band.MapIndex(i),
			XOffset: bw / 2,
		}
	}

	var out []BandLabel
	switch {
	case opts.Minimal:
		span := band.Step() * float64(n-1)
		for _, i := range Minimal(labels[:n], span, opts.FontSize, opts.Measurer) {
			out = append(out, label(i, []string{labels[i]}))
		}
	case opts.Wrap:
		for i := range n {
			out = append(out, label(i, Wrap(labels[i], bw, opts.MaxLines, opts.FontSize, opts.Measurer)))
		}
	default:
		for i := range n {
			if t := Truncate(labels[i], bw, opts.FontSize, opts.Measurer); t != "" {
				out = append(out, label(i, []string{t}))
			}
		}
	}
	return out
}

// XAxisOptions configures XAxisDetails.
type XAxisOptions struct {
	Labels []string

	// Width is the drawable width the labels spread across.
	Width float64

	FontSize float64
	Measurer textmetrics.Measurer

	// WrapLabels wraps each label into the space between two data points.
	// Otherwise labels stay on one line and are truncated to that space.
	WrapLabels bool

	// UseMinimalLabels shows only a thinned subset of labels on one line.
	UseMinimalLabels bool

	MaxLines int
}

// XAxis describes how the labels of a linear x axis are drawn.
type XAxis struct {
	// Lines holds the rendered lines of every label; hidden labels are nil.
	Lines [][]string `json:"lines"`

	// Visible lists the indices of the drawn labels.
	Visible []int `json:"visible"`

	// LabelWidth is the horizontal space allotted to one label.
	LabelWidth float64 `json:"label_width"`

	MaxLabelWidth  float64 `json:"max_label_width"`
	MaxLabelHeight float64 `json:"max_label_height"`
}

// XAxisDetails computes the label layout of a linear x axis. With no
// labels (a hidden axis) every size is zero.
func XAxisDetails(opts XAxisOptions) *XAxis {
	if opts.FontSize <= 0 {
		opts.FontSize = textmetrics.DefaultFontSize
	}
	if opts.Measurer == nil {
		opts.Measurer = textmetrics.Default()
	}
	if opts.MaxLines <= 0 {
		opts.MaxLines = DefaultMaxLines
	}

	n := len(opts.Labels)
	d := &XAxis{Lines: make([][]string, n)}
	if n == 0 || opts.Width <= 0 {
		return d
	}
	d.LabelWidth = opts.Width / float64(n)

	maxLines := 0
	show := func(i int, lines []string) {
		d.Lines[i] = lines
		d.Visible = append(d.Visible, i)
		maxLines = max(maxLines, len(lines))
		for _, l := range lines {
			d.MaxLabelWidth = math.Max(d.MaxLabelWidth, opts.Measurer.Measure(l, opts.FontSize))
		}
	}

	switch {
	case opts.UseMinimalLabels:
		for _, i := range Minimal(opts.Labels, opts.Width, opts.FontSize, opts.Measurer) {
			show(i, []string{opts.Labels[i]})
		}
	case opts.WrapLabels:
		for i, l := range opts.Labels {
			show(i, Wrap(l, d.LabelWidth, opts.MaxLines, opts.FontSize, opts.Measurer))
		}
	default:
		for i, l := range opts.Labels {
			if t := Truncate(l, d.LabelWidth, opts.FontSize, opts.Measurer); t != "" {
				show(i, []string{t})
			}
		}
	}
	d.MaxLabelHeight = float64(maxLines) * textmetrics.LineHeight(opts.FontSize)
	return d
}
