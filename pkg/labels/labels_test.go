package labels

import (
	"reflect"
	"testing"
	"unicode/utf8"

	"github.com/matzehuels/chartkit/pkg/scale"
	"github.com/matzehuels/chartkit/pkg/textmetrics"
)

// tenPerRune measures every rune as 10px regardless of font size.
var tenPerRune = textmetrics.MeasurerFunc(func(s string, _ float64) float64 {
	return float64(utf8.RuneCountInString(s)) * 10
})

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  string
	}{
		{"fits", "hello", 50, "hello"},
		{"cut", "hello world", 50, "hell…"},
		{"trailing space trimmed", "ab cdef", 40, "ab…"},
		{"nothing fits", "hello", 5, ""},
		{"only ellipsis fits", "hello", 10, "…"},
		{"grapheme clusters stay whole", "👍🏽👍🏽👍🏽", 35, "👍🏽…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.width, 12, tenPerRune); got != tt.want {
				t.Errorf("Truncate(%q, %v) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    float64
		maxLines int
		want     []string
	}{
		{"single line", "Q1 sales", 100, 3, []string{"Q1 sales"}},
		{"greedy", "quarterly revenue by region", 100, 3, []string{"quarterly", "revenue by", "region"}},
		{"overflow truncates last line", "quarterly revenue by region", 100, 2, []string{"quarterly", "revenue b…"}},
		{"unlimited lines", "a b c", 10, 0, []string{"a", "b", "c"}},
		{"long token", "internationalization", 60, 3, []string{"inter…"}},
		{"long token then overflow", "internationalization x", 60, 1, []string{"inter…"}},
		{"collapses whitespace", "  net   sales ", 200, 3, []string{"net sales"}},
		{"empty", "", 100, 3, nil},
		{"no width", "sales", 0, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width, tt.maxLines, 12, tenPerRune)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %v, %d) = %q, want %q", tt.text, tt.width, tt.maxLines, got, tt.want)
			}
			for _, l := range got {
				if w := tenPerRune.Measure(l, 12); w > tt.width {
					t.Errorf("line %q is %vpx wide, exceeds %v", l, w, tt.width)
				}
			}
		})
	}
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestMinimal(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		width  float64
		want   []int
	}{
		{"empty", nil, 100, nil},
		{"single", []string{"Jan"}, 100, []int{0}},
		{"all fit", repeat("a", 4), 300, []int{0, 1, 2, 3}},
		{"drop every other", repeat("Jan 01", 10), 450, []int{0, 2, 4, 6, 9}},
		{"keeps ends when crowded", repeat("Jan 01", 10), 10, []int{0, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Minimal(tt.labels, tt.width, 12, tenPerRune); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Minimal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBand(t *testing.T) {
	b, err := scale.NewBand([]string{"a", "b", "c"}, scale.Interval{Min: 0, Max: 300}, 0)
	if err != nil {
		t.Fatal(err)
	}
	in := []string{"North", "South east region", "West", "extra"}

	lines := func(got []BandLabel) map[int][]string {
		out := make(map[int][]string)
		for _, l := range got {
			out[l.Index] = l.Lines
		}
		return out
	}

	tests := []struct {
		name string
		opts BandOptions
		want map[int][]string
	}{
		{
			name: "truncate",
			opts: BandOptions{Measurer: tenPerRune},
			want: map[int][]string{0: {"North"}, 1: {"South eas" + Ellipsis}, 2: {"West"}},
		},
		{
			name: "wrap",
			opts: BandOptions{Measurer: tenPerRune, Wrap: true},
			want: map[int][]string{0: {"North"}, 1: {"South east", "region"}, 2: {"West"}},
		},
		{
			name: "minimal",
			opts: BandOptions{Measurer: tenPerRune, Wrap: true, Minimal: true},
			want: map[int][]string{0: {"North"}, 2: {"West"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Band(in, b, tt.opts)
			if !reflect.DeepEqual(lines(got), tt.want) {
				t.Errorf("Lines = %q, want %q", lines(got), tt.want)
			}
			for _, l := range got {
				if l.XOffset != 50 {
					t.Errorf("label %d XOffset = %v, want 50", l.Index, l.XOffset)
				}
				if l.X != float64(l.Index)*100 {
					t.Errorf("label %d X = %v, want %v", l.Index, l.X, float64(l.Index)*100)
				}
				if l.Text != in[l.Index] {
					t.Errorf("label %d Text = %q", l.Index, l.Text)
				}
			}
		})
	}

	t.Run("too narrow", func(t *testing.T) {
		narrow, err := scale.NewBand([]string{"a"}, scale.Interval{Min: 0, Max: 5}, 0)
		if err != nil {
			t.Fatal(err)
		}
		if got := Band([]string{"North"}, narrow, BandOptions{Measurer: tenPerRune}); len(got) != 0 {
			t.Errorf("Band() = %+v, want no labels", got)
		}
	})
}

func TestXAxisDetails(t *testing.T) {
	lh := textmetrics.LineHeight(textmetrics.DefaultFontSize)

	t.Run("hidden axis", func(t *testing.T) {
		d := XAxisDetails(XAxisOptions{Width: 500, Measurer: tenPerRune})
		if d.MaxLabelHeight != 0 || len(d.Visible) != 0 {
			t.Errorf("got %+v, want zero details", d)
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		d := XAxisDetails(XAxisOptions{
			Labels:     []string{"First quarter", "Q2"},
			Width:      200,
			Measurer:   tenPerRune,
			WrapLabels: true,
		})
		if d.LabelWidth != 100 {
			t.Errorf("LabelWidth = %v, want 100", d.LabelWidth)
		}
		if !reflect.DeepEqual(d.Lines[0], []string{"First", "quarter"}) {
			t.Errorf("Lines[0] = %q", d.Lines[0])
		}
		if d.MaxLabelHeight != 2*lh {
			t.Errorf("MaxLabelHeight = %v, want %v", d.MaxLabelHeight, 2*lh)
		}
		if d.MaxLabelWidth != 70 {
			t.Errorf("MaxLabelWidth = %v, want 70", d.MaxLabelWidth)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		d := XAxisDetails(XAxisOptions{Labels: []string{"abcdefghijkl"}, Width: 60, Measurer: tenPerRune})
		if !reflect.DeepEqual(d.Lines[0], []string{"abcde…"}) {
			t.Errorf("Lines[0] = %q, want [abcde…]", d.Lines[0])
		}
		if d.MaxLabelHeight != lh {
			t.Errorf("MaxLabelHeight = %v, want %v", d.MaxLabelHeight, lh)
		}
	})

	t.Run("minimal", func(t *testing.T) {
		d := XAxisDetails(XAxisOptions{
			Labels:           repeat("Jan 01", 10),
			Width:            450,
			Measurer:         tenPerRune,
			UseMinimalLabels: true,
		})
		if !reflect.DeepEqual(d.Visible, []int{0, 2, 4, 6, 9}) {
			t.Errorf("Visible = %v", d.Visible)
		}
		if d.Lines[1] != nil {
			t.Errorf("hidden label has lines %q", d.Lines[1])
		}
	})
}
