package series

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	cerrors "github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/textmetrics"
)

func ramp(name string, n int) Series {
	s := Series{Name: name}
	for i := range n {
		s.Data = append(s.Data, Point(NumberKey(float64(i)), float64(i*10)))
	}
	return s
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		series      []Series
		wantLength  int
		wantLongest int
		wantLSL     int
		wantEmpty   bool
	}{
		{"lengths 5 and 8", []Series{ramp("a", 5), ramp("b", 8)}, 8, 1, 7, false},
		{"first longest wins ties", []Series{ramp("a", 3), ramp("b", 5), ramp("c", 5)}, 5, 1, 4, false},
		{"single point", []Series{ramp("a", 1)}, 1, 0, 0, false},
		{"no series", nil, 0, -1, 0, true},
		{"only empty series", []Series{{Name: "a"}, {Name: "b"}}, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalize(tt.series)
			if n.Length != tt.wantLength {
				t.Errorf("Length = %d, want %d", n.Length, tt.wantLength)
			}
			if n.LongestIndex != tt.wantLongest {
				t.Errorf("LongestIndex = %d, want %d", n.LongestIndex, tt.wantLongest)
			}
			if got := n.LongestSeriesLength(); got != tt.wantLSL {
				t.Errorf("LongestSeriesLength() = %d, want %d", got, tt.wantLSL)
			}
			if got := n.EmptyState(); got != tt.wantEmpty {
				t.Errorf("EmptyState() = %v, want %v", got, tt.wantEmpty)
			}
			for s := range tt.series {
				if got := len(n.Padded(s)); got != n.Length {
					t.Errorf("len(Padded(%d)) = %d, want %d", s, got, n.Length)
				}
			}
		})
	}
}

func TestNormalizedAt(t *testing.T) {
	short := Series{Name: "short", Data: []DataPoint{Point(StringKey("a"), 1), Null(StringKey("b"))}}
	n := Normalize([]Series{short, ramp("long", 4)})

	if p, ok := n.At(0, 0); !ok || p.ValueOr(-1) != 1 {
		t.Errorf("At(0, 0) = %v, %v", p, ok)
	}
	if p, ok := n.At(0, 1); !ok || !p.IsNull() {
		t.Errorf("At(0, 1) should be a present null, got %v, %v", p, ok)
	}
	if _, ok := n.At(0, 3); ok {
		t.Error("At(0, 3) should be absent")
	}
	if _, ok := n.Value(0, 1); ok {
		t.Error("Value(0, 1) should report null")
	}
	if v, ok := n.Value(1, 3); !ok || v != 30 {
		t.Errorf("Value(1, 3) = %v, %v; want 30, true", v, ok)
	}

	padded := n.Padded(0)
	if padded[0] == nil || padded[1] != nil || padded[2] != nil || padded[3] != nil {
		t.Errorf("Padded(0) = %v, want value then three nils", padded)
	}
}

func TestRenderOrder(t *testing.T) {
	n := Normalize([]Series{ramp("a", 1), ramp("b", 1), ramp("c", 1)})
	if got := n.RenderOrder(); !reflect.DeepEqual(got, []int{2, 1, 0}) {
		t.Errorf("RenderOrder() = %v, want [2 1 0]", got)
	}
	for orig := range 3 {
		if got := n.OriginalIndex(n.RenderPosition(orig)); got != orig {
			t.Errorf("OriginalIndex(RenderPosition(%d)) = %d", orig, got)
		}
	}
}

func TestExtent(t *testing.T) {
	neg := Series{Data: []DataPoint{Point(StringKey("a"), -3), Null(StringKey("b")), Point(StringKey("c"), -8)}}
	mixed := Series{Data: []DataPoint{Point(StringKey("a"), 12), Point(StringKey("b"), 0)}}

	e := Normalize([]Series{neg}).Extent()
	if !e.AllNegative || e.LowestNegative != -8 || e.HighestPositive != -3 {
		t.Errorf("Extent() = %+v", e)
	}

	e = Normalize([]Series{neg, mixed}).Extent()
	if e.AllNegative || e.LowestNegative != -8 || e.HighestPositive != 12 {
		t.Errorf("Extent() = %+v", e)
	}

	if e := Normalize(nil).Extent(); e.HasValues {
		t.Errorf("empty Extent() = %+v, want zero", e)
	}
}

func TestLabelWidths(t *testing.T) {
	perRune := textmetrics.MeasurerFunc(func(s string, _ float64) float64 {
		return 6 * float64(utf8.RuneCountInString(s))
	})
	dollars := func(v float64) string { return "$" + strconv.FormatFloat(v, 'f', 0, 64) }
	mk := func(values ...float64) []Series {
		s := Series{}
		for i, v := range values {
			s.Data = append(s.Data, Point(NumberKey(float64(i)), v))
		}
		return []Series{s}
	}

	tests := []struct {
		name   string
		series []Series
		format func(float64) string
		want   LabelWidths
	}{
		{"empty", nil, dollars, LabelWidths{}},
		{"both sides", mk(-250, 40, 1200), dollars, LabelWidths{Negative: 6*5 + HorizontalBarLabelOffset, Positive: 6*5 + HorizontalBarLabelOffset}},
		{"positive only", mk(0, 75), dollars, LabelWidths{Positive: 6*3 + HorizontalBarLabelOffset}},
		{"negative only", mk(-3, -8), dollars, LabelWidths{Negative: 6*3 + HorizontalBarLabelOffset}},
		{"default format", mk(-1.5), nil, LabelWidths{Negative: 6*4 + HorizontalBarLabelOffset}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.series).Extent().LabelWidths(tt.format, 12, perRune)
			if got != tt.want {
				t.Errorf("LabelWidths() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTooltipEntries(t *testing.T) {
	a := Series{Name: "Sales", Color: "blue", LineStyle: LineDashed, Data: []DataPoint{
		Point(StringKey("Mon"), 4), Null(StringKey("Tue")),
	}}
	b := ramp("", 3)

	n := Normalize([]Series{a, b})
	got := n.TooltipEntries(1)
	want := []TooltipEntry{
		{Series: 0, Name: "Sales", Color: "blue", LineStyle: LineDashed, Label: "Tue", Value: 0},
		{Series: 1, Name: "", Label: "1", Value: 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TooltipEntries(1) = %+v, want %+v", got, want)
	}

	if got := n.TooltipEntries(2); len(got) != 1 || got[0].Series != 1 {
		t.Errorf("TooltipEntries(2) = %+v, want only series 1", got)
	}
}

func TestKeyDecoding(t *testing.T) {
	var points []DataPoint
	if err := json.Unmarshal([]byte(`[{"key":"Jan","value":1.5},{"key":2024,"value":null},{"key":3}]`), &points); err != nil {
		t.Fatal(err)
	}
	if points[0].Key.String() != "Jan" || points[0].ValueOr(0) != 1.5 {
		t.Errorf("points[0] = %+v", points[0])
	}
	if !points[1].Key.IsNumber() || points[1].Key.String() != "2024" || !points[1].IsNull() {
		t.Errorf("points[1] = %+v", points[1])
	}
	if !points[2].IsNull() {
		t.Error("missing value should decode as null")
	}

	var doc struct {
		Data []DataPoint `toml:"data"`
	}
	src := `data = [{key = "Jan", value = 1.5}, {key = 2024}, {key = 0.5, value = -2}]`
	if _, err := toml.Decode(src, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Data[0].Key.String() != "Jan" || doc.Data[0].ValueOr(0) != 1.5 {
		t.Errorf("Data[0] = %+v", doc.Data[0])
	}
	if doc.Data[1].Key.Float() != 2024 || !doc.Data[1].IsNull() {
		t.Errorf("Data[1] = %+v", doc.Data[1])
	}
	if doc.Data[2].Key.Float() != 0.5 || doc.Data[2].ValueOr(0) != -2 {
		t.Errorf("Data[2] = %+v", doc.Data[2])
	}

	var k Key
	if err := json.Unmarshal([]byte(`true`), &k); err == nil {
		t.Error("boolean key should fail")
	}
}

func TestKeyEncoding(t *testing.T) {
	out, err := json.Marshal([]Key{StringKey("a"), NumberKey(2)})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `["a",2]` {
		t.Errorf("Marshal = %s, want [\"a\",2]", out)
	}
}

func TestValidate(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name    string
		series  []Series
		wantErr bool
	}{
		{"valid", []Series{ramp("a", 3)}, false},
		{"empty", nil, false},
		{"bad name", []Series{{Name: "a\x00"}}, true},
		{"bad line style", []Series{{LineStyle: "wavy"}}, true},
		{"bad area style", []Series{{AreaStyle: "hatched"}}, true},
		{"NaN value", []Series{{Data: []DataPoint{{Value: &nan}}}}, true},
		{"too many series", make([]Series, cerrors.MaxSeries+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.series)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !cerrors.Is(err, cerrors.ErrCodeInvalidChart) {
				t.Errorf("Validate() code = %v, want INVALID_CHART", cerrors.GetCode(err))
			}
			if err != nil && strings.TrimSpace(cerrors.UserMessage(err)) == "" {
				t.Error("error should carry a message")
			}
		})
	}
}
