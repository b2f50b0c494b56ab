package scale

import (
	"math"
	"testing"

	cerrors "github.com/matzehuels/chartkit/pkg/errors"
)

const eps = 1e-9

func TestExtent(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		want    Interval
		wantErr bool
	}{
		{"simple", []float64{3, -2, 7}, Interval{-2, 7}, false},
		{"single", []float64{5}, Interval{5, 5}, false},
		{"skips NaN", []float64{math.NaN(), 1, 2}, Interval{1, 2}, false},
		{"empty", nil, Interval{}, true},
		{"only NaN", []float64{math.NaN()}, Interval{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extent(tt.values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Extent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !cerrors.Is(err, cerrors.ErrCodeEmptyDomain) {
					t.Errorf("Extent() code = %v, want EMPTY_DOMAIN", cerrors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("Extent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinearZeroBaseline(t *testing.T) {
	s, err := NewLinear(Interval{-50, 100}, Interval{0, 150})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Map(0); math.Abs(got-50) > eps {
		t.Errorf("Map(0) = %v, want 50", got)
	}
}

func TestLinearIncludesZero(t *testing.T) {
	tests := []struct {
		name   string
		domain Interval
		opts   []LinearOption
		want   Interval
	}{
		{"positive", Interval{10, 20}, nil, Interval{0, 20}},
		{"negative", Interval{-20, -10}, nil, Interval{-20, 0}},
		{"spanning", Interval{-5, 5}, nil, Interval{-5, 5}},
		{"reversed input", Interval{20, 10}, nil, Interval{0, 20}},
		{"without baseline", Interval{10, 20}, []LinearOption{WithoutBaseline()}, Interval{10, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewLinear(tt.domain, Interval{0, 100}, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if got := s.Domain(); got != tt.want {
				t.Errorf("Domain() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinearRoundTrip(t *testing.T) {
	domains := []Interval{{0, 1}, {-50, 100}, {-3, -1}, {0, 1e6}, {0.1, 0.2}}
	ranges := []Interval{{0, 150}, {400, 0}, {12.5, 987.25}}

	for _, d := range domains {
		for _, r := range ranges {
			s, err := NewLinear(d, r)
			if err != nil {
				t.Fatal(err)
			}
			dom := s.Domain()
			for i := 0; i <= 20; i++ {
				v := dom.Min + dom.Span()*float64(i)/20
				if got := s.Invert(s.Map(v)); math.Abs(got-v) > 1e-9*math.Max(1, math.Abs(v)) {
					t.Errorf("domain %v range %v: Invert(Map(%v)) = %v", d, r, v, got)
				}
				p := s.Map(v)
				if got := s.Map(s.Invert(p)); math.Abs(got-p) > 0.5 {
					t.Errorf("domain %v range %v: Map(Invert(%v)) = %v", d, r, p, got)
				}
			}
		}
	}
}

func TestLinearDegenerateDomain(t *testing.T) {
	s, err := NewLinear(Interval{0, 0}, Interval{0, 200})
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []float64{-1, 0, 10} {
		if got := s.Map(v); got != 100 {
			t.Errorf("Map(%v) = %v, want 100", v, got)
		}
	}
	if got := s.Invert(37); got != 0 {
		t.Errorf("Invert(37) = %v, want 0", got)
	}

	s, err = NewLinear(Interval{5, 5}, Interval{0, 200}, WithoutBaseline())
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Invert(150); got != 5 {
		t.Errorf("Invert(150) = %v, want 5", got)
	}
}

func TestLinearInvalid(t *testing.T) {
	tests := []struct {
		name   string
		domain Interval
		rng    Interval
		code   cerrors.Code
	}{
		{"zero range", Interval{0, 1}, Interval{10, 10}, cerrors.ErrCodeInvalidRange},
		{"NaN range", Interval{0, 1}, Interval{0, math.NaN()}, cerrors.ErrCodeInvalidRange},
		{"infinite domain", Interval{0, math.Inf(1)}, Interval{0, 10}, cerrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLinear(tt.domain, tt.rng)
			if !cerrors.Is(err, tt.code) {
				t.Errorf("NewLinear() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestBand(t *testing.T) {
	s, err := NewBand([]string{"a", "b", "c"}, Interval{0, 300}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.Bandwidth()*3 > 300 {
		t.Errorf("Bandwidth()*3 = %v, want <= 300", s.Bandwidth()*3)
	}
	if s.Step() != 100 {
		t.Errorf("Step() = %v, want 100", s.Step())
	}
	for i, want := range []float64{0, 100, 200} {
		if got := s.MapIndex(i); math.Abs(got-want) > eps {
			t.Errorf("MapIndex(%d) = %v, want %v", i, got, want)
		}
	}
	if got, ok := s.Map("b"); !ok || got != 100 {
		t.Errorf("Map(b) = %v, %v; want 100, true", got, ok)
	}
	if _, ok := s.Map("z"); ok {
		t.Error("Map(z) should report false")
	}
	if got := s.Center(2); got != 250 {
		t.Errorf("Center(2) = %v, want 250", got)
	}
}

func TestBandPadding(t *testing.T) {
	tests := []struct {
		name  string
		inner float64
		opts  []BandOption
	}{
		{"small", PaddingSmall, nil},
		{"medium", PaddingMedium, nil},
		{"large", PaddingLarge, nil},
		{"outer", PaddingMedium, []BandOption{WithOuterPadding(0.5)}},
		{"rounded", PaddingLarge, []BandOption{WithRound()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewBand([]string{"a", "b", "c", "d"}, Interval{0, 401}, tt.inner, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if s.Bandwidth() > s.Step() {
				t.Errorf("Bandwidth() %v > Step() %v", s.Bandwidth(), s.Step())
			}
			last := s.MapIndex(3) + s.Bandwidth()
			if last > 401+eps {
				t.Errorf("last band ends at %v, beyond range", last)
			}
			for i := 1; i < 4; i++ {
				if s.MapIndex(i) <= s.MapIndex(i-1) {
					t.Errorf("bands out of order at %d", i)
				}
			}
		})
	}
}

func TestBandDuplicateCategories(t *testing.T) {
	s, err := NewBand([]string{"x", "x", "y"}, Interval{0, 90}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if got, _ := s.Map("x"); got != 0 {
		t.Errorf("Map(x) = %v, want first position 0", got)
	}
	if got, _ := s.Map("y"); got != 60 {
		t.Errorf("Map(y) = %v, want 60", got)
	}
}

func TestBandIndexAt(t *testing.T) {
	s, err := NewBand([]string{"a", "b", "c"}, Interval{0, 300}, PaddingMedium)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		px     float64
		want   int
		wantOK bool
	}{
		{0, 0, true},
		{s.Step() - 1, 0, true},
		{s.Step() + 1, 1, true},
		{299, 2, true},
		{-1, 0, false},
		{301, 0, false},
	}
	for _, tt := range tests {
		got, ok := s.IndexAt(tt.px)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("IndexAt(%v) = %d, %v; want %d, %v", tt.px, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestBandInvalid(t *testing.T) {
	if _, err := NewBand(nil, Interval{0, 100}, 0); !cerrors.Is(err, cerrors.ErrCodeEmptyDomain) {
		t.Errorf("empty categories: error = %v, want EMPTY_DOMAIN", err)
	}
	if _, err := NewBand([]string{"a"}, Interval{5, 5}, 0); !cerrors.Is(err, cerrors.ErrCodeInvalidRange) {
		t.Errorf("zero range: error = %v, want INVALID_RANGE", err)
	}
	if _, err := NewBand([]string{"a"}, Interval{0, 10}, 1); !cerrors.Is(err, cerrors.ErrCodeInvalidInput) {
		t.Errorf("padding 1: error = %v, want INVALID_INPUT", err)
	}
}
