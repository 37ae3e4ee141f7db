package scale

import (
	"math"
	"slices"
	"testing"
	"time"
)

const tolerance = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < tolerance }

func TestBandMap(t *testing.T) {
	domain := []string{"a", "b", "c"}
	tests := []struct {
		name      string
		scale     Band
		want      map[string]float64
		bandwidth float64
	}{
		{
			name:      "no padding",
			scale:     NewBand(domain, 0, 120),
			want:      map[string]float64{"a": 0, "b": 40, "c": 80},
			bandwidth: 40,
		},
		{
			name:      "inner padding",
			scale:     NewBand(domain, 0, 120).PaddingInner(0.2),
			want:      map[string]float64{"a": 0, "b": 120 / 2.8, "c": 240 / 2.8},
			bandwidth: 120 / 2.8 * 0.8,
		},
		{
			name:      "reversed range",
			scale:     NewBand(domain, 120, 0),
			want:      map[string]float64{"a": 80, "b": 40, "c": 0},
			bandwidth: 40,
		},
		{
			name:      "rounded",
			scale:     NewBand(domain, 0, 0).RangeRound(0, 100),
			want:      map[string]float64{"a": 1, "b": 34, "c": 67},
			bandwidth: 33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, want := range tt.want {
				if got := tt.scale.Map(k); !approx(got, want) {
					t.Errorf("Map(%q) = %v, want %v", k, got, want)
				}
			}
			if got := tt.scale.Bandwidth(); !approx(got, tt.bandwidth) {
				t.Errorf("Bandwidth() = %v, want %v", got, tt.bandwidth)
			}
		})
	}
}

func TestBandEdgeCases(t *testing.T) {
	s := NewBand([]string{"x", "y", "x"}, 0, 100)
	if got := s.Domain(); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("Domain() = %v, want deduplicated", got)
	}
	if !math.IsNaN(s.Map("z")) {
		t.Error("Map of unknown category is not NaN")
	}
	if s.Contains("z") || !s.Contains("y") {
		t.Error("Contains() wrong")
	}
	first, last := s.DomainExtent()
	if first != "x" || last != "y" {
		t.Errorf("DomainExtent() = %q, %q", first, last)
	}

	empty := NewBand(nil, 0, 100)
	if bw := empty.Bandwidth(); math.IsNaN(bw) || math.IsInf(bw, 0) {
		t.Errorf("empty Bandwidth() = %v", bw)
	}
	if a, b := empty.DomainExtent(); a != "" || b != "" {
		t.Errorf("empty DomainExtent() = %q, %q", a, b)
	}
}

func TestLinear(t *testing.T) {
	s := NewLinear(0, 100, 365, 0)
	tests := []struct {
		in, want float64
	}{
		{0, 365},
		{100, 0},
		{50, 182.5},
		{200, -365},
	}
	for _, tt := range tests {
		if got := s.Map(tt.in); !approx(got, tt.want) {
			t.Errorf("Map(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := s.Clamp(true).Map(200); got != 0 {
		t.Errorf("clamped Map(200) = %v, want 0", got)
	}
	if got := s.Invert(0); !approx(got, 100) {
		t.Errorf("Invert(0) = %v, want 100", got)
	}
	if !math.IsNaN(s.Map(math.NaN())) {
		t.Error("Map(NaN) is not NaN")
	}
	if got := NewLinear(5, 5, 0, 10).Map(5); got != 5 {
		t.Errorf("degenerate Map() = %v, want 5", got)
	}
	lo, hi := s.RangeExtent()
	if lo != 0 || hi != 365 {
		t.Errorf("RangeExtent() = %v, %v", lo, hi)
	}
}

func TestLinearTicks(t *testing.T) {
	tests := []struct {
		name   string
		d0, d1 float64
		count  int
		want   []float64
	}{
		{"y axis", 0, 1000, 7, []float64{0, 200, 400, 600, 800, 1000}},
		{"unit interval", 0, 1, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{"mirrored", -100, 100, 10, []float64{-100, -80, -60, -40, -20, 0, 20, 40, 60, 80, 100}},
		{"reversed", 1000, 0, 7, []float64{0, 200, 400, 600, 800, 1000}},
		{"negative", -35, 12, 3, []float64{-20, 0}},
		{"fractional", 0, 0.9, 4, []float64{0, 0.2, 0.4, 0.6, 0.8}},
		{"unit range", 0, 100, 5, []float64{0, 20, 40, 60, 80, 100}},
		{"large", 0, 31000, 5, []float64{0, 5000, 10000, 15000, 20000, 25000, 30000}},
		{"single tick hint", 0, 10, 1, []float64{0, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLinear(tt.d0, tt.d1, 0, 500).Ticks(tt.count)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Ticks(%d) = %v, want %v", tt.count, got, tt.want)
			}
		})
	}

	if got := NewLinear(3, 3, 0, 1).Ticks(5); !slices.Equal(got, []float64{3}) {
		t.Errorf("degenerate Ticks() = %v", got)
	}
	if got := NewLinear(0, 1, 0, 1).Ticks(0); got != nil {
		t.Errorf("Ticks(0) = %v, want nil", got)
	}
}

func TestLinearNice(t *testing.T) {
	tests := []struct {
		name         string
		d0, d1       float64
		count        int
		want0, want1 float64
	}{
		{"round out", 0.3, 97.2, 5, 0, 100},
		{"reversed", 97.2, 0.3, 5, 100, 0},
		{"fractional", 0.13, 0.87, 5, 0, 1},
		{"already nice", 0, 1000, 7, 0, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d0, d1 := NewLinear(tt.d0, tt.d1, 0, 100).Nice(tt.count).Domain()
			if d0 != tt.want0 || d1 != tt.want1 {
				t.Errorf("Nice(%d) domain = [%v, %v], want [%v, %v]", tt.count, d0, d1, tt.want0, tt.want1)
			}
		})
	}
}

func TestMirror(t *testing.T) {
	m := Mirror(NewLinear(0, 100, 0, 200))
	tests := []struct{ in, want float64 }{
		{-100, -200},
		{0, 0},
		{50, 100},
		{100, 200},
	}
	for _, tt := range tests {
		if got := m.Map(tt.in); !approx(got, tt.want) {
			t.Errorf("Map(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if d0, d1 := m.Domain(); d0 != -100 || d1 != 100 {
		t.Errorf("Domain() = %v, %v", d0, d1)
	}
}

func TestThreshold(t *testing.T) {
	s := NewThreshold([]float64{10, 20}, []string{"low", "mid", "high"})
	tests := []struct {
		in   float64
		want string
	}{
		{5, "low"},
		{10, "mid"},
		{15, "mid"},
		{20, "high"},
		{1e6, "high"},
		{math.NaN(), ""},
	}
	for _, tt := range tests {
		if got := s.Map(tt.in); got != tt.want {
			t.Errorf("Map(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTimeScale(t *testing.T) {
	d0 := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	d1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewTime(d0, d1, 0, 500)

	if got := s.Map(d0); got != 0 {
		t.Errorf("Map(d0) = %v", got)
	}
	if got := s.Map(d1); got != 500 {
		t.Errorf("Map(d1) = %v", got)
	}
	if !math.IsNaN(s.Map(time.Time{})) {
		t.Error("Map(zero time) is not NaN")
	}
	if got := s.Invert(500); !got.Equal(d1) {
		t.Errorf("Invert(500) = %v", got)
	}

	ticks := s.Ticks(5)
	if len(ticks) < 2 || len(ticks) > 5 {
		t.Fatalf("Ticks(5) = %v", ticks)
	}
	for _, tk := range ticks {
		if tk.Month() != time.January || tk.Day() != 1 {
			t.Errorf("year tick %v is not on January 1st", tk)
		}
		if tk.Before(d0) || tk.After(d1) {
			t.Errorf("tick %v outside domain", tk)
		}
	}
}

func TestTimeTicksSubDay(t *testing.T) {
	d0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := NewTime(d0, d0.Add(12*time.Hour), 0, 100)
	ticks := s.Ticks(4)
	if len(ticks) != 5 {
		t.Fatalf("Ticks(4) = %v, want 5 ticks every 3h", ticks)
	}
	for i, tk := range ticks {
		if want := d0.Add(time.Duration(i) * 3 * time.Hour); !tk.Equal(want) {
			t.Errorf("tick %d = %v, want %v", i, tk, want)
		}
	}
}

func TestTimeTicksMonths(t *testing.T) {
	d0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewTime(d0, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 0, 100)
	ticks := s.Ticks(4)
	want := []time.Time{d0, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)}
	if len(ticks) != len(want) {
		t.Fatalf("Ticks(4) = %v, want %v", ticks, want)
	}
	for i := range want {
		if !ticks[i].Equal(want[i]) {
			t.Errorf("tick %d = %v, want %v", i, ticks[i], want[i])
		}
	}
}
