package axis

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	sverrors "github.com/matzehuels/statviz/pkg/errors"
	"github.com/matzehuels/statviz/pkg/fn"
	"github.com/matzehuels/statviz/pkg/render/canvas"
	"github.com/matzehuels/statviz/pkg/scale"
)

func layout[T any](t *testing.T, cfg Config[T]) Result[T] {
	t.Helper()
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a.Layout()
}

func tickAt[T any](t *testing.T, r Result[T], v T) Tick[T] {
	t.Helper()
	for _, tk := range r.Ticks {
		if fmt.Sprint(tk.Value) == fmt.Sprint(v) {
			return tk
		}
	}
	t.Fatalf("no tick for %v", v)
	return Tick[T]{}
}

func TestOrdinalTicks(t *testing.T) {
	domain := strings.Split("ABCDEFGHIJ", "")
	tests := []struct {
		name   string
		domain []string
		count  int
		want   []string
	}{
		{"stride three", domain, 3, []string{"A", "D", "G", "J"}},
		{"stride two", domain, 5, []string{"A", "C", "E", "G", "I", "J"}},
		{"count above length", domain, 40, domain},
		{"single tick", domain, 1, []string{"A", "J"}},
		{"two values", []string{"x", "y"}, 1, []string{"x", "y"}},
		{"one value", []string{"x"}, 3, []string{"x"}},
		{"empty", nil, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OrdinalTicks(tt.domain, tt.count); !slices.Equal(got, tt.want) {
				t.Errorf("OrdinalTicks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrdinalTicksKeepEnds(t *testing.T) {
	for n := 2; n <= 30; n++ {
		domain := make([]int, n)
		for i := range domain {
			domain[i] = i
		}
		for count := 1; count <= n+2; count++ {
			got := OrdinalTicks(domain, count)
			if got[0] != 0 || got[len(got)-1] != n-1 {
				t.Fatalf("OrdinalTicks(len %d, %d) = %v, ends missing", n, count, got)
			}
		}
	}
}

func TestNewValidation(t *testing.T) {
	lin := scale.NewLinear(0, 1, 0, 100)
	tests := []struct {
		name string
		cfg  Config[float64]
		code sverrors.Code
	}{
		{"no scale", Config[float64]{Orient: Bottom}, sverrors.ErrCodeMissingProperty},
		{"no orientation", Config[float64]{Scale: lin}, sverrors.ErrCodeMissingProperty},
		{"bad orientation", Config[float64]{Scale: lin, Orient: "diagonal"}, sverrors.ErrCodeInvalidOrientation},
		{"bad slant", Config[float64]{Scale: lin, Orient: Bottom, Slant: "upside"}, sverrors.ErrCodeInvalidConfig},
		{"bad title align", Config[float64]{Scale: lin, Orient: Left, TitleAlign: "center"}, sverrors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if !sverrors.Is(err, tt.code) {
				t.Errorf("New() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestEdgeSuppression(t *testing.T) {
	cfg := X(scale.NewLinear(0, 100, 0, 500))
	cfg.TickValues = []float64{0, 1, 2, 50, 98, 99, 100}
	r := layout(t, cfg)

	want := map[float64]bool{0: true, 1: true, 2: false, 50: false, 98: false, 99: true, 100: true}
	for v, hidden := range want {
		if got := tickAt(t, r, v).LineHidden; got != hidden {
			t.Errorf("tick %v LineHidden = %v, want %v", v, got, hidden)
		}
	}
}

func TestEdgeSuppressionBand(t *testing.T) {
	tests := []struct {
		name string
		band scale.Band
		want map[string]bool
	}{
		{
			name: "no outer padding",
			band: scale.NewBand(strings.Split("ABCDE", ""), 0, 100),
			want: map[string]bool{"A": true, "B": false, "C": false, "D": false, "E": false},
		},
		{
			name: "outer padding",
			band: scale.NewBand(strings.Split("ABCDE", ""), 0, 100).PaddingOuter(1),
			want: map[string]bool{"A": false, "E": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := layout(t, XOrdinal(tt.band))
			for v, hidden := range tt.want {
				if got := tickAt(t, r, v).LineHidden; got != hidden {
					t.Errorf("tick %s LineHidden = %v, want %v", v, got, hidden)
				}
			}
			if got := tickAt(t, r, "A").Pos; got == tt.band.Map("A") {
				t.Errorf("tick A at %v, want band center", got)
			}
		})
	}
}

func TestEdgeSuppressionMidpoint(t *testing.T) {
	for _, width := range []float64{0, 4, 10, 16, 17, 300} {
		cfg := X(scale.NewLinear(0, 1, 0, width))
		cfg.TickValues = []float64{0.5}
		r := layout(t, cfg)
		if width >= 16 && r.Ticks[0].LineHidden {
			t.Errorf("width %v: midpoint tick hidden", width)
		}
	}
}

func TestHighlightBoundary(t *testing.T) {
	base := X(scale.NewLinear(0, 500, 0, 500))
	base.TickValues = []float64{100, 105, 115}
	base.Highlight = []float64{100}

	t.Run("boundary hides close neighbours", func(t *testing.T) {
		cfg := base
		cfg.HighlightBoundary = 10
		r := layout(t, cfg)
		if tk := tickAt(t, r, 100); !tk.Active || tk.LabelHidden {
			t.Errorf("highlighted tick = %+v", tk)
		}
		if !tickAt(t, r, 105).LabelHidden {
			t.Error("label at 105 not hidden")
		}
		if tickAt(t, r, 115).LabelHidden {
			t.Error("label at 115 hidden")
		}
	})

	t.Run("zero boundary disables hiding", func(t *testing.T) {
		r := layout(t, base)
		for _, tk := range r.Ticks {
			if tk.LabelHidden {
				t.Errorf("tick %v hidden with boundary 0", tk.Value)
			}
		}
		if !tickAt(t, r, 100).Active {
			t.Error("tick 100 not active")
		}
	})

	t.Run("predicate", func(t *testing.T) {
		cfg := base
		cfg.Highlight = nil
		cfg.HighlightFunc = func(v float64) bool { return v > 110 }
		r := layout(t, cfg)
		if !tickAt(t, r, 115).Active || tickAt(t, r, 100).Active {
			t.Error("HighlightFunc not applied")
		}
	})
}

func TestTickLength(t *testing.T) {
	tests := []struct {
		orient Orientation
		want   Segment
		dy     string
	}{
		{Bottom, Segment{Y1: -20, Y2: 4}, ".71em"},
		{Top, Segment{Y1: 20, Y2: -4}, "0em"},
		{Left, Segment{X1: -20, X2: -4}, "-0.4em"},
		{Right, Segment{X1: 20, X2: 4}, "-0.4em"},
	}

	for _, tt := range tests {
		t.Run(string(tt.orient), func(t *testing.T) {
			cfg := X(scale.NewLinear(0, 100, 0, 300))
			cfg.Orient = tt.orient
			cfg.TickValues = []float64{0, 50, 100}
			cfg.TickLength = fn.Ptr(20.0)
			r := layout(t, cfg)

			mid := tickAt(t, r, 50)
			if mid.Line != tt.want {
				t.Errorf("middle tick line = %+v, want %+v", mid.Line, tt.want)
			}
			if mid.Dy != tt.dy {
				t.Errorf("middle tick dy = %q, want %q", mid.Dy, tt.dy)
			}
			for _, v := range []float64{0, 100} {
				if l := tickAt(t, r, v).Line; l.X1 != 0 || l.Y1 != 0 {
					t.Errorf("outer tick %v line overridden: %+v", v, l)
				}
			}
		})
	}
}

func TestAlignOuterLabels(t *testing.T) {
	d0 := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	d1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := XTime(scale.NewTime(d0, d1, 0, 500))
	cfg.TickValues = []time.Time{d0, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), d1}
	r := layout(t, cfg)

	want := []string{"start", "middle", "end"}
	for i, tk := range r.Ticks {
		if tk.Anchor != want[i] {
			t.Errorf("tick %d anchor = %q, want %q", i, tk.Anchor, want[i])
		}
	}
	if r.Ticks[0].Label != "2010" {
		t.Errorf("time label = %q, want 2010", r.Ticks[0].Label)
	}
}

func TestSlant(t *testing.T) {
	band := scale.NewBand([]string{"a", "b"}, 0, 100)
	tests := []struct {
		orient    Orientation
		slant     Slant
		anchor    string
		transform string
	}{
		{Bottom, SlantVertical, "end", "rotate(-90)"},
		{Bottom, SlantDiagonal, "end", "rotate(-45)"},
		{Top, SlantVertical, "start", "rotate(-90)"},
		{Top, SlantDiagonal, "start", "rotate(-45)"},
		{Bottom, SlantHorizontal, "middle", ""},
		{Left, SlantVertical, "end", ""},
		{Right, SlantDiagonal, "start", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.orient)+"/"+string(tt.slant), func(t *testing.T) {
			cfg := XOrdinal(band)
			cfg.Orient = tt.orient
			cfg.Slant = tt.slant
			r := layout(t, cfg)
			tk := r.Ticks[0]
			if tk.Anchor != tt.anchor || tk.Transform != tt.transform {
				t.Errorf("anchor/transform = %q/%q, want %q/%q", tk.Anchor, tk.Transform, tt.anchor, tt.transform)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	lin := scale.NewLinear(0, 10, 0, 400)
	tests := []struct {
		name   string
		mutate func(*Config[float64])
		want   Title
	}{
		{"bottom default", func(c *Config[float64]) {}, Title{Text: "T", X: 400, Y: 35, Anchor: "end"}},
		{"top default", func(c *Config[float64]) { c.Orient = Top }, Title{Text: "T", X: 400, Y: 0, Anchor: "end"}},
		{"left default", func(c *Config[float64]) { c.Orient = Left }, Title{Text: "T", Anchor: "end"}},
		{"right default", func(c *Config[float64]) { c.Orient = Right }, Title{Text: "T", Anchor: "start"}},
		{"overrides", func(c *Config[float64]) {
			c.TitleLeft, c.TitleTop, c.TitleAlign = fn.Ptr(12.0), fn.Ptr(-5.0), "middle"
		}, Title{Text: "T", X: 12, Y: -5, Anchor: "middle"}},
		{"centered with offset", func(c *Config[float64]) {
			c.TitleCenter, c.DyTitle = true, 5
		}, Title{Text: "T", X: 200, Y: 40, Anchor: "end"}},
		{"vertical centered", func(c *Config[float64]) {
			c.Orient, c.TitleCenter, c.TitleVertical = Left, true, true
		}, Title{Text: "T", Y: 200, Anchor: "end", Vertical: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := X(lin)
			cfg.Title = "T"
			tt.mutate(&cfg)
			r := layout(t, cfg)
			if r.Title == nil || *r.Title != tt.want {
				t.Errorf("Title = %+v, want %+v", r.Title, tt.want)
			}
		})
	}

	if r := layout(t, X(lin)); r.Title != nil {
		t.Errorf("untitled axis has title %+v", r.Title)
	}
}

func TestYAxisZero(t *testing.T) {
	cfg := Y(scale.NewLinear(0, 100, 300, 0))
	cfg.TickValues = []float64{0, 50}
	r := layout(t, cfg)
	if got := tickAt(t, r, 0).Label; got != "" {
		t.Errorf("zero label = %q, want hidden", got)
	}
	if got := tickAt(t, r, 0).Lines; got != nil {
		t.Errorf("zero label lines = %v", got)
	}
	if got := tickAt(t, r, 50).Label; got != "50" {
		t.Errorf("label = %q", got)
	}

	cfg.ShowZeroY = true
	if got := tickAt(t, layout(t, cfg), 0).Label; got != "0" {
		t.Errorf("ShowZeroY label = %q, want 0", got)
	}
	if r.Class != "sszvis-axis sszvis-axis--vertical" {
		t.Errorf("Class = %q", r.Class)
	}
}

func TestOrdinalAxis(t *testing.T) {
	band := scale.NewBand([]string{"a", "b", "c"}, 0, 120)
	r := layout(t, XOrdinal(band))

	want := map[string]float64{"a": 20, "b": 60, "c": 100}
	if len(r.Ticks) != 3 {
		t.Fatalf("got %d ticks, want 3", len(r.Ticks))
	}
	for v, pos := range want {
		if got := tickAt(t, r, v).Pos; got != pos {
			t.Errorf("tick %s at %v, want %v (band center)", v, got, pos)
		}
	}
	if r.Class != "sszvis-axis sszvis-axis--bottom" {
		t.Errorf("Class = %q", r.Class)
	}

	cfg := XOrdinal(scale.NewBand(strings.Split("ABCDEFGHIJ", ""), 0, 500))
	cfg.Ticks = 3
	var got []string
	for _, tk := range layout(t, cfg).Ticks {
		got = append(got, tk.Value)
	}
	if !slices.Equal(got, []string{"A", "D", "G", "J"}) {
		t.Errorf("subsampled ticks = %v", got)
	}
}

func TestTextWrap(t *testing.T) {
	cfg := XOrdinal(scale.NewBand([]string{"Handel und Reparatur"}, 0, 100))
	cfg.TextWrap = 50
	r := layout(t, cfg)
	if n := len(r.Ticks[0].Lines); n < 2 {
		t.Errorf("label wrapped into %d lines, want several", n)
	}
}

func TestPyramid(t *testing.T) {
	cfg := XPyramid(scale.NewLinear(0, 1000, 0, 250))
	cfg.TickValues = []float64{-1000, 0, 500}
	r := layout(t, cfg)

	if got := tickAt(t, r, -1000); got.Label != "1000" || got.Pos != -250 {
		t.Errorf("mirrored tick = %q at %v", got.Label, got.Pos)
	}
	if got := tickAt(t, r, 500); got.Pos != 125 {
		t.Errorf("tick 500 at %v, want 125", got.Pos)
	}
	if cfg.Ticks != 10 {
		t.Errorf("Ticks = %d, want 10", cfg.Ticks)
	}
}

func TestDraw(t *testing.T) {
	cfg := X(scale.NewLinear(0, 100, 0, 300))
	cfg.TickValues = []float64{0, 50, 100}
	cfg.Title = "Anzahl <Personen>"
	cfg.Highlight = []float64{50}
	a := Must(New(cfg))

	var buf bytes.Buffer
	c := canvas.New(&buf, 300, 60)
	Draw(c, a.Layout())
	c.Close()
	out := buf.String()

	for _, want := range []string{
		`class="sszvis-axis sszvis-axis--bottom"`,
		`transform="translate(0,2)"`,
		`class="tick"`,
		`class="domain"`,
		`class="active"`,
		`visibility="hidden"`,
		"Anzahl &lt;Personen&gt;",
		`class="sszvis-axis--title"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
	if n := strings.Count(out, `class="tick"`); n != 3 {
		t.Errorf("drew %d ticks, want 3", n)
	}
}

func TestDrawLabelLines(t *testing.T) {
	r := Result[string]{
		Class:  "sszvis-axis sszvis-axis--bottom",
		Orient: Bottom,
		Ticks: []Tick[string]{
			{Value: "a", Pos: 10, Lines: []string{"Kreis <1>"}, TextY: 9, Dy: ".71em", Anchor: "middle"},
			{Value: "b", Pos: 50, Lines: []string{"Kreis", "2 & 3"}, TextY: 9, Anchor: "middle", LabelHidden: true},
		},
	}

	var buf bytes.Buffer
	c := canvas.New(&buf, 100, 40)
	Draw(c, r)
	c.Close()
	out := buf.String()

	for _, want := range []string{
		"Kreis &lt;1&gt;</text>",
		`dy=".71em"`,
		`<tspan x="0" dy="0" >Kreis</tspan>`,
		`<tspan x="0" dy="1.1em" >2 &amp; 3</tspan></text>`,
		`class="hidden"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s\n%s", want, out)
		}
	}
	if n := strings.Count(out, "<text"); n != 2 {
		t.Errorf("drew %d text elements, want 2", n)
	}
}
