package tooltip

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/statviz/pkg/bounds"
	"github.com/matzehuels/statviz/pkg/render/canvas"
)

func testBounds() bounds.Bounds {
	return bounds.Bounds{
		Width: 516, Height: 365, InnerWidth: 500, InnerHeight: 365,
		Padding: bounds.Padding{Left: 8, Right: 8},
	}
}

func TestFit(t *testing.T) {
	fit := Fit(Bottom, testBounds())
	tests := []struct {
		name string
		x    float64
		want Orientation
	}{
		{"left edge", 10, Left},
		{"left boundary", 100, Bottom},
		{"center", 258, Bottom},
		{"right boundary", 416, Bottom},
		{"right edge", 500, Right},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fit(Anchor{X: tt.x}); got != tt.want {
				t.Errorf("Fit()(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestFitNarrow(t *testing.T) {
	fit := Fit(Top, bounds.Bounds{Width: 200})
	if got := fit(Anchor{X: 40}); got != Left {
		t.Errorf("Fit()(40) = %v, want left", got)
	}
	if got := fit(Anchor{X: 160}); got != Right {
		t.Errorf("Fit()(160) = %v, want right", got)
	}
}

func TestPlace(t *testing.T) {
	b := testBounds()
	a := Anchor{X: 250, Y: 100}
	tests := []struct {
		name   string
		o      Orientation
		wantX  float64
		wantY  float64
		wantOr Orientation
	}{
		{"bottom", Bottom, 200, 100 - 40 - TipSize, Bottom},
		{"top", Top, 200, 100 + TipSize, Top},
		{"left", Left, 250 + TipSize, 80, Left},
		{"right", Right, 250 - 100 - TipSize, 80, Right},
		{"unknown defaults to bottom", "", 200, 100 - 40 - TipSize, Bottom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := Place(a, tt.o, 100, 40, b)
			if box.X != tt.wantX || box.Y != tt.wantY || box.Orientation != tt.wantOr {
				t.Errorf("Place() = (%v, %v, %v), want (%v, %v, %v)", box.X, box.Y, box.Orientation, tt.wantX, tt.wantY, tt.wantOr)
			}
		})
	}
}

func TestPlaceClamps(t *testing.T) {
	b := testBounds()
	if box := Place(Anchor{X: 0, Y: 50}, Bottom, 100, 40, b); box.X != -8 {
		t.Errorf("left clamp X = %v, want -8", box.X)
	}
	if box := Place(Anchor{X: 500, Y: 50}, Bottom, 100, 40, b); box.X != 408 {
		t.Errorf("right clamp X = %v, want 408", box.X)
	}
}

func TestAnchorValid(t *testing.T) {
	if !(Anchor{X: 1, Y: 2}).Valid() {
		t.Error("finite anchor invalid")
	}
	if (Anchor{X: math.NaN()}).Valid() {
		t.Error("NaN anchor valid")
	}
}

func TestDraw(t *testing.T) {
	var buf bytes.Buffer
	c := canvas.New(&buf, 516, 365)
	box := Place(Anchor{X: 250, Y: 100}, Bottom, 120, 50, testBounds())
	Draw(c, box, Content{Header: "Total", Body: []string{"12 400", "Kreis <1>"}})
	DrawAnchors(c, []Anchor{{X: 1, Y: 2, Key: "a"}, {X: math.NaN()}})
	c.Close()

	out := buf.String()
	for _, want := range []string{"sszvis-tooltip__header", "Total", "Kreis &lt;1&gt;", `data-key="a"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
	if n := strings.Count(out, "data-tooltip-anchor"); n != 1 {
		t.Errorf("drew %d anchors, want 1", n)
	}
}
