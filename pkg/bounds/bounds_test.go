package bounds

import (
	"testing"

	"github.com/matzehuels/statviz/pkg/fn"
	"github.com/matzehuels/statviz/pkg/measure"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		m    measure.Measurer
		want Bounds
	}{
		{
			name: "defaults",
			want: Bounds{
				Width: 516, Height: 365, InnerWidth: 514, InnerHeight: 365,
				Padding: Padding{Right: 1, Left: 1},
			},
		},
		{
			name: "top and bottom padding",
			cfg:  Config{Top: fn.Ptr(20.0), Bottom: fn.Ptr(130.0)},
			want: Bounds{
				Width: 516, Height: 515, InnerWidth: 514, InnerHeight: 365,
				Padding: Padding{Top: 20, Right: 1, Bottom: 130, Left: 1},
			},
		},
		{
			name: "measured width",
			cfg:  Config{Left: fn.Ptr(40.0), Right: fn.Ptr(0.0)},
			m:    measure.Width(800),
			want: Bounds{
				Width: 800, Height: 365, InnerWidth: 760, InnerHeight: 365,
				Padding: Padding{Left: 40},
				Screen:  measure.Dimensions{Width: 800},
			},
		},
		{
			name: "zero measurement falls back",
			m:    measure.Width(0),
			want: Bounds{
				Width: 516, Height: 365, InnerWidth: 514, InnerHeight: 365,
				Padding: Padding{Right: 1, Left: 1},
			},
		},
		{
			name: "explicit width wins over measurement",
			cfg:  Config{Width: fn.Ptr(300.0), Height: fn.Ptr(200.0), Top: fn.Ptr(10.0)},
			m:    measure.Width(800),
			want: Bounds{
				Width: 300, Height: 200, InnerWidth: 298, InnerHeight: 190,
				Padding: Padding{Top: 10, Right: 1, Left: 1},
				Screen:  measure.Dimensions{Width: 800},
			},
		},
		{
			name: "measured height ignored without fill",
			m:    measure.Fixed{Width: 600, Height: 900},
			want: Bounds{
				Width: 600, Height: 365, InnerWidth: 598, InnerHeight: 365,
				Padding: Padding{Right: 1, Left: 1},
				Screen:  measure.Dimensions{Width: 600, Height: 900},
			},
		},
		{
			name: "fill height",
			cfg:  Config{FillHeight: true, Top: fn.Ptr(50.0)},
			m:    measure.Fixed{Width: 600, Height: 900},
			want: Bounds{
				Width: 600, Height: 900, InnerWidth: 598, InnerHeight: 850,
				Padding: Padding{Top: 50, Right: 1, Left: 1},
				Screen:  measure.Dimensions{Width: 600, Height: 900},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.cfg, tt.m); got != tt.want {
				t.Errorf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeRoundTrip(t *testing.T) {
	for _, w := range []float64{0, 1, 320, 516, 1024.5} {
		for _, pad := range []float64{0, 3, 17.25, 120} {
			cfg := Config{Top: fn.Ptr(pad), Right: fn.Ptr(pad / 2), Bottom: fn.Ptr(pad * 2), Left: fn.Ptr(pad + 1)}
			b := Compute(cfg, measure.Width(w))
			if got := b.InnerWidth + b.Padding.Left + b.Padding.Right; got != b.Width {
				t.Errorf("w=%v pad=%v: inner+padding width = %v, want %v", w, pad, got, b.Width)
			}
			if got := b.InnerHeight + b.Padding.Top + b.Padding.Bottom; got != b.Height {
				t.Errorf("w=%v pad=%v: inner+padding height = %v, want %v", w, pad, got, b.Height)
			}
		}
	}
}

func TestTranslate(t *testing.T) {
	b := Compute(Config{Top: fn.Ptr(3.0), Left: fn.Ptr(40.5)}, nil)
	if got, want := b.Translate(), "translate(40.5,3)"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
	if got, want := TranslateString(-1, 0), "translate(-1,0)"; got != want {
		t.Errorf("TranslateString() = %q, want %q", got, want)
	}
}
