package chart

import (
	"math"

	"github.com/matzehuels/statviz/pkg/bounds"
	"github.com/matzehuels/statviz/pkg/fn"
	"github.com/matzehuels/statviz/pkg/measure"
	"github.com/matzehuels/statviz/pkg/render/canvas"
	"github.com/matzehuels/statviz/pkg/render/mark"
	"github.com/matzehuels/statviz/pkg/scale"
)

// DefaultPieRadius is the radius of a pie with enough room.
const DefaultPieRadius = 130

func init() {
	register("pie", chartType{
		props: []prop{
			{"top", rules(map[string]any{"_": 20.0})},
			{"bottom", rules(map[string]any{"_": 20.0})},
			{"pieRadius", rules(map[string]any{"_": float64(DefaultPieRadius)})},
			{"innerRadius", rules(map[string]any{"_": 0.0})},
		},
		requires: func(s *Spec) []requirement {
			return []requirement{{"value.field", s.Value.Field}, {"color.field", s.Color.Field}}
		},
		build: buildPie,
	})
}

// buildPie lays out one slice per row, sized by value and colored by
// category, centered horizontally.
func buildPie(f *frame) error {
	s := f.spec
	colors, err := ordinalPalette(s.Color.Palette)
	if err != nil {
		return err
	}
	colors = colors.WithDomain(keys(s.Data, s.Color.Field))

	var sum float64
	for _, r := range s.Data {
		if v := r.Float(s.Value.Field); !math.IsNaN(v) && v > 0 {
			sum += v
		}
	}

	// The radius shrinks to fit narrow containers.
	avail := bounds.Compute(bounds.Config{Width: s.Bounds.Width}, measure.Fixed(f.dims))
	radius := math.Max(0, math.Min(f.float("pieRadius", DefaultPieRadius), avail.InnerWidth/2))
	top, bottom := f.float("top", 20), f.float("bottom", 20)
	b := f.bounds(bounds.Config{Height: fn.Ptr(top + 2*radius + bottom)})
	f.out.Origin.X += b.InnerWidth/2 - radius

	angle := scale.NewLinear(0, sum, 0, 2*math.Pi)
	pie := mark.Pie[Row]{
		Radius:      radius,
		InnerRadius: math.Min(radius, math.Max(0, f.float("innerRadius", 0))),
		Angle: fn.Accessor(func(r Row) float64 {
			if sum == 0 {
				return 0
			}
			return angle.Map(r.Float(s.Value.Field))
		}),
		Fill: fn.Accessor(func(r Row) string { return colors.Map(r.String(s.Color.Field)) }),
		Key:  fn.Accessor(func(r Row) string { return r.String(s.Color.Field) }),
	}
	wedges := pie.Layout(s.Data)
	f.out.Slices = wedges
	f.out.Anchors = mark.Anchors(wedges)
	for _, r := range s.Data {
		f.rows[r.String(s.Color.Field)] = r
	}
	f.tipBody = []string{s.Value.Field}

	f.layer(func(c *canvas.Canvas) {
		mark.DrawPie(c, radius, wedges)
	})
	return nil
}
