package chart

import (
	"math"

	"github.com/matzehuels/statviz/pkg/bounds"
	"github.com/matzehuels/statviz/pkg/fn"
	"github.com/matzehuels/statviz/pkg/render/axis"
	"github.com/matzehuels/statviz/pkg/render/canvas"
	"github.com/matzehuels/statviz/pkg/render/mark"
	"github.com/matzehuels/statviz/pkg/scale"
)

// DotRadius is the radius of scatterplot dots.
const DotRadius = 4

func init() {
	register("scatter", chartType{
		props: []prop{
			{"top", rules(map[string]any{"_": 20.0})},
			{"bottom", rules(map[string]any{"_": 60.0})},
			{"xTicks", rules(map[string]any{"palm": 3.0, "_": 5.0})},
			{"radius", rules(map[string]any{"_": float64(DotRadius)})},
		},
		requires: func(s *Spec) []requirement {
			return []requirement{{"x.field", s.X.Field}, {"y.field", s.Y.Field}}
		},
		build: buildScatter,
	})
}

// buildScatter places one dot per row at (x, y), colored by category.
// Rows missing either coordinate are left out.
func buildScatter(f *frame) error {
	s := f.spec
	xFormat, err := numberFormat(s.X.Format)
	if err != nil {
		return err
	}
	yFormat, err := numberFormat(s.Y.Format)
	if err != nil {
		return err
	}
	colors, err := ordinalPalette(s.Color.Palette)
	if err != nil {
		return err
	}
	colors = colors.WithDomain(keys(s.Data, s.Color.Field))

	xs := make([]float64, len(s.Data))
	ys := make([]float64, len(s.Data))
	for i, r := range s.Data {
		xs[i], ys[i] = r.Float(s.X.Field), r.Float(s.Y.Field)
	}
	xLo, xHi := extent(xs)
	_, yHi := extent(ys)
	yTicks := fn.Either(nonZero(s.Y.Ticks), 7)
	yScale := scale.NewLinear(0, math.Max(0, finite(yHi)), 1, 0)
	var labels []string
	for _, v := range yScale.Ticks(yTicks) {
		labels = append(labels, yFormat(v))
	}

	b := f.bounds(bounds.Config{Left: fn.Ptr(math.Ceil(widest(labels)) + yAxisGap)})
	xScale := scale.NewLinear(finite(xLo), finite(xHi), 0, b.InnerWidth)
	yScale = yScale.WithRange(b.InnerHeight, 0)

	key := func(r Row) string {
		if s.Color.Field != "" {
			return r.String(s.Color.Field) + ": " + r.String(s.X.Field) + ", " + r.String(s.Y.Field)
		}
		return r.String(s.X.Field) + ", " + r.String(s.Y.Field)
	}
	dot := mark.Dot[Row]{
		X:      fn.Accessor(func(r Row) float64 { return xScale.Map(r.Float(s.X.Field)) }),
		Y:      fn.Accessor(func(r Row) float64 { return yScale.Map(r.Float(s.Y.Field)) }),
		Radius: fn.Const[Row](f.float("radius", DotRadius)),
		Fill:   fn.Accessor(func(r Row) string { return colors.Map(r.String(s.Color.Field)) }),
		Stroke: fn.Const[Row]("#FFFFFF"),
		Key:    fn.Accessor(key),
	}
	dots := dot.Layout(s.Data)
	f.out.Dots = dots
	f.out.Anchors = mark.Anchors(dots)
	for _, r := range s.Data {
		f.rows[key(r)] = r
	}
	f.tipBody = []string{s.X.Field, s.Y.Field}

	xCfg := axis.X(xScale)
	xCfg.Ticks = fn.Either(nonZero(s.X.Ticks), int(f.float("xTicks", 5)))
	xCfg.TickFormat = xFormat
	xCfg.AlignOuterLabels = true
	xCfg.Title = s.X.Title
	xCfg.TitleCenter = true
	xCfg.TitleAlign = "middle"
	if err := addAxis(f, "x", 0, b.InnerHeight, xCfg); err != nil {
		return err
	}

	yCfg := axis.Y(yScale)
	yCfg.Orient = axis.Left
	yCfg.TickPadding = yAxisGap
	yCfg.Ticks = yTicks
	yCfg.TickFormat = yFormat
	yCfg.ShowZeroY = true
	yCfg.Title = s.Y.Title
	if err := addAxis(f, "y", 0, 0, yCfg); err != nil {
		return err
	}

	f.layer(func(c *canvas.Canvas) {
		c.Layer("sszvis-dots", 0, 0)
		mark.DrawDots(c, dots)
		c.End()
	})
	return nil
}
