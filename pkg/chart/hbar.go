package chart

import (
	"math"

	"github.com/matzehuels/statviz/pkg/bounds"
	"github.com/matzehuels/statviz/pkg/fn"
	"github.com/matzehuels/statviz/pkg/layout"
	"github.com/matzehuels/statviz/pkg/render/axis"
	"github.com/matzehuels/statviz/pkg/render/canvas"
	"github.com/matzehuels/statviz/pkg/render/mark"
	"github.com/matzehuels/statviz/pkg/scale"
)

func init() {
	register("hbar", chartType{
		props: []prop{
			{"top", rules(map[string]any{"_": 20.0})},
			{"bottom", rules(map[string]any{"_": 60.0})},
			{"xTicks", rules(map[string]any{"palm": 3.0, "_": 5.0})},
		},
		requires: func(s *Spec) []requirement {
			return []requirement{{"x.field", s.X.Field}, {"y.field", s.Y.Field}}
		},
		build: buildHBar,
	})
}

// buildHBar lays out one row per category of y with bars of fixed height.
// Rows sharing a category are stacked in data order, colored by the color
// field. The chart is as tall as its rows need.
func buildHBar(f *frame) error {
	s := f.spec
	xFormat, err := numberFormat(s.X.Format)
	if err != nil {
		return err
	}
	colors, err := ordinalPalette(s.Color.Palette)
	if err != nil {
		return err
	}
	if s.Color.Field != "" {
		colors = colors.WithDomain(keys(s.Data, s.Color.Field))
	}

	cats := keys(s.Data, s.Y.Field)
	dims := layout.HorizontalBar(len(cats))
	f.out.Geometry = dims

	// Stack offsets per category.
	starts := make([]float64, len(s.Data))
	totals := make(map[string]float64, len(cats))
	for i, r := range s.Data {
		cat := r.String(s.Y.Field)
		starts[i] = totals[cat]
		if v := r.Float(s.X.Field); !math.IsNaN(v) && v > 0 {
			totals[cat] += v
		}
	}
	var xMax float64
	for _, t := range totals {
		xMax = math.Max(xMax, t)
	}

	top := f.float("top", 20)
	bottom := f.float("bottom", 60)
	b := f.bounds(bounds.Config{Height: fn.Ptr(top + dims.TotalHeight + bottom)})
	chartWidth := math.Min(b.InnerWidth, f.maxWidth())

	xScale := scale.NewLinear(0, xMax, 0, chartWidth)
	yScale := scale.NewBand(cats, 0, dims.TotalHeight).
		PaddingInner(dims.PadRatio).
		PaddingOuter(dims.OuterRatio)

	dark := colors.Darker()
	type stacked struct {
		Row
		start float64
	}
	data := make([]stacked, len(s.Data))
	for i, r := range s.Data {
		data[i] = stacked{Row: r, start: starts[i]}
	}
	bar := mark.Bar[stacked]{
		X: fn.Accessor(func(d stacked) float64 { return xScale.Map(d.start) }),
		Y: fn.Accessor(func(d stacked) float64 { return yScale.Map(d.String(s.Y.Field)) }),
		Width: fn.Accessor(func(d stacked) float64 {
			v := d.Float(s.X.Field)
			return xScale.Map(d.start+v) - xScale.Map(d.start)
		}),
		Height: fn.Const[stacked](yScale.Bandwidth()),
		Fill: fn.Accessor(func(d stacked) string {
			key := d.String(s.Color.Field)
			if f.isSelected(d.String(s.Y.Field)) {
				return dark.Map(key)
			}
			return colors.Map(key)
		}),
		Key:           fn.Accessor(func(d stacked) string { return d.String(s.Y.Field) }),
		CenterTooltip: true,
	}
	bars := bar.Layout(data)
	f.out.Bars = bars
	f.out.Anchors = mark.Anchors(bars)
	for _, r := range s.Data {
		f.rows[r.String(s.Y.Field)] = r
	}
	f.tipBody = []string{s.X.Field}

	xCfg := axis.X(xScale)
	xCfg.Ticks = fn.Either(nonZero(s.X.Ticks), int(f.float("xTicks", 5)))
	xCfg.TickFormat = xFormat
	xCfg.AlignOuterLabels = true
	xCfg.Title = s.X.Title
	if err := addAxis(f, "x", 0, dims.TotalHeight, xCfg); err != nil {
		return err
	}

	yCfg := axis.YOrdinal(yScale)
	yCfg.Highlight = s.Selection
	yCfg.Title = s.Y.Title
	if err := addAxis(f, "y", 0, dims.AxisOffset, yCfg); err != nil {
		return err
	}

	f.layer(func(c *canvas.Canvas) {
		c.Layer("sszvis-bars", 0, 0)
		mark.DrawBars(c, bars)
		c.End()
	})
	return nil
}
