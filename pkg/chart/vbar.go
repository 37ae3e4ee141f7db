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
	register("vbar", chartType{
		props: []prop{
			{"barPadding", rules(map[string]any{"palm": 0.4, "_": 0.2})},
			{"bottom", rules(map[string]any{"palm": 140.0, "_": 60.0})},
			{"slant", rules(map[string]any{"palm": "vertical", "_": "horizontal"})},
		},
		requires: func(s *Spec) []requirement {
			return []requirement{{"x.field", s.X.Field}, {"y.field", s.Y.Field}}
		},
		build: buildVBar,
	})
}

// buildVBar lays out one vertical bar per category of x. The bars are
// centered in the inner width, which is capped at the max width.
func buildVBar(f *frame) error {
	s := f.spec
	yFormat, err := numberFormat(s.Y.Format)
	if err != nil {
		return err
	}
	colors, err := ordinalPalette(s.Color.Palette)
	if err != nil {
		return err
	}

	cats := keys(s.Data, s.X.Field)
	values := make([]float64, len(s.Data))
	for i, r := range s.Data {
		values[i] = r.Float(s.Y.Field)
	}
	_, yMax := extent(values)
	if math.IsNaN(yMax) || yMax < 0 {
		yMax = 0
	}
	yTicks := fn.Either(nonZero(s.Y.Ticks), 7)
	probe := scale.NewLinear(0, yMax, 0, 1)
	var labels []string
	for _, v := range probe.Ticks(yTicks) {
		labels = append(labels, yFormat(v))
	}

	b := f.bounds(bounds.Config{
		Top:  fn.Ptr(3.0),
		Left: fn.Ptr(math.Ceil(widest(labels)) + yAxisGap),
	})
	chartWidth := math.Min(b.InnerWidth, f.maxWidth())
	dims := layout.VerticalBar(chartWidth, len(cats))
	f.out.Geometry = dims
	offset := (b.InnerWidth - dims.TotalWidth) / 2
	f.out.Origin.X += offset

	xScale := scale.NewBand(cats, 0, dims.TotalWidth).
		Padding(dims.PadRatio).
		PaddingOuter(f.float("barPadding", 0.2))
	yScale := scale.NewLinear(0, yMax, b.InnerHeight, 0)

	if s.Color.Field != "" {
		colors = colors.WithDomain(keys(s.Data, s.Color.Field))
	}
	dark := colors.Darker()
	bar := mark.Bar[Row]{
		X: fn.Accessor(func(r Row) float64 { return xScale.Map(r.String(s.X.Field)) }),
		Y: fn.Accessor(func(r Row) float64 {
			v := yScale.Map(r.Float(s.Y.Field))
			if math.IsNaN(v) {
				return b.InnerHeight
			}
			return v
		}),
		Width: fn.Const[Row](xScale.Bandwidth()),
		Height: fn.Accessor(func(r Row) float64 {
			v := yScale.Map(r.Float(s.Y.Field))
			if math.IsNaN(v) {
				return 0
			}
			return b.InnerHeight - v
		}),
		Fill: fn.Accessor(func(r Row) string {
			key := r.String(s.Color.Field)
			if f.isSelected(r.String(s.X.Field)) {
				return dark.Map(key)
			}
			return colors.Map(key)
		}),
		Key: fn.Accessor(func(r Row) string { return r.String(s.X.Field) }),
	}
	bars := bar.Layout(s.Data)
	f.out.Bars = bars
	f.out.Anchors = mark.Anchors(bars)
	for _, r := range s.Data {
		f.rows[r.String(s.X.Field)] = r
	}
	f.tipBody = []string{s.Y.Field}

	slant := axis.Slant(f.string("slant", "horizontal"))
	xCfg := axis.XOrdinal(xScale)
	xCfg.Ticks = s.X.Ticks
	xCfg.Slant = slant
	if slant == axis.SlantHorizontal || slant == axis.SlantNone {
		xCfg.TextWrap = xScale.Step()
	}
	xCfg.Highlight = s.Selection
	xCfg.Title = s.X.Title
	if err := addAxis(f, "x", 0, b.InnerHeight, xCfg); err != nil {
		return err
	}

	yCfg := axis.Y(yScale)
	yCfg.Orient = axis.Left
	yCfg.TickPadding = yAxisGap
	yCfg.Ticks = yTicks
	yCfg.TickFormat = yFormat
	yCfg.Title = s.Y.Title
	if err := addAxis(f, "y", -offset, 0, yCfg); err != nil {
		return err
	}

	f.layer(func(c *canvas.Canvas) {
		c.Layer("sszvis-bars", 0, 0)
		mark.DrawBars(c, bars)
		c.End()
	})
	return nil
}

// yAxisGap is the space between value labels and the plot.
const yAxisGap = 6

func nonZero(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
