package chart

import (
	"math"
	"slices"

	"github.com/matzehuels/statviz/pkg/bounds"
	"github.com/matzehuels/statviz/pkg/fn"
	"github.com/matzehuels/statviz/pkg/layout"
	"github.com/matzehuels/statviz/pkg/measure"
	"github.com/matzehuels/statviz/pkg/render/axis"
	"github.com/matzehuels/statviz/pkg/render/canvas"
	"github.com/matzehuels/statviz/pkg/render/mark"
	"github.com/matzehuels/statviz/pkg/render/palette"
	"github.com/matzehuels/statviz/pkg/render/tooltip"
	"github.com/matzehuels/statviz/pkg/scale"
)

// HeatTablePadding is the space around a heat table reserved for its axes
// and titles.
var HeatTablePadding = layout.Padding{Top: 60, Right: 0, Bottom: 40, Left: 66}

func init() {
	register("heattable", chartType{
		props: []prop{
			{"squarePadding", rules(map[string]any{"_": 2.0})},
			{"slant", rules(map[string]any{"palm": "vertical", "_": "diagonal"})},
		},
		requires: func(s *Spec) []requirement {
			return []requirement{{"x.field", s.X.Field}, {"y.field", s.Y.Field}, {"value.field", s.Value.Field}}
		},
		build: buildHeatTable,
	})
}

// CellKey is the key of the heat table cell at column x and row y.
func CellKey(x, y string) string { return x + " / " + y }

// buildHeatTable lays out a grid of square cells, one column per x
// category and one row per y category, colored by value. Missing values get
// the missing-value pattern and zeros a light gray.
func buildHeatTable(f *frame) error {
	s := f.spec
	xKeys := keys(s.Data, s.X.Field)
	yKeys := keys(s.Data, s.Y.Field)
	values := make([]float64, len(s.Data))
	for i, r := range s.Data {
		values[i] = r.Float(s.Value.Field)
	}
	lo, hi := extent(values)
	colors, err := sequentialPalette(s.Color.Palette, lo, hi)
	if err != nil {
		return err
	}

	width := bounds.Compute(bounds.Config{Width: s.Bounds.Width}, measure.Fixed(f.dims)).Width
	dims := layout.HeatTable(width, f.float("squarePadding", 2), len(xKeys), len(yKeys), HeatTablePadding)
	f.out.Geometry = dims
	f.bounds(bounds.Config{
		Top:    fn.Ptr(HeatTablePadding.Top),
		Bottom: fn.Ptr(HeatTablePadding.Bottom),
		Height: fn.Ptr(HeatTablePadding.Top + dims.Height + HeatTablePadding.Bottom),
	})
	f.out.Origin.X += dims.CenteredOffset

	xScale := scale.NewBand(xKeys, 0, 0).
		Padding(dims.PadRatio).
		PaddingOuter(0).
		RangeRound(0, dims.Width)
	yScale := scale.NewBand(yKeys, 0, 0).
		Padding(dims.PadRatio).
		PaddingOuter(0).
		RangeRound(0, dims.Height)

	var selX, selY []string
	cell := mark.Bar[Row]{
		X:      fn.Accessor(func(r Row) float64 { return xScale.Map(r.String(s.X.Field)) }),
		Y:      fn.Accessor(func(r Row) float64 { return yScale.Map(r.String(s.Y.Field)) }),
		Width:  fn.Const[Row](xScale.Bandwidth()),
		Height: fn.Const[Row](yScale.Bandwidth()),
		Fill: fn.Accessor(func(r Row) string {
			v := r.Float(s.Value.Field)
			switch {
			case math.IsNaN(v):
				return ""
			case v == 0:
				return palette.LightGray
			}
			return colors.Map(v)
		}),
		Stroke: fn.Accessor(func(r Row) string {
			if !f.isSelected(cellKey(s, r)) {
				return ""
			}
			v := r.Float(s.Value.Field)
			if math.IsNaN(v) {
				return palette.SlightlyDarker(palette.MissingFill)
			}
			return palette.SlightlyDarker(colors.Map(v))
		}),
		Key:           fn.Accessor(func(r Row) string { return cellKey(s, r) }),
		CenterTooltip: true,
	}
	cells := cell.Layout(s.Data)
	f.out.Bars = cells
	f.out.Anchors = mark.Anchors(cells)
	for _, r := range s.Data {
		key := cellKey(s, r)
		f.rows[key] = r
		if f.isSelected(key) {
			selX = append(selX, r.String(s.X.Field))
			selY = append(selY, r.String(s.Y.Field))
		}
	}
	f.tipBody = []string{s.Value.Field}
	f.tipFit = tooltip.Top

	xCfg := axis.XOrdinal(xScale)
	xCfg.Orient = axis.Top
	xCfg.Slant = axis.Slant(f.string("slant", "diagonal"))
	xCfg.TickSize = 0
	xCfg.TickPadding = 0
	xCfg.Highlight = selX
	xCfg.Title = s.X.Title
	xCfg.TitleAlign = "middle"
	xCfg.TitleCenter = true
	xCfg.DyTitle = -40
	if err := addAxis(f, "x", 0, -10, xCfg); err != nil {
		return err
	}

	yCfg := axis.YOrdinal(yScale)
	yCfg.Orient = axis.Left
	yCfg.Highlight = selY
	yCfg.Title = s.Y.Title
	yCfg.TitleVertical = true
	yCfg.TitleAlign = "middle"
	yCfg.TitleCenter = true
	yCfg.DxTitle = -40
	if err := addAxis(f, "y", -10, 0, yCfg); err != nil {
		return err
	}

	f.layer(func(c *canvas.Canvas) {
		shapes := slices.Clone(cells)
		for i := range shapes {
			if shapes[i].Fill == "" {
				shapes[i].Fill = c.EnsurePattern(canvas.HeatTableMissingValue)
			}
		}
		c.Layer("sszvis-bars", 0, 0)
		mark.DrawBars(c, shapes)
		c.End()
	})
	return nil
}

func cellKey(s *Spec, r Row) string {
	return CellKey(r.String(s.X.Field), r.String(s.Y.Field))
}
