package chart

import (
	"math"

	"github.com/matzehuels/statviz/pkg/bounds"
	"github.com/matzehuels/statviz/pkg/errors"
	"github.com/matzehuels/statviz/pkg/fn"
	"github.com/matzehuels/statviz/pkg/format"
	"github.com/matzehuels/statviz/pkg/measure"
	"github.com/matzehuels/statviz/pkg/render/canvas"
	"github.com/matzehuels/statviz/pkg/render/mark"
	"github.com/matzehuels/statviz/pkg/render/palette"
	"github.com/matzehuels/statviz/pkg/render/tooltip"
)

func init() {
	register("map", chartType{
		props: []prop{
			{"top", rules(map[string]any{"_": 30.0})},
			{"bottom", rules(map[string]any{"_": 90.0})},
			{"strokeWidth", rules(map[string]any{"_": mark.DefaultStrokeWidth})},
		},
		requires: func(s *Spec) []requirement {
			src := s.Geo.Path
			if s.features != nil {
				src = "loaded"
			}
			return []requirement{{"value.field", s.Value.Field}, {"geo.path", src}}
		},
		build: buildMap,
	})
}

// buildMap draws a choropleth: every feature is filled by the value of the
// row whose data key matches it. The map is square and fitted into the
// inner box with a Mercator projection.
func buildMap(f *frame) error {
	s := f.spec
	if s.features == nil {
		return errors.New(errors.ErrCodeLoad, "map features %q are not loaded", s.Geo.Path)
	}
	values := make([]float64, len(s.Data))
	for i, r := range s.Data {
		values[i] = r.Float(s.Value.Field)
	}
	lo, hi := extent(values)
	colors, err := sequentialPalette(s.Color.Palette, lo, hi)
	if err != nil {
		return err
	}

	top, bottom := f.float("top", 30), f.float("bottom", 90)
	avail := bounds.Compute(bounds.Config{Width: s.Bounds.Width}, measure.Fixed(f.dims))
	side := math.Max(0, avail.InnerWidth)
	b := f.bounds(bounds.Config{Height: fn.Ptr(top + side + bottom)})

	dataKey := s.Geo.DataKey
	if dataKey == "" {
		dataKey = mark.DefaultDataKey
	}
	m := mark.GeoJSON[Row]{
		Features:   s.features,
		Lakes:      s.lakes,
		Width:      b.InnerWidth,
		Height:     b.InnerHeight,
		DataKey:    func(r Row) string { return r.String(dataKey) },
		FeatureKey: s.Geo.FeatureKey,
		Defined:    func(r Row) bool { return !math.IsNaN(r.Float(s.Value.Field)) },
		Fill:       fn.Accessor(func(r Row) string { return colors.Map(r.Float(s.Value.Field)) }),
		Stroke: fn.Accessor(func(r Row) string {
			if f.isSelected(r.String(dataKey)) {
				return palette.Darker(colors.Map(r.Float(s.Value.Field)), 2)
			}
			return "#FFFFFF"
		}),
		StrokeWidth: f.float("strokeWidth", mark.DefaultStrokeWidth),
	}
	l := m.Layout(s.Data)
	f.out.Map = &l
	f.out.Anchors = mark.Anchors(l.Areas)
	for _, r := range s.Data {
		f.rows[r.String(dataKey)] = r
	}
	f.tipBody = []string{s.Value.Field}
	f.tipFallback = func(key string) tooltip.Content {
		return tooltip.Content{Header: key, Body: []string{format.Missing}}
	}

	f.layer(func(c *canvas.Canvas) {
		c.Layer("sszvis-map", 0, 0)
		mark.DrawMap(c, l)
		c.End()
	})
	return nil
}
