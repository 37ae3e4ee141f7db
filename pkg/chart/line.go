package chart

import (
	"math"
	"slices"
	"time"

	"github.com/matzehuels/statviz/pkg/bounds"
	"github.com/matzehuels/statviz/pkg/errors"
	"github.com/matzehuels/statviz/pkg/fn"
	"github.com/matzehuels/statviz/pkg/render/axis"
	"github.com/matzehuels/statviz/pkg/render/canvas"
	"github.com/matzehuels/statviz/pkg/render/mark"
	"github.com/matzehuels/statviz/pkg/render/palette"
	"github.com/matzehuels/statviz/pkg/render/tooltip"
	"github.com/matzehuels/statviz/pkg/scale"
)

func init() {
	register("line", chartType{
		props: []prop{
			{"top", rules(map[string]any{"_": 20.0})},
			{"bottom", rules(map[string]any{"_": 60.0})},
			{"xTicks", rules(map[string]any{"palm": 3.0, "_": 5.0})},
			{"strokeWidth", rules(map[string]any{"_": 1.5})},
		},
		requires: func(s *Spec) []requirement {
			req := []requirement{{"x.field", s.X.Field}, {"y.field", s.Y.Field}}
			if s.Y2 != nil {
				req = append(req, requirement{"y2.field", s.Y2.Field})
			}
			return req
		},
		build: buildLine,
	})
}

// valueScale is a vertical [min(0, lo), hi] scale for field.
type valueScale struct {
	field  string
	scale  scale.Linear
	labels []string
}

func newValueScale(rows []Row, a Axis, ticks int) (valueScale, error) {
	fmtr, err := numberFormat(a.Format)
	if err != nil {
		return valueScale{}, err
	}
	vs := make([]float64, len(rows))
	for i, r := range rows {
		vs[i] = r.Float(a.Field)
	}
	lo, hi := extent(vs)
	lo, hi = math.Min(0, finite(lo)), math.Max(0, finite(hi))
	v := valueScale{field: a.Field, scale: scale.NewLinear(lo, hi, 1, 0)}
	for _, t := range v.scale.Ticks(ticks) {
		v.labels = append(v.labels, fmtr(t))
	}
	return v, nil
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// buildLine draws one line per series over a time or numeric x axis. The
// color field splits rows into series. With a second value axis, the y2
// field is drawn as its own series on an axis at the right edge.
func buildLine(f *frame) error {
	s := f.spec
	yTicks := fn.Either(nonZero(s.Y.Ticks), 7)
	y1, err := newValueScale(s.Data, s.Y, yTicks)
	if err != nil {
		return err
	}
	var y2 *valueScale
	right := float64(bounds.DefaultRight)
	if s.Y2 != nil {
		v, err := newValueScale(s.Data, *s.Y2, fn.Either(nonZero(s.Y2.Ticks), yTicks))
		if err != nil {
			return err
		}
		y2 = &v
		right = math.Ceil(widest(v.labels)) + yAxisGap
	}

	b := f.bounds(bounds.Config{
		Left:  fn.Ptr(math.Ceil(widest(y1.labels)) + yAxisGap),
		Right: fn.Ptr(right),
	})
	y1.scale = y1.scale.WithRange(b.InnerHeight, 0)
	if y2 != nil {
		y2.scale = y2.scale.WithRange(b.InnerHeight, 0)
	}

	xPos, err := lineXAxis(f, b)
	if err != nil {
		return err
	}

	// Series in order of first appearance.
	names := keys(s.Data, s.Color.Field)
	groups := fn.GroupBy(s.Data, func(r Row) string { return r.String(s.Color.Field) })
	series := make([][]Row, 0, len(names))
	for _, n := range names {
		series = append(series, groups[n])
	}

	width := f.float("strokeWidth", 1.5)
	draw := func(v valueScale, p palette.Ordinal) []mark.LineShape {
		colors := p.WithDomain(names)
		l := mark.Line[Row]{
			X: fn.Accessor(xPos),
			Y: fn.Accessor(func(r Row) float64 { return v.scale.Map(r.Float(v.field)) }),
			Stroke: fn.Accessor(func(rs []Row) string {
				if len(rs) == 0 {
					return ""
				}
				return colors.Map(rs[0].String(s.Color.Field))
			}),
			StrokeWidth: fn.Const[[]Row](width),
			Key: fn.Accessor(func(rs []Row) string {
				if len(rs) == 0 {
					return v.field
				}
				return v.field + ":" + rs[0].String(s.Color.Field)
			}),
		}
		return l.Layout(series)
	}

	var p1 palette.Ordinal
	if y2 != nil {
		p1 = palette.Qual6a()
	} else if p1, err = ordinalPalette(s.Color.Palette); err != nil {
		return err
	}
	lines := draw(y1, p1)
	if y2 != nil {
		lines = append(lines, draw(*y2, palette.Qual6b())...)
	}
	f.out.Lines = lines

	// Tooltip anchors sit on the highest point at each selected x.
	for _, r := range s.Data {
		key := r.String(s.X.Field)
		if !f.isSelected(key) {
			continue
		}
		y := y1.scale.Map(r.Float(y1.field))
		if y2 != nil {
			y = math.Min(finite(y), y2.scale.Map(r.Float(y2.field)))
		}
		a := tooltip.Anchor{X: xPos(r), Y: y, Key: key}
		if i := slices.IndexFunc(f.out.Anchors, func(o tooltip.Anchor) bool { return o.Key == key }); i >= 0 {
			if a.Y < f.out.Anchors[i].Y {
				f.out.Anchors[i] = a
			}
			continue
		}
		f.out.Anchors = append(f.out.Anchors, a)
		f.rows[key] = r
	}
	f.tipBody = []string{s.Y.Field}
	if y2 != nil {
		f.tipBody = append(f.tipBody, y2.field)
	}

	yCfg := axis.Y(y1.scale)
	yCfg.Orient = axis.Left
	yCfg.TickPadding = yAxisGap
	yCfg.Ticks = yTicks
	yCfg.TickFormat, _ = numberFormat(s.Y.Format)
	yCfg.Title = s.Y.Title
	yCfg.DyTitle = -20
	if err := addAxis(f, "y", 0, 0, yCfg); err != nil {
		return err
	}
	if y2 != nil {
		cfg := axis.Y(y2.scale)
		cfg.TickPadding = yAxisGap
		cfg.Ticks = fn.Either(nonZero(s.Y2.Ticks), yTicks)
		cfg.TickFormat, _ = numberFormat(s.Y2.Format)
		cfg.Title = s.Y2.Title
		cfg.DyTitle = -20
		if err := addAxis(f, "y2", b.InnerWidth, 0, cfg); err != nil {
			return err
		}
	}

	f.layer(func(c *canvas.Canvas) {
		c.Layer("sszvis-lines", 0, 0)
		mark.DrawLines(c, lines)
		c.End()
	})
	return nil
}

// lineXAxis builds the x scale and axis and returns the x accessor.
// Selected values are added to the generated ticks and highlighted.
func lineXAxis(f *frame, b bounds.Bounds) (func(Row) float64, error) {
	s := f.spec
	ticks := fn.Either(nonZero(s.X.Ticks), int(f.float("xTicks", 5)))

	if s.X.Time {
		var lo, hi time.Time
		var selected []time.Time
		for _, r := range s.Data {
			t, ok := r.Time(s.X.Field)
			if !ok {
				continue
			}
			if lo.IsZero() || t.Before(lo) {
				lo = t
			}
			if hi.IsZero() || t.After(hi) {
				hi = t
			}
			if f.isSelected(r.String(s.X.Field)) && !slices.ContainsFunc(selected, t.Equal) {
				selected = append(selected, t)
			}
		}
		xs := scale.NewTime(lo, hi, 0, b.InnerWidth)
		cfg := axis.XTime(xs)
		tv := append(xs.Ticks(ticks), selected...)
		slices.SortFunc(tv, func(a, b time.Time) int { return a.Compare(b) })
		cfg.TickValues = slices.CompactFunc(tv, time.Time.Equal)
		cfg.Highlight = selected
		cfg.TickFormat = f.locale.AxisTime
		if s.X.Format != "" {
			tf, err := f.locale.Layout(s.X.Format)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "x.format")
			}
			cfg.TickFormat = tf
		}
		cfg.Title = s.X.Title
		cfg.TitleCenter = true
		cfg.TitleAlign = "middle"
		if err := addAxis(f, "x", 0, b.InnerHeight, cfg); err != nil {
			return nil, err
		}
		return func(r Row) float64 {
			t, ok := r.Time(s.X.Field)
			if !ok {
				return math.NaN()
			}
			return xs.Map(t)
		}, nil
	}

	fmtr, err := numberFormat(s.X.Format)
	if err != nil {
		return nil, err
	}
	vs := make([]float64, len(s.Data))
	var selected []float64
	for i, r := range s.Data {
		vs[i] = r.Float(s.X.Field)
		if f.isSelected(r.String(s.X.Field)) && !math.IsNaN(vs[i]) {
			selected = append(selected, vs[i])
		}
	}
	lo, hi := extent(vs)
	xs := scale.NewLinear(finite(lo), finite(hi), 0, b.InnerWidth)
	cfg := axis.X(xs)
	tv := append(xs.Ticks(ticks), selected...)
	slices.Sort(tv)
	cfg.TickValues = slices.Compact(tv)
	cfg.Highlight = selected
	cfg.TickFormat = fmtr
	cfg.AlignOuterLabels = true
	cfg.Title = s.X.Title
	cfg.TitleCenter = true
	cfg.TitleAlign = "middle"
	if err := addAxis(f, "x", 0, b.InnerHeight, cfg); err != nil {
		return nil, err
	}
	return func(r Row) float64 { return xs.Map(r.Float(s.X.Field)) }, nil
}
