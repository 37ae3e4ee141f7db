// Package chart turns chart specs into laid out, rendered charts.
//
// Every chart type runs the same fixed sequence for a measurement: resolve
// the responsive props, compute the bounds, build the scales, then lay out
// axes, marks and tooltips. [Compute] returns the geometry; [Render] also
// writes it as SVG. Both are pure functions of the spec and the
// measurement, so a resize is handled by calling them again.
package chart

import (
	"fmt"
	"io"
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/statviz/pkg/bounds"
	"github.com/matzehuels/statviz/pkg/errors"
	"github.com/matzehuels/statviz/pkg/format"
	"github.com/matzehuels/statviz/pkg/measure"
	"github.com/matzehuels/statviz/pkg/render/axis"
	"github.com/matzehuels/statviz/pkg/render/canvas"
	"github.com/matzehuels/statviz/pkg/render/mark"
	"github.com/matzehuels/statviz/pkg/render/palette"
	"github.com/matzehuels/statviz/pkg/render/text"
	"github.com/matzehuels/statviz/pkg/render/tooltip"
	"github.com/matzehuels/statviz/pkg/responsive"
)

// DefaultMaxWidth caps the geometry of bar charts on wide containers.
const DefaultMaxWidth = 800

// Point is a 2D offset.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout is the complete geometry of a chart for one measurement. All mark,
// axis and tooltip coordinates are relative to Origin.
type Layout struct {
	Name       string              `json:"name,omitempty"`
	Type       string              `json:"type"`
	Breakpoint string              `json:"breakpoint"`
	Props      responsive.Resolved `json:"props"`
	Bounds     bounds.Bounds       `json:"bounds"`
	Origin     Point               `json:"origin"`

	// Geometry is the output of the chart type's layout calculator, if it
	// uses one.
	Geometry any `json:"geometry,omitempty"`

	Axes     []AxisLayout     `json:"axes,omitempty"`
	Bars     []mark.BarShape  `json:"bars,omitempty"`
	Lines    []mark.LineShape `json:"lines,omitempty"`
	Dots     []mark.DotShape  `json:"dots,omitempty"`
	Slices   []mark.PieSlice  `json:"slices,omitempty"`
	Map      *mark.MapLayout  `json:"map,omitempty"`
	Anchors  []tooltip.Anchor `json:"anchors,omitempty"`
	Tooltips []TooltipLayout  `json:"tooltips,omitempty"`

	layers []func(*canvas.Canvas)
}

// AxisLayout summarizes a laid out axis.
type AxisLayout struct {
	Name   string           `json:"name"`
	Orient axis.Orientation `json:"orient"`
	Origin Point            `json:"origin"`
	Ticks  []TickLayout     `json:"ticks"`
	Title  string           `json:"title,omitempty"`
}

// TickLayout is one tick of an AxisLayout.
type TickLayout struct {
	Label      string  `json:"label"`
	Pos        float64 `json:"pos"`
	Active     bool    `json:"active,omitempty"`
	Hidden     bool    `json:"hidden,omitempty"`
	LineHidden bool    `json:"line_hidden,omitempty"`
}

// VisibleLabels returns the labels of ticks that are not hidden.
func (a AxisLayout) VisibleLabels() []string {
	var out []string
	for _, t := range a.Ticks {
		if !t.Hidden && t.Label != "" {
			out = append(out, t.Label)
		}
	}
	return out
}

// TooltipLayout is a placed tooltip with its text.
type TooltipLayout struct {
	Box     tooltip.Box     `json:"box"`
	Content tooltip.Content `json:"content"`
}

// Axis returns the axis with the given name.
func (l *Layout) Axis(name string) (AxisLayout, bool) {
	for _, a := range l.Axes {
		if a.Name == name {
			return a, true
		}
	}
	return AxisLayout{}, false
}

// Draw writes the chart as an SVG document.
func (l *Layout) Draw(w io.Writer, opts ...canvas.Option) {
	all := append([]canvas.Option{canvas.WithSeed(l.Name), canvas.WithClass("sszvis-svg")}, opts...)
	c := canvas.New(w, l.Bounds.Width, l.Bounds.Height, all...)
	c.Layer("sszvis-chart", l.Origin.X, l.Origin.Y)
	for _, draw := range l.layers {
		draw(c)
	}
	c.Close()
}

type prop struct {
	name  string
	rules responsive.Rules
}

// rules builds literal responsive rules.
func rules(byBreakpoint map[string]any) responsive.Rules {
	r := make(responsive.Rules, len(byBreakpoint))
	for bp, v := range byBreakpoint {
		r[bp] = responsive.Literal(v)
	}
	return r
}

type chartType struct {
	props    []prop
	requires func(*Spec) []requirement
	build    func(*frame) error
}

var registry = map[string]chartType{}

func register(name string, t chartType) {
	if _, dup := registry[name]; dup {
		panic("chart: duplicate chart type " + name)
	}
	registry[name] = t
}

// Types returns the registered chart types, sorted.
func Types() []string {
	return slices.Sorted(maps.Keys(registry))
}

// Requires returns the spec fields a chart type needs, or nil for an
// unknown type.
func Requires(chartType string) []string {
	t, ok := registry[chartType]
	if !ok {
		return nil
	}
	var names []string
	for _, req := range t.requires(&Spec{}) {
		names = append(names, req.name)
	}
	return names
}

// Breakpoint returns the name of the breakpoint s matches under the
// measurement m without laying the chart out.
func Breakpoint(s *Spec, m measure.Measurer) (string, error) {
	if s == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "nil chart spec")
	}
	t, ok := registry[s.Type]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidChartType, "unknown chart type %q", s.Type)
	}
	r, err := s.resolver(t)
	if err != nil {
		return "", err
	}
	return r.Breakpoint(measure.Of(m)), nil
}

// Compute validates s and lays it out for the measurement m. A nil m is an
// unmeasured container and gets default dimensions.
func Compute(s *Spec, m measure.Measurer) (*Layout, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil chart spec")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	t := registry[s.Type]
	r, err := s.resolver(t)
	if err != nil {
		return nil, err
	}

	dims := measure.Of(m)
	locale, _ := format.LocaleByName(s.Locale)
	f := &frame{
		spec:     s,
		dims:     dims,
		props:    r.Resolve(dims),
		locale:   locale,
		selected: make(map[string]bool, len(s.Selection)),
		rows:     make(map[string]Row),
	}
	for _, k := range s.Selection {
		f.selected[k] = true
	}
	f.out = &Layout{
		Name:       s.Name,
		Type:       s.Type,
		Breakpoint: r.Breakpoint(dims),
		Props:      f.props,
	}
	if err := t.build(f); err != nil {
		return nil, fmt.Errorf("%s chart: %w", s.Type, err)
	}
	f.tooltips()
	return f.out, nil
}

// Render lays out s for m and writes it to w as SVG.
func Render(w io.Writer, s *Spec, m measure.Measurer, opts ...canvas.Option) (*Layout, error) {
	l, err := Compute(s, m)
	if err != nil {
		return nil, err
	}
	l.Draw(w, opts...)
	return l, nil
}

// frame carries one Compute call through a chart builder.
type frame struct {
	spec     *Spec
	dims     measure.Dimensions
	props    responsive.Resolved
	locale   format.Locale
	selected map[string]bool
	out      *Layout

	// rows maps mark keys to their datum for tooltip text.
	rows map[string]Row
	// tipBody lists the default tooltip body fields.
	tipBody     []string
	tipFit      tooltip.Orientation
	tipFallback func(key string) tooltip.Content
}

func (f *frame) float(name string, fallback float64) float64 {
	if v, ok := f.props.Float(name); ok && !math.IsNaN(v) {
		return v
	}
	return fallback
}

func (f *frame) string(name, fallback string) string {
	if v := f.props.String(name); v != "" {
		return v
	}
	return fallback
}

// bounds computes the chart bounds from cfg. Fields set in the spec take
// precedence, then the "top", "right", "bottom", "left" and "height"
// props, then cfg.
func (f *frame) bounds(cfg bounds.Config) bounds.Bounds {
	for name, field := range map[string]**float64{
		"top": &cfg.Top, "right": &cfg.Right, "bottom": &cfg.Bottom, "left": &cfg.Left, "height": &cfg.Height,
	} {
		if v, ok := f.props.Float(name); ok {
			*field = &v
		}
	}
	o := f.spec.Bounds
	cfg.Top = firstSet(o.Top, cfg.Top)
	cfg.Right = firstSet(o.Right, cfg.Right)
	cfg.Bottom = firstSet(o.Bottom, cfg.Bottom)
	cfg.Left = firstSet(o.Left, cfg.Left)
	cfg.Width = firstSet(o.Width, cfg.Width)
	cfg.Height = firstSet(o.Height, cfg.Height)
	cfg.FillHeight = cfg.FillHeight || o.FillHeight

	b := bounds.Compute(cfg, measure.Fixed(f.dims))
	f.out.Bounds = b
	f.out.Origin = Point{X: b.Padding.Left, Y: b.Padding.Top}
	return b
}

func firstSet(ps ...*float64) *float64 {
	for _, p := range ps {
		if p != nil {
			return p
		}
	}
	return nil
}

func (f *frame) maxWidth() float64 {
	if f.spec.MaxWidth > 0 {
		return f.spec.MaxWidth
	}
	return DefaultMaxWidth
}

func (f *frame) layer(draw func(*canvas.Canvas)) {
	f.out.layers = append(f.out.layers, draw)
}

// addAxis lays out an axis and schedules it for drawing at (x, y).
func addAxis[T any](f *frame, name string, x, y float64, cfg axis.Config[T]) error {
	a, err := axis.New(cfg)
	if err != nil {
		return fmt.Errorf("%s axis: %w", name, err)
	}
	r := a.Layout()

	al := AxisLayout{Name: name, Orient: r.Orient, Origin: Point{X: x, Y: y}}
	if r.Title != nil {
		al.Title = r.Title.Text
	}
	for _, t := range r.Ticks {
		al.Ticks = append(al.Ticks, TickLayout{
			Label:      t.Label,
			Pos:        t.Pos,
			Active:     t.Active,
			Hidden:     t.LabelHidden,
			LineHidden: t.LineHidden,
		})
	}
	f.out.Axes = append(f.out.Axes, al)
	f.layer(func(c *canvas.Canvas) {
		c.Layer("", x, y)
		axis.Draw(c, r)
		c.End()
	})
	return nil
}

// widest returns the width of the widest label.
func widest(labels []string) float64 {
	var w float64
	for _, l := range labels {
		w = math.Max(w, text.Width(l, text.DefaultFontSize))
	}
	return w
}

func numberFormat(name string) (format.Func, error) {
	switch name {
	case "", "number":
		return format.Number, nil
	case "percent":
		return format.Percent, nil
	case "age":
		return format.Age, nil
	case "none":
		return format.None, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown number format %q", name)
}

func ordinalPalette(name string) (palette.Ordinal, error) {
	p, ok := palette.ByName(name)
	if !ok {
		return palette.Ordinal{}, errors.New(errors.ErrCodeInvalidConfig, "unknown categorical palette %q", name)
	}
	return p, nil
}

func sequentialPalette(name string, lo, hi float64) (palette.Sequential, error) {
	switch name {
	case "", "seqblu":
		return palette.SeqBlu(lo, hi), nil
	case "seqred":
		return palette.SeqRed(lo, hi), nil
	}
	return palette.Sequential{}, errors.New(errors.ErrCodeInvalidConfig, "unknown sequential palette %q", name)
}

// extent returns the finite minimum and maximum of vs. Both are NaN when
// there is none.
func extent(vs []float64) (lo, hi float64) {
	lo, hi = math.NaN(), math.NaN()
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if math.IsNaN(lo) || v < lo {
			lo = v
		}
		if math.IsNaN(hi) || v > hi {
			hi = v
		}
	}
	return lo, hi
}

// keys returns the distinct values of field in row order.
func keys(rows []Row, field string) []string {
	seen := make(map[string]bool, len(rows))
	var out []string
	for _, r := range rows {
		k := r.String(field)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func (f *frame) isSelected(key string) bool { return f.selected[key] }

// tooltips places a tooltip at the anchor of every selected mark.
func (f *frame) tooltips() {
	anchors := f.out.Anchors
	if len(anchors) == 0 {
		return
	}
	f.layer(func(c *canvas.Canvas) { tooltip.DrawAnchors(c, anchors) })

	def := f.spec.Tooltip.Orientation
	if def == "" {
		def = f.tipFit
	}
	if def == "" {
		def = tooltip.Bottom
	}
	orient := tooltip.Fit(def, f.out.Bounds)
	for _, a := range anchors {
		if !f.isSelected(a.Key) || !a.Valid() {
			continue
		}
		content := f.content(a.Key)
		w, h := tooltipSize(content)
		box := tooltip.Place(a, orient(a), w, h, f.out.Bounds)
		f.out.Tooltips = append(f.out.Tooltips, TooltipLayout{Box: box, Content: content})
	}
	placed := f.out.Tooltips
	f.layer(func(c *canvas.Canvas) {
		for _, t := range placed {
			tooltip.Draw(c, t.Box, t.Content)
		}
	})
}

func (f *frame) content(key string) tooltip.Content {
	row, ok := f.rows[key]
	if !ok {
		if f.tipFallback != nil {
			return f.tipFallback(key)
		}
		return tooltip.Content{Header: key}
	}
	c := tooltip.Content{Header: key}
	if h := f.spec.Tooltip.Header; h != "" {
		c.Header = row.String(h)
	}
	body := f.spec.Tooltip.Body
	if len(body) == 0 {
		body = f.tipBody
	}
	for _, field := range body {
		c.Body = append(c.Body, cellText(row, field))
	}
	return c
}

// cellText formats a field for tooltips: numbers with the number format,
// text verbatim and missing values as a dash.
func cellText(r Row, field string) string {
	if v := r.Float(field); !math.IsNaN(v) {
		return format.Number(v)
	}
	if s := r.String(field); s != "" {
		return s
	}
	return format.Missing
}

func tooltipSize(c tooltip.Content) (w, h float64) {
	lines := append([]string{c.Header}, c.Body...)
	w = widest(lines) + 20
	h = 10 + 14*float64(len(c.Body))
	if c.Header != "" {
		h += 14
	}
	return math.Max(w, 40), h
}
