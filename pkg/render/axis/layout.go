package axis

import (
	"math"

	"github.com/matzehuels/statviz/pkg/render/canvas"
	"github.com/matzehuels/statviz/pkg/render/text"
)

// Segment is a tick line relative to the tick origin.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Tick is one laid out tick. Coordinates of the line and label are relative
// to the tick origin, which sits at Pos along the axis.
type Tick[T any] struct {
	Value T
	Pos   float64
	Label string
	// Lines holds the label split for wrapping; a single element when the
	// label is not wrapped and none when it is empty.
	Lines []string

	Line       Segment
	LineHidden bool

	TextX, TextY float64
	Dx, Dy       string
	Anchor       string
	Transform    string
	Active       bool
	LabelHidden  bool
}

// Title is the laid out axis title.
type Title struct {
	Text     string
	X, Y     float64
	Anchor   string
	Vertical bool
}

// Result is the complete geometry of one axis.
type Result[T any] struct {
	Orient    Orientation
	Class     string
	Ticks     []Tick[T]
	Domain    string
	Title     *Title
	TickColor string
	FontSize  float64
}

// Layout computes the axis geometry.
func (a *Axis[T]) Layout() Result[T] {
	cfg := a.cfg
	r := Result[T]{
		Orient:    cfg.Orient,
		Class:     classes(cfg),
		TickColor: cfg.TickColor,
		FontSize:  cfg.FontSize,
	}
	if r.FontSize <= 0 {
		r.FontSize = text.DefaultFontSize
	}

	a.baseTicks(&r)
	a.suppressEdges(&r)
	a.highlight(&r)
	a.overrideTickLength(&r)
	a.alignOuterLabels(&r)
	a.wrap(&r)
	a.slant(&r)
	a.title(&r)
	return r
}

func classes[T any](cfg Config[T]) string {
	names := []string{"sszvis-axis"}
	switch {
	case cfg.Vertical:
		names = append(names, "sszvis-axis--vertical")
	case cfg.Orient == Top:
		names = append(names, "sszvis-axis--top")
	case cfg.Orient == Bottom:
		names = append(names, "sszvis-axis--bottom")
	}
	if cfg.Halo {
		names = append(names, "sszvis-axis--halo")
	}
	return canvas.Classes(names...)
}

// tickValues selects the values to place ticks at.
func (a *Axis[T]) tickValues() []T {
	cfg := a.cfg
	if cfg.TickValues != nil {
		return cfg.TickValues
	}
	if cfg.ordinalTicks {
		if o, ok := cfg.Scale.(ordinal[T]); ok {
			domain := o.Domain()
			if cfg.Ticks > 0 {
				return OrdinalTicks(domain, cfg.Ticks)
			}
			return domain
		}
	}
	return cfg.Scale.Ticks(cfg.Ticks)
}

func (a *Axis[T]) baseTicks(r *Result[T]) {
	cfg := a.cfg
	var offset float64
	if b, ok := cfg.Scale.(banded); ok {
		offset = b.Bandwidth() / 2
	}
	inner := cfg.TickSize
	spacing := math.Max(inner, 0) + cfg.TickPadding

	for _, v := range a.tickValues() {
		pos := cfg.Scale.Map(v)
		if math.IsNaN(pos) {
			continue
		}
		t := Tick[T]{Value: v, Pos: pos + offset, Label: cfg.TickFormat(v)}
		if cfg.hideZero && !cfg.ShowZeroY && isZero(v) {
			t.Label = ""
		}
		switch cfg.Orient {
		case Bottom:
			t.Line = Segment{Y2: inner}
			t.TextY, t.Dy, t.Anchor = spacing, ".71em", "middle"
		case Top:
			t.Line = Segment{Y2: -inner}
			t.TextY, t.Dy, t.Anchor = -spacing, "0em", "middle"
		case Left:
			t.Line = Segment{X2: -inner}
			t.TextX, t.Dy, t.Anchor = -spacing, ".32em", "end"
		case Right:
			t.Line = Segment{X2: inner}
			t.TextX, t.Dy, t.Anchor = spacing, ".32em", "start"
		}
		r.Ticks = append(r.Ticks, t)
	}

	lo, hi := cfg.Scale.RangeExtent()
	outer := cfg.OuterTickSize
	n := canvas.Num
	switch cfg.Orient {
	case Bottom:
		r.Domain = "M" + n(lo) + "," + n(outer) + "V0H" + n(hi) + "V" + n(outer)
	case Top:
		r.Domain = "M" + n(lo) + "," + n(-outer) + "V0H" + n(hi) + "V" + n(-outer)
	case Left:
		r.Domain = "M" + n(-outer) + "," + n(lo) + "H0V" + n(hi) + "H" + n(-outer)
	case Right:
		r.Domain = "M" + n(outer) + "," + n(lo) + "H0V" + n(hi) + "H" + n(outer)
	}
}

// suppressEdges hides tick lines that would sit on the domain line ends.
// The check uses the raw scale position, without the band center offset.
func (a *Axis[T]) suppressEdges(r *Result[T]) {
	lo, hi := a.cfg.Scale.RangeExtent()
	for i := range r.Ticks {
		p := a.cfg.Scale.Map(r.Ticks[i].Value)
		r.Ticks[i].LineHidden = math.Abs(p-lo) < TickProximityThreshold || math.Abs(p-hi) < TickProximityThreshold
	}
}

func (a *Axis[T]) isHighlighted(v T) bool {
	if a.cfg.HighlightFunc != nil && a.cfg.HighlightFunc(v) {
		return true
	}
	for _, h := range a.cfg.Highlight {
		if equal(h, v) {
			return true
		}
	}
	return false
}

func (a *Axis[T]) highlight(r *Result[T]) {
	cfg := a.cfg
	if len(cfg.Highlight) == 0 && cfg.HighlightFunc == nil {
		return
	}
	var active []float64
	for i := range r.Ticks {
		if a.isHighlighted(r.Ticks[i].Value) {
			r.Ticks[i].Active = true
			active = append(active, r.Ticks[i].Pos)
		}
	}
	if cfg.HighlightBoundary <= 0 {
		return
	}
	for i := range r.Ticks {
		t := &r.Ticks[i]
		if t.Active {
			continue
		}
		for _, p := range active {
			if math.Abs(t.Pos-p) < cfg.HighlightBoundary {
				t.LabelHidden = true
				break
			}
		}
	}
}

func (a *Axis[T]) overrideTickLength(r *Result[T]) {
	if a.cfg.TickLength == nil {
		return
	}
	l := *a.cfg.TickLength
	dlo, dhi := a.cfg.Scale.DomainExtent()
	for i := range r.Ticks {
		t := &r.Ticks[i]
		if equal(t.Value, dlo) || equal(t.Value, dhi) {
			continue
		}
		switch a.cfg.Orient {
		case Top:
			t.Line.Y1 = l
		case Bottom:
			t.Line.Y1 = -l
		case Left:
			t.Line.X1 = -l
		case Right:
			t.Line.X1 = l
		}
		if !a.cfg.Orient.Horizontal() {
			t.Dy = "-0.4em"
		}
	}
}

func (a *Axis[T]) alignOuterLabels(r *Result[T]) {
	if !a.cfg.AlignOuterLabels {
		return
	}
	dlo, dhi := a.cfg.Scale.DomainExtent()
	for i := range r.Ticks {
		t := &r.Ticks[i]
		switch {
		case equal(t.Value, dlo):
			t.Anchor = "start"
		case equal(t.Value, dhi):
			t.Anchor = "end"
		default:
			t.Anchor = "middle"
		}
	}
}

func (a *Axis[T]) wrap(r *Result[T]) {
	for i := range r.Ticks {
		t := &r.Ticks[i]
		switch {
		case t.Label == "":
			t.Lines = nil
		case a.cfg.TextWrap > 0:
			t.Lines = text.Wrap(t.Label, a.cfg.TextWrap, r.FontSize)
		default:
			t.Lines = []string{t.Label}
		}
	}
}

type slantStyle struct {
	anchor, dx, dy, transform string
}

// slants defines label rotation for horizontal axes. Vertical axes are
// not slanted.
var slants = map[Orientation]map[Slant]slantStyle{
	Top: {
		SlantVertical: {"start", "0em", "0.35em", "rotate(-90)"},
		SlantDiagonal: {"start", "0.1em", "0.1em", "rotate(-45)"},
	},
	Bottom: {
		SlantVertical: {"end", "-1em", "-0.75em", "rotate(-90)"},
		SlantDiagonal: {"end", "-0.8em", "0em", "rotate(-45)"},
	},
}

func (a *Axis[T]) slant(r *Result[T]) {
	s, ok := slants[a.cfg.Orient][a.cfg.Slant]
	if !ok {
		return
	}
	for i := range r.Ticks {
		t := &r.Ticks[i]
		t.Anchor, t.Dx, t.Dy, t.Transform = s.anchor, s.dx, s.dy, s.transform
	}
}

func (a *Axis[T]) title(r *Result[T]) {
	cfg := a.cfg
	if cfg.Title == "" {
		return
	}
	lo, hi := cfg.Scale.RangeExtent()

	var x, y float64
	anchor := "end"
	switch cfg.Orient {
	case Left:
		anchor = "end"
	case Right:
		anchor = "start"
	case Top:
		x = hi
	case Bottom:
		x, y = hi, 35
	}
	if cfg.TitleCenter {
		if cfg.Orient.Horizontal() {
			x = (lo + hi) / 2
		} else {
			y = (lo + hi) / 2
		}
	}
	if cfg.TitleLeft != nil {
		x = *cfg.TitleLeft
	}
	if cfg.TitleTop != nil {
		y = *cfg.TitleTop
	}
	if cfg.TitleAlign != "" {
		anchor = cfg.TitleAlign
	}
	r.Title = &Title{
		Text:     cfg.Title,
		X:        x + cfg.DxTitle,
		Y:        y + cfg.DyTitle,
		Anchor:   anchor,
		Vertical: cfg.TitleVertical,
	}
}

func isZero[T any](v T) bool {
	switch n := any(v).(type) {
	case float64:
		return n == 0
	case int:
		return n == 0
	}
	return false
}
