package mark

import (
	"math"

	"github.com/matzehuels/statviz/pkg/fn"
	"github.com/matzehuels/statviz/pkg/render/canvas"
	"github.com/matzehuels/statviz/pkg/render/tooltip"
)

// PieClass is the class of every pie slice.
const PieClass = "sszvis-path"

const fullCircle = 2 * math.Pi

// Pie stacks slices clockwise from twelve o'clock. Angle is the angular
// size of each slice in radians, usually a linear scale from value to
// [0, 2π]. The pie is centered at (Radius, Radius).
type Pie[D any] struct {
	Radius      float64
	InnerRadius float64
	Angle       fn.Value[D, float64]
	Fill        fn.Value[D, string]
	Stroke      fn.Value[D, string]
	Key         fn.Value[D, string]
}

// PieSlice is a laid out slice.
type PieSlice struct {
	Key        string         `json:"key,omitempty"`
	StartAngle float64        `json:"startAngle"`
	EndAngle   float64        `json:"endAngle"`
	D          string         `json:"d"`
	Fill       string         `json:"fill,omitempty"`
	Stroke     string         `json:"stroke,omitempty"`
	Anchor     tooltip.Anchor `json:"anchor"`
}

// Layout computes the slices. Invalid or negative angles give empty slices.
func (p Pie[D]) Layout(data []D) []PieSlice {
	out := make([]PieSlice, 0, len(data))
	var a0 float64
	for _, d := range data {
		a1 := a0 + math.Max(0, finite(p.Angle.Of(d), 0))
		s := PieSlice{
			Key:        p.Key.Of(d),
			StartAngle: a0,
			EndAngle:   a1,
			D:          Arc(p.InnerRadius, p.Radius, a0, a1),
			Fill:       p.Fill.Of(d),
			Stroke:     p.Stroke.Of(d),
		}
		if s.Stroke == "" {
			s.Stroke = "#FFFFFF"
		}

		mid := a0 + (a1-a0)/2 - math.Pi/2
		r := p.Radius * 2 / 3
		s.Anchor = tooltip.Anchor{
			X:   p.Radius + math.Cos(mid)*r,
			Y:   p.Radius + math.Sin(mid)*r,
			Key: s.Key,
		}
		out = append(out, s)
		a0 = a1
	}
	return out
}

// Arc returns the path of an annular sector centered at the origin. Angles
// are in radians, clockwise from twelve o'clock. An inner radius of 0 gives
// a pie slice; an empty sector gives an empty path.
func Arc(inner, outer, a0, a1 float64) string {
	da := a1 - a0
	if outer <= 0 || da <= 0 {
		return ""
	}
	r := coord(outer)
	if da >= fullCircle-1e-9 {
		d := "M0," + coord(-outer) + "A" + r + "," + r + " 0 1,1 0," + r + "A" + r + "," + r + " 0 1,1 0," + coord(-outer) + "Z"
		if inner > 0 {
			ri := coord(inner)
			d += "M0," + coord(-inner) + "A" + ri + "," + ri + " 0 1,0 0," + ri + "A" + ri + "," + ri + " 0 1,0 0," + coord(-inner) + "Z"
		}
		return d
	}

	large := "0"
	if da > math.Pi {
		large = "1"
	}
	d := "M" + polar(outer, a0) + "A" + r + "," + r + " 0 " + large + ",1 " + polar(outer, a1)
	if inner > 0 {
		ri := coord(inner)
		return d + "L" + polar(inner, a1) + "A" + ri + "," + ri + " 0 " + large + ",0 " + polar(inner, a0) + "Z"
	}
	return d + "L0,0Z"
}

func polar(r, a float64) string {
	return point(r*math.Sin(a), -r*math.Cos(a))
}

// DrawPie writes slices to c, centered at (radius, radius).
func DrawPie(c *canvas.Canvas, radius float64, slices []PieSlice) {
	c.Layer("", radius, radius)
	for _, s := range slices {
		if s.D == "" {
			continue
		}
		attrs := []string{canvas.Attr("class", PieClass)}
		if s.Fill != "" {
			attrs = append(attrs, canvas.Attr("fill", s.Fill))
		}
		attrs = append(attrs, canvas.Attr("stroke", s.Stroke))
		if s.Key != "" {
			attrs = append(attrs, canvas.Attr("data-key", s.Key))
		}
		c.Path(s.D, attrs...)
	}
	c.End()
}

func (s PieSlice) anchor() tooltip.Anchor { return s.Anchor }
