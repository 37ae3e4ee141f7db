package mark

import (
	"math"

	"github.com/matzehuels/statviz/pkg/fn"
	"github.com/matzehuels/statviz/pkg/render/canvas"
	"github.com/matzehuels/statviz/pkg/render/tooltip"
)

// DotClass is the class of every scatterplot circle.
const DotClass = "sszvis-circle"

// Dot draws one circle per datum.
type Dot[D any] struct {
	X, Y   fn.Value[D, float64]
	Radius fn.Value[D, float64]
	Fill   fn.Value[D, string]
	Stroke fn.Value[D, string]
	Key    fn.Value[D, string]
}

// DotShape is a laid out circle.
type DotShape struct {
	Key    string         `json:"key,omitempty"`
	CX     float64        `json:"cx"`
	CY     float64        `json:"cy"`
	R      float64        `json:"r"`
	Fill   string         `json:"fill,omitempty"`
	Stroke string         `json:"stroke,omitempty"`
	Anchor tooltip.Anchor `json:"anchor"`
}

// Layout resolves the dot accessors. Data without a position are skipped.
func (m Dot[D]) Layout(data []D) []DotShape {
	out := make([]DotShape, 0, len(data))
	for _, d := range data {
		x, y := m.X.Of(d), m.Y.Of(d)
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		s := DotShape{
			Key:    m.Key.Of(d),
			CX:     x,
			CY:     y,
			R:      math.Max(0, finite(m.Radius.Of(d), 0)),
			Fill:   m.Fill.Of(d),
			Stroke: m.Stroke.Of(d),
		}
		s.Anchor = tooltip.Anchor{X: x, Y: y, Key: s.Key}
		out = append(out, s)
	}
	return out
}

// DrawDots writes dots to c.
func DrawDots(c *canvas.Canvas, dots []DotShape) {
	for _, s := range dots {
		attrs := []string{canvas.Attr("class", DotClass)}
		if s.Fill != "" {
			attrs = append(attrs, canvas.Attr("fill", s.Fill))
		}
		if s.Stroke != "" {
			attrs = append(attrs, canvas.Attr("stroke", s.Stroke))
		}
		if s.Key != "" {
			attrs = append(attrs, canvas.Attr("data-key", s.Key))
		}
		c.Circle(s.CX, s.CY, s.R, attrs...)
	}
}

func (s DotShape) anchor() tooltip.Anchor { return s.Anchor }
