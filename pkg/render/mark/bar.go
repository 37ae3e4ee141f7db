package mark

import (
	"math"

	"github.com/matzehuels/statviz/pkg/fn"
	"github.com/matzehuels/statviz/pkg/render/canvas"
	"github.com/matzehuels/statviz/pkg/render/tooltip"
)

// BarClass is the class of every bar rectangle.
const BarClass = "sszvis-bar"

// Bar draws one rectangle per datum.
type Bar[D any] struct {
	X, Y          fn.Value[D, float64]
	Width, Height fn.Value[D, float64]
	Fill          fn.Value[D, string]
	Stroke        fn.Value[D, string]
	Key           fn.Value[D, string]

	// CenterTooltip anchors tooltips at the bar center instead of its top.
	CenterTooltip bool
}

// BarShape is a laid out bar.
type BarShape struct {
	Key    string         `json:"key,omitempty"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Fill   string         `json:"fill,omitempty"`
	Stroke string         `json:"stroke,omitempty"`
	Anchor tooltip.Anchor `json:"anchor"`
}

// Layout resolves the bar accessors. Invalid positions become 0 and
// invalid or negative extents become empty bars, so every datum keeps its
// bar.
func (b Bar[D]) Layout(data []D) []BarShape {
	out := make([]BarShape, 0, len(data))
	for _, d := range data {
		s := BarShape{
			Key:    b.Key.Of(d),
			X:      finite(b.X.Of(d), 0),
			Y:      finite(b.Y.Of(d), 0),
			Width:  math.Max(0, finite(b.Width.Of(d), 0)),
			Height: math.Max(0, finite(b.Height.Of(d), 0)),
			Fill:   b.Fill.Of(d),
			Stroke: b.Stroke.Of(d),
		}
		s.Anchor = tooltip.Anchor{X: s.X + s.Width/2, Y: s.Y, Key: s.Key}
		if b.CenterTooltip {
			s.Anchor.Y = s.Y + s.Height/2
		}
		out = append(out, s)
	}
	return out
}

// DrawBars writes bars to c.
func DrawBars(c *canvas.Canvas, bars []BarShape) {
	for _, s := range bars {
		attrs := []string{canvas.Attr("class", BarClass)}
		if s.Fill != "" {
			attrs = append(attrs, canvas.Attr("fill", s.Fill))
		}
		if s.Stroke != "" {
			attrs = append(attrs, canvas.Attr("stroke", s.Stroke))
		}
		if s.Key != "" {
			attrs = append(attrs, canvas.Attr("data-key", s.Key))
		}
		c.Rect(s.X, s.Y, s.Width, s.Height, attrs...)
	}
}

// Anchors returns the tooltip anchors of shapes.
func Anchors[S interface{ anchor() tooltip.Anchor }](shapes []S) []tooltip.Anchor {
	out := make([]tooltip.Anchor, len(shapes))
	for i, s := range shapes {
		out[i] = s.anchor()
	}
	return out
}

func (s BarShape) anchor() tooltip.Anchor { return s.Anchor }
