package mark

import (
	"math"
	"strings"

	"github.com/matzehuels/statviz/pkg/fn"
	"github.com/matzehuels/statviz/pkg/render/canvas"
)

// LineClass is the class of every line path.
const LineClass = "sszvis-line"

// Line draws one path per series. Stroke and StrokeWidth are resolved per
// series, X and Y per point.
type Line[D any] struct {
	X, Y        fn.Value[D, float64]
	Stroke      fn.Value[[]D, string]
	StrokeWidth fn.Value[[]D, float64]
	Key         fn.Value[[]D, string]
}

// LineShape is a laid out series.
type LineShape struct {
	Key         string  `json:"key,omitempty"`
	D           string  `json:"d"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// Layout builds the path of every series. Points whose x or y is NaN are
// left out and split the line.
func (l Line[D]) Layout(series [][]D) []LineShape {
	out := make([]LineShape, 0, len(series))
	for _, s := range series {
		shape := LineShape{
			Key:         l.Key.Of(s),
			D:           l.path(s),
			Stroke:      l.Stroke.Of(s),
			StrokeWidth: l.StrokeWidth.Of(s),
		}
		if shape.Stroke == "" {
			shape.Stroke = "#000000"
		}
		if shape.StrokeWidth <= 0 {
			shape.StrokeWidth = 1
		}
		out = append(out, shape)
	}
	return out
}

func (l Line[D]) path(points []D) string {
	var b strings.Builder
	open := false
	for _, p := range points {
		x, y := l.X.Of(p), l.Y.Of(p)
		if math.IsNaN(x) || math.IsNaN(y) {
			open = false
			continue
		}
		if open {
			b.WriteString("L")
		} else {
			b.WriteString("M")
			open = true
		}
		b.WriteString(point(x, y))
	}
	return b.String()
}

// DrawLines writes lines to c.
func DrawLines(c *canvas.Canvas, lines []LineShape) {
	for _, s := range lines {
		if s.D == "" {
			continue
		}
		attrs := []string{
			canvas.Attr("class", LineClass),
			canvas.Attr("fill", "none"),
			canvas.Attr("stroke", s.Stroke),
			canvas.Attr("stroke-width", canvas.Num(s.StrokeWidth)),
		}
		if s.Key != "" {
			attrs = append(attrs, canvas.Attr("data-key", s.Key))
		}
		c.Path(s.D, attrs...)
	}
}
