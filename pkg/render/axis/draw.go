package axis

import (
	"strings"

	"github.com/matzehuels/statviz/pkg/render/canvas"
)

// DefaultTickColor is the stroke of tick lines and the domain path.
const DefaultTickColor = "#A4A4A4"

// GroupOffset is the downward shift applied to every axis group.
const GroupOffset = 2

// Draw writes r as an SVG group.
func Draw[T any](c *canvas.Canvas, r Result[T]) {
	attr := canvas.Attr
	stroke := r.TickColor
	if stroke == "" {
		stroke = DefaultTickColor
	}

	c.Layer(r.Class, 0, GroupOffset, attr("font-size", canvas.Num(r.FontSize)))
	for _, t := range r.Ticks {
		tx := canvas.Translate(t.Pos, 0)
		if !r.Orient.Horizontal() {
			tx = canvas.Translate(0, t.Pos)
		}
		c.Group(attr("class", "tick"), attr("transform", tx))

		lineAttrs := []string{attr("stroke", stroke)}
		if t.LineHidden {
			lineAttrs = append(lineAttrs, attr("class", "hidden"), attr("visibility", "hidden"))
		}
		c.Line(t.Line.X1, t.Line.Y1, t.Line.X2, t.Line.Y2, lineAttrs...)

		if len(t.Lines) > 0 {
			drawLabel(c, t)
		}
		c.Gend()
	}
	c.Path(r.Domain, attr("class", "domain"), attr("fill", "none"), attr("stroke", stroke))

	if r.Title != nil {
		attrs := []string{
			attr("class", "sszvis-axis--title"),
			attr("text-anchor", r.Title.Anchor),
		}
		transform := canvas.Translate(r.Title.X, r.Title.Y)
		if r.Title.Vertical {
			transform += " " + canvas.Rotate(-90)
		}
		attrs = append(attrs, attr("transform", transform))
		c.Text(0, 0, r.Title.Text, attrs...)
	}
	c.End()
}

func drawLabel[T any](c *canvas.Canvas, t Tick[T]) {
	var cls []string
	if t.Active {
		cls = append(cls, "active")
	}
	if t.LabelHidden {
		cls = append(cls, "hidden")
	}

	var attrs []string
	for _, a := range []struct{ name, value string }{
		{"class", strings.Join(cls, " ")},
		{"dx", t.Dx},
		{"dy", t.Dy},
		{"text-anchor", t.Anchor},
		{"transform", t.Transform},
	} {
		if a.value != "" {
			attrs = append(attrs, canvas.Attr(a.name, a.value))
		}
	}
	if t.LabelHidden {
		attrs = append(attrs, canvas.Attr("visibility", "hidden"))
	}

	if len(t.Lines) == 1 {
		c.Text(t.TextX, t.TextY, t.Lines[0], attrs...)
		return
	}
	c.Textspan(t.TextX, t.TextY, "", attrs...)
	for i, line := range t.Lines {
		dy := "1.1em"
		if i == 0 {
			dy = "0"
		}
		c.Span(line, canvas.Attr("x", canvas.Num(t.TextX)), canvas.Attr("dy", dy))
	}
	c.TextEnd()
}
