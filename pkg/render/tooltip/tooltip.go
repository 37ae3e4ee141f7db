// Package tooltip places tooltips next to the marks they describe.
//
// Marks report an [Anchor] for each datum: the top center of a bar, the
// center of a dot, the centroid of a map area. [Fit] picks a side for the
// tooltip so that it stays inside the chart, and [Place] computes the box.
package tooltip

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/statviz/pkg/bounds"
	"github.com/matzehuels/statviz/pkg/render/canvas"
)

// TipSize is the length of the pointer between box and anchor.
const TipSize = 6

// Orientation names the side of the box the pointer is on. A bottom
// tooltip sits above its anchor, a left tooltip to its right.
type Orientation string

// Orientations.
const (
	Top    Orientation = "top"
	Bottom Orientation = "bottom"
	Left   Orientation = "left"
	Right  Orientation = "right"
)

// Anchor is the point a tooltip refers to, in inner chart coordinates.
type Anchor struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Key string  `json:"key,omitempty"`
}

// Valid reports whether both coordinates are finite.
func (a Anchor) Valid() bool {
	return !math.IsNaN(a.X) && !math.IsNaN(a.Y) && !math.IsInf(a.X, 0) && !math.IsInf(a.Y, 0)
}

// MarshalJSON writes invalid anchors with null coordinates.
func (a Anchor) MarshalJSON() ([]byte, error) {
	type point struct {
		X   *float64 `json:"x"`
		Y   *float64 `json:"y"`
		Key string   `json:"key,omitempty"`
	}
	p := point{Key: a.Key}
	if a.Valid() {
		p.X, p.Y = &a.X, &a.Y
	}
	return json.Marshal(p)
}

// Fit returns a function choosing the orientation for an anchor. Anchors in
// the outer quarter of the chart (at most 100px) point sideways so the box
// opens toward the center; all others use def.
func Fit(def Orientation, b bounds.Bounds) func(Anchor) Orientation {
	lo := math.Min(b.Width/4, 100)
	hi := math.Max(b.Width*3/4, b.Width-100)
	return func(a Anchor) Orientation {
		switch {
		case a.X > hi:
			return Right
		case a.X < lo:
			return Left
		}
		return def
	}
}

// Box is a placed tooltip.
type Box struct {
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Orientation Orientation `json:"orientation"`
	Anchor      Anchor      `json:"anchor"`
}

// Place positions a w by h box for a. The box is shifted horizontally to
// stay within the outer chart width.
func Place(a Anchor, o Orientation, w, h float64, b bounds.Bounds) Box {
	box := Box{Width: w, Height: h, Orientation: o, Anchor: a}
	switch o {
	case Top:
		box.X, box.Y = a.X-w/2, a.Y+TipSize
	case Left:
		box.X, box.Y = a.X+TipSize, a.Y-h/2
	case Right:
		box.X, box.Y = a.X-w-TipSize, a.Y-h/2
	default:
		box.Orientation = Bottom
		box.X, box.Y = a.X-w/2, a.Y-h-TipSize
	}

	minX := -b.Padding.Left
	maxX := b.Width - b.Padding.Left - w
	if maxX >= minX {
		box.X = math.Max(minX, math.Min(maxX, box.X))
	}
	return box
}

// Content is the text of a tooltip: a bold header and body rows.
type Content struct {
	Header string   `json:"header,omitempty"`
	Body   []string `json:"body,omitempty"`
}

// Draw writes a box with its pointer and text.
func Draw(c *canvas.Canvas, box Box, content Content) {
	attr := canvas.Attr
	c.Layer("sszvis-tooltip", box.X, box.Y)
	c.Path(pointer(box), attr("class", "sszvis-tooltip__tip"), attr("fill", "#FFFFFF"), attr("stroke", "#E0E0E0"))
	c.Rect(0, 0, box.Width, box.Height,
		attr("class", "sszvis-tooltip__body"), attr("fill", "#FFFFFF"), attr("stroke", "#E0E0E0"), attr("rx", "3"))

	y := 16.0
	if content.Header != "" {
		c.Text(box.Width/2, y, content.Header, attr("class", "sszvis-tooltip__header"), attr("text-anchor", "middle"), attr("font-weight", "bold"))
		y += 14
	}
	for _, line := range content.Body {
		c.Text(box.Width/2, y, line, attr("class", "sszvis-tooltip__text"), attr("text-anchor", "middle"))
		y += 14
	}
	c.End()
}

// pointer is the triangle from the box edge to the anchor, relative to the
// box origin.
func pointer(box Box) string {
	ax, ay := box.Anchor.X-box.X, box.Anchor.Y-box.Y
	n := canvas.Num
	switch box.Orientation {
	case Top:
		return "M" + n(ax-TipSize) + ",0L" + n(ax) + "," + n(ay) + "L" + n(ax+TipSize) + ",0Z"
	case Left:
		return "M0," + n(ay-TipSize) + "L" + n(ax) + "," + n(ay) + "L0," + n(ay+TipSize) + "Z"
	case Right:
		w := n(box.Width)
		return "M" + w + "," + n(ay-TipSize) + "L" + n(ax) + "," + n(ay) + "L" + w + "," + n(ay+TipSize) + "Z"
	}
	h := n(box.Height)
	return "M" + n(ax-TipSize) + "," + h + "L" + n(ax) + "," + n(ay) + "L" + n(ax+TipSize) + "," + h + "Z"
}

// DrawAnchors writes invisible markers at each anchor so that an embedding
// page can attach its own tooltips.
func DrawAnchors(c *canvas.Canvas, anchors []Anchor) {
	c.Layer("sszvis-tooltipAnchors", 0, 0)
	for _, a := range anchors {
		if !a.Valid() {
			continue
		}
		attrs := []string{
			canvas.Attr("class", "sszvis-tooltip-anchor"),
			`data-tooltip-anchor=""`,
			canvas.Attr("visibility", "hidden"),
		}
		if a.Key != "" {
			attrs = append(attrs, canvas.Attr("data-key", a.Key))
		}
		c.Rect(a.X, a.Y, 1, 1, attrs...)
	}
	c.End()
}
