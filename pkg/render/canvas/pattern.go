package canvas

import "github.com/matzehuels/statviz/pkg/render/palette"

// Pattern is a tiled fill made of an optional background and diagonal
// strokes.
type Pattern struct {
	Name          string
	Width, Height float64
	Background    string
	Stroke        string
	StrokeWidth   float64
	Lines         [][4]float64
}

// Patterns used to mark missing data and special map areas.
var (
	MapMissingValue = Pattern{
		Name: "missing-pattern", Width: 4, Height: 4,
		Background: palette.MissingFill, Stroke: palette.MissingLine,
		Lines: [][4]float64{{4, 0, 0, 4}},
	}
	MapLake = Pattern{
		Name: "lake-pattern", Width: 6, Height: 6,
		Background: "#FFFFFF", Stroke: palette.LakeLine,
		Lines: [][4]float64{{6, 0, 0, 6}},
	}
	DataArea = Pattern{
		Name: "data-area-pattern", Width: 6, Height: 6,
		Stroke: palette.LakeLine,
		Lines:  [][4]float64{{6, 0, 0, 6}},
	}
	HeatTableMissingValue = Pattern{
		Name: "ht-missing-value", Width: 14, Height: 14,
		Background: palette.LightGray, Stroke: palette.MissingFill, StrokeWidth: 1.1,
		Lines: [][4]float64{{4, 4, 10, 10}, {10, 4, 4, 10}},
	}
)

// EnsurePattern writes the definition of p the first time it is requested
// in this document and returns the paint reference for it.
func (c *Canvas) EnsurePattern(p Pattern) string {
	if !c.defs[p.Name] {
		c.defs[p.Name] = true
		c.Def()
		c.SVG.Pattern(c.ID(p.Name), 0, 0, p.Width, p.Height, "user",
			Attr("patternContentUnits", "userSpaceOnUse"))
		if p.Background != "" {
			c.Rect(0, 0, p.Width, p.Height, Attr("fill", p.Background))
		}
		for _, l := range p.Lines {
			attrs := []string{Attr("stroke", p.Stroke)}
			if p.StrokeWidth > 0 {
				attrs = append(attrs, Attr("stroke-width", Num(p.StrokeWidth)))
			}
			c.Line(l[0], l[1], l[2], l[3], attrs...)
		}
		c.PatternEnd()
		c.DefEnd()
	}
	return c.URL(p.Name)
}
