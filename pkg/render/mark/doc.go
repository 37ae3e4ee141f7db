// Package mark turns data into SVG marks.
//
// Every mark follows the same two steps. Layout resolves the mark's
// accessors against the data and returns plain shapes (rectangles, paths,
// circles) in inner chart coordinates; Draw writes those shapes to a
// [canvas.Canvas]. Keeping the steps apart lets callers inspect geometry,
// for example in a JSON layout dump, without producing SVG.
//
// Accessors are [fn.Value]s, so each attribute can be a constant or derived
// from the datum. Missing values never fail: NaN positions collapse to zero
// size, NaN line points open a gap, and map areas without data are filled
// with the missing-value pattern.
//
// Each shape carries a [tooltip.Anchor]: the top center of a bar, the center
// of a dot, the middle of a pie slice and the centroid of a map area.
package mark

import (
	"math"
	"strconv"
)

// coord formats a path coordinate rounded to 1/1000 px.
func coord(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // no "-0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func point(x, y float64) string { return coord(x) + "," + coord(y) }

// finite replaces NaN and infinities with fallback.
func finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
