// Package text measures and fits label text.
//
// Widths are estimated from a fixed-advance bitmap face scaled to the
// requested font size. The estimate is deliberately simple: it only has to
// be good enough to reserve axis padding, wrap tick labels and truncate
// tooltip rows consistently between renders.
package text

import (
	"bytes"
	"encoding/xml"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultFontSize is the font size of axis labels in pixels.
const DefaultFontSize = 10

var face = basicfont.Face7x13

// faceSize is the em height the bitmap face advances are measured at.
const faceSize = 13.0

// Width returns the estimated rendered width of s in pixels.
func Width(s string, fontSize float64) float64 {
	if s == "" {
		return 0
	}
	adv := font.MeasureString(face, s)
	return float64(adv) / 64 * fontSize / faceSize
}

// Wrap breaks s into lines no wider than width. Words longer than width
// are kept whole on their own line. A non-positive width disables wrapping.
func Wrap(s string, width, fontSize float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if Width(candidate, fontSize) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}

// Truncate shortens s with a trailing ".." so that it fits width. At least
// three characters are kept.
func Truncate(s string, width, fontSize float64) string {
	if Width(s, fontSize) <= width {
		return s
	}
	charWidth := Width("x", fontSize)
	maxChars := max(3, int(width/charWidth))
	if utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
