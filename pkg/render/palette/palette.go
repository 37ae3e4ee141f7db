// Package palette provides the chart color schemes.
//
// Qualitative palettes assign colors to categories in domain order.
// Sequential palettes interpolate between color stops in CIE L*a*b* space
// so that equal value steps look like equal color steps.
package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Fixed colors used across charts.
const (
	LightGray    = "#FAFAFA"
	MissingFill  = "#BFBFBF"
	MissingLine  = "#737373"
	LakeLine     = "#D0D0D0"
	DefaultColor = "#000000"
)

var (
	qual12 = []string{
		"#5182B3", "#B8CFE6", "#60BF97", "#B8E6D2", "#94BF69", "#CFE6B8",
		"#E6CF73", "#FAEBAF", "#E67D73", "#F2CEC2", "#CC6788", "#E6B7C7",
	}
	qual6  = []string{"#5182B3", "#60BF97", "#94BF69", "#E6CF73", "#E67D73", "#CC6788"}
	qual6a = []string{"#5182B3", "#6D9DCC", "#8EB3D9", "#B8CFE6", "#CFDEED", "#E1EBF5"}
	qual6b = []string{"#CC6788", "#D98EA6", "#E6B7C7", "#E67D73", "#EBA39A", "#F2CEC2"}

	seqBlu = []string{"#DDE9FE", "#3B76B3", "#343F4D"}
	seqRed = []string{"#FEECEC", "#CC6171", "#4D353A"}
)

// Ordinal maps categories to a cyclic list of colors.
type Ordinal struct {
	colors []string
	index  map[string]int
}

func newOrdinal(colors []string) Ordinal {
	return Ordinal{colors: colors}
}

// Qual12 is the default twelve-color categorical palette.
func Qual12() Ordinal { return newOrdinal(qual12) }

// Qual6 is a six-color categorical palette.
func Qual6() Ordinal { return newOrdinal(qual6) }

// Qual6a is a blue-tinted six-color palette, paired with Qual6b on charts
// with two value axes.
func Qual6a() Ordinal { return newOrdinal(qual6a) }

// Qual6b is a red-tinted six-color palette.
func Qual6b() Ordinal { return newOrdinal(qual6b) }

// ByName returns a categorical palette by name.
func ByName(name string) (Ordinal, bool) {
	switch name {
	case "", "qual12":
		return Qual12(), true
	case "qual6":
		return Qual6(), true
	case "qual6a":
		return Qual6a(), true
	case "qual6b":
		return Qual6b(), true
	}
	return Ordinal{}, false
}

// WithDomain returns a copy of o that assigns colors to keys in order.
func (o Ordinal) WithDomain(keys []string) Ordinal {
	o.index = make(map[string]int, len(keys))
	for _, k := range keys {
		if _, ok := o.index[k]; !ok {
			o.index[k] = len(o.index)
		}
	}
	return o
}

// Map returns the color for key. Keys outside the domain map to the
// first color.
func (o Ordinal) Map(key string) string {
	if len(o.colors) == 0 {
		return DefaultColor
	}
	i := o.index[key]
	return o.colors[i%len(o.colors)]
}

// Colors returns the palette colors.
func (o Ordinal) Colors() []string { return append([]string(nil), o.colors...) }

// Darker returns a copy of o with every color darkened. It is used for
// the selected state of bars.
func (o Ordinal) Darker() Ordinal {
	dark := make([]string, len(o.colors))
	for i, c := range o.colors {
		dark[i] = Darker(c, 0.6)
	}
	o.colors = dark
	return o
}

// Sequential maps a numeric domain onto interpolated color stops.
type Sequential struct {
	stops  []colorful.Color
	lo, hi float64
}

// SeqBlu is the blue sequential palette over [lo, hi].
func SeqBlu(lo, hi float64) Sequential { return newSequential(seqBlu, lo, hi) }

// SeqRed is the red sequential palette over [lo, hi].
func SeqRed(lo, hi float64) Sequential { return newSequential(seqRed, lo, hi) }

func newSequential(hex []string, lo, hi float64) Sequential {
	stops := make([]colorful.Color, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			continue
		}
		stops = append(stops, c)
	}
	return Sequential{stops: stops, lo: lo, hi: hi}
}

// Map returns the color for v. Values outside the domain are clamped.
// NaN returns the empty string; callers substitute the missing-value fill.
func (s Sequential) Map(v float64) string {
	if math.IsNaN(v) || len(s.stops) == 0 {
		return ""
	}
	t := 0.0
	if s.hi != s.lo {
		t = (v - s.lo) / (s.hi - s.lo)
	}
	t = math.Max(0, math.Min(1, t))

	segments := float64(len(s.stops) - 1)
	if segments == 0 {
		return s.stops[0].Hex()
	}
	i := int(math.Min(segments-1, math.Floor(t*segments)))
	local := t*segments - float64(i)
	return s.stops[i].BlendLab(s.stops[i+1], local).Clamped().Hex()
}

// Darker darkens a hex color by factor k in HSL lightness, where each unit
// of k multiplies the lightness by 0.7. Unparseable colors are returned
// unchanged.
func Darker(hex string, k float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, l*math.Pow(0.7, k)).Clamped().Hex()
}

// SlightlyDarker is the stroke color of a selected heat table cell.
func SlightlyDarker(hex string) string { return Darker(hex, 0.4) }
