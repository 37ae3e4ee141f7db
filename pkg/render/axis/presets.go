package axis

import (
	"time"

	"github.com/matzehuels/statviz/pkg/format"
	"github.com/matzehuels/statviz/pkg/scale"
	"github.com/matzehuels/statviz/pkg/render/text"
)

func xBase[T any](s Scale[T]) Config[T] {
	return Config[T]{
		Scale:         s,
		Orient:        Bottom,
		Ticks:         3,
		TickSize:      4,
		OuterTickSize: 7,
		TickPadding:   7,
		FontSize:      text.DefaultFontSize,
	}
}

func yBase[T any](s Scale[T]) Config[T] {
	return Config[T]{
		Scale:    s,
		Orient:   Right,
		Ticks:    7,
		Vertical: true,
		FontSize: text.DefaultFontSize,
		hideZero: true,
	}
}

// X is a horizontal numeric axis.
func X(s Scale[float64]) Config[float64] {
	c := xBase(s)
	c.TickFormat = format.Number
	return c
}

// XTime is a horizontal time axis. Outer labels are aligned to the edges.
func XTime(s Scale[time.Time]) Config[time.Time] {
	c := xBase(s)
	c.TickFormat = format.AxisTime
	c.AlignOuterLabels = true
	return c
}

// XOrdinal is a horizontal axis over categories. Ticks subsamples the
// categories, keeping the first and last.
func XOrdinal(s Scale[string]) Config[string] {
	c := xBase(s)
	c.Ticks = 0
	c.TickFormat = textFormat
	c.ordinalTicks = true
	return c
}

// XPyramid is the shared center axis of a population pyramid. s maps one
// side, [0, max] onto [0, halfWidth]; the axis mirrors it around zero and
// labels both sides with magnitudes.
func XPyramid(s scale.Linear) Config[float64] {
	c := xBase[float64](scale.Mirror(s))
	c.Ticks = 10
	c.TickFormat = format.Abs(format.Number)
	return c
}

// Y is a vertical numeric axis. The zero label is hidden unless ShowZeroY
// is set.
func Y(s Scale[float64]) Config[float64] {
	c := yBase(s)
	c.TickFormat = format.Number
	return c
}

// YTime is a vertical time axis.
func YTime(s Scale[time.Time]) Config[time.Time] {
	c := yBase(s)
	c.TickFormat = format.AxisTime
	return c
}

// YOrdinal is a vertical axis over categories.
func YOrdinal(s Scale[string]) Config[string] {
	c := yBase(s)
	c.Ticks = 0
	c.TickFormat = textFormat
	c.ordinalTicks = true
	c.hideZero = false
	return c
}

func textFormat(v string) string { return format.Text(v) }

// OrdinalTicks picks about count values from domain. The first and last
// values are always included; the values in between are taken every
// round(len/count) positions.
//
//	A..J, count 3 -> A D G J
func OrdinalTicks[T any](domain []T, count int) []T {
	n := len(domain)
	switch {
	case n == 0:
		return nil
	case n == 1:
		return []T{domain[0]}
	case count < 1:
		return append([]T(nil), domain...)
	}
	step := int(float64(n)/float64(count) + 0.5)
	step = max(step, 1)

	out := []T{domain[0]}
	for i := step; i < n-1; i += step {
		out = append(out, domain[i])
	}
	return append(out, domain[n-1])
}
