// Package format turns values into axis and tooltip labels.
//
// Numbers follow the house style:
//   - the thousands separator is a thin space, applied only from 10 000 up
//   - no decimals from 10 000 up, at most one from 100 up
//   - below 100, only significant decimals (at most two past the integer
//     digits)
//   - trailing zeros are always removed
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ThinSpace separates thousands in formatted numbers.
const ThinSpace = "\u2009"

// Missing is the label used for NaN values.
const Missing = "–"

// Func formats a float for display.
type Func func(float64) string

// Number formats d with automatic precision.
//
//	10250    -> "10 250"
//	2350.29  -> "2350.3"
//	41.329   -> "41.33"
//	0.00034  -> "0.00034"
func Number(d float64) string {
	return number(d, -1)
}

// NumberPrecision formats d with exactly p decimals before trailing zeros
// are removed. A negative p selects automatic precision.
func NumberPrecision(d float64, p int) string {
	return number(d, p)
}

func number(d float64, p int) string {
	if math.IsNaN(d) {
		return Missing
	}
	if math.IsInf(d, 0) {
		if d < 0 {
			return "-∞"
		}
		return "∞"
	}

	abs := math.Abs(d)
	switch {
	case abs >= 1e4:
		if p < 0 {
			p = 0
		}
		return trimZeros(group(strconv.FormatFloat(d, 'f', p, 64)))
	case abs >= 100:
		if p < 0 {
			p = 0
			if decimalPlaces(d) > 0 {
				p = 1
			}
		}
		return trimZeros(strconv.FormatFloat(d, 'f', p, 64))
	case abs > 0:
		if p >= 0 {
			return trimZeros(strconv.FormatFloat(d, 'f', p, 64))
		}
		dec := decimalPlaces(d)
		if dec == 0 {
			return strconv.FormatFloat(d, 'f', 0, 64)
		}
		return trimZeros(significant(d, integerPlaces(d)+min(2, dec)))
	default:
		return "0"
	}
}

// Percent formats a fraction as a percentage: 0.253 -> "25.3 %".
func Percent(d float64) string {
	if math.IsNaN(d) {
		return Missing
	}
	return Number(d*100) + " %"
}

// Age formats d as a whole number of years.
func Age(d float64) string {
	if math.IsNaN(d) {
		return Missing
	}
	return strconv.FormatFloat(math.Round(d), 'f', 0, 64)
}

// None formats every value as the empty string.
func None(float64) string { return "" }

// Text formats any value with its default representation.
func Text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// Abs wraps f so that negative values are labeled by their magnitude.
func Abs(f Func) Func {
	return func(d float64) string { return f(math.Abs(d)) }
}

// significant formats d rounded to p significant digits in fixed notation.
func significant(d float64, p int) string {
	if p <= 0 {
		p = 1
	}
	exp := int(math.Floor(math.Log10(math.Abs(d))))
	decimals := p - 1 - exp
	if decimals < 0 {
		pow := math.Pow10(-decimals)
		return strconv.FormatFloat(math.Round(d/pow)*pow, 'f', 0, 64)
	}
	return strconv.FormatFloat(d, 'f', decimals, 64)
}

func decimalPlaces(d float64) int {
	s := strconv.FormatFloat(math.Abs(d), 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func integerPlaces(d float64) int {
	n := math.Floor(math.Abs(d))
	if n == 0 {
		return 0
	}
	return len(strconv.FormatFloat(n, 'f', 0, 64))
}

// group inserts thin spaces between thousands in the integer part of s.
func group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(ThinSpace)
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// trimZeros removes trailing zeros after the decimal point and a dangling
// point.
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
