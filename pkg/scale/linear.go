package scale

import "math"

// Linear maps a continuous numeric domain onto a pixel range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
	clamp  bool
}

// NewLinear returns a linear scale mapping [d0, d1] onto [r0, r1]. Either
// interval may be reversed; a y scale typically maps [0, max] onto
// [innerHeight, 0].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// WithDomain returns a copy of s with a new domain.
func (s Linear) WithDomain(d0, d1 float64) Linear {
	s.d0, s.d1 = d0, d1
	return s
}

// WithRange returns a copy of s with a new range.
func (s Linear) WithRange(r0, r1 float64) Linear {
	s.r0, s.r1 = r0, r1
	return s
}

// Clamp returns a copy of s that clamps mapped values to the range.
func (s Linear) Clamp(clamp bool) Linear {
	s.clamp = clamp
	return s
}

// Domain returns the configured domain.
func (s Linear) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the configured range.
func (s Linear) Range() (float64, float64) { return s.r0, s.r1 }

// RangeExtent returns the range as (min, max).
func (s Linear) RangeExtent() (float64, float64) { return extent(s.r0, s.r1) }

// DomainExtent returns the domain as (min, max).
func (s Linear) DomainExtent() (float64, float64) { return extent(s.d0, s.d1) }

// Map maps v into the range. A degenerate domain maps everything to the
// middle of the range; NaN maps to NaN.
func (s Linear) Map(v float64) float64 {
	if math.IsNaN(v) {
		return math.NaN()
	}
	t := 0.5
	if s.d1 != s.d0 {
		t = (v - s.d0) / (s.d1 - s.d0)
	}
	if s.clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return s.r0 + t*(s.r1-s.r0)
}

// Invert maps a range value back into the domain.
func (s Linear) Invert(y float64) float64 {
	if s.r1 == s.r0 {
		return (s.d0 + s.d1) / 2
	}
	t := (y - s.r0) / (s.r1 - s.r0)
	if s.clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return s.d0 + t*(s.d1-s.d0)
}

// Ticks returns round values within the domain, in ascending order. count
// is a hint: the step is the power of ten times 1, 2 or 5 that yields
// closest to count ticks, so the result may hold a few more or fewer. A
// degenerate domain yields its single value.
func (s Linear) Ticks(count int) []float64 {
	lo, hi := s.DomainExtent()
	if !finiteRange(lo, hi) || count < 1 {
		return nil
	}
	if lo == hi {
		return []float64{lo}
	}
	i1, i2, inc := tickSpec(lo, hi, float64(count))
	if i2 < i1 {
		return nil
	}
	ticks := make([]float64, 0, int(i2-i1)+1)
	for i := i1; i <= i2; i++ {
		if inc < 0 {
			ticks = append(ticks, i/-inc)
		} else {
			ticks = append(ticks, i*inc)
		}
	}
	return ticks
}

// Nice returns a copy of s whose domain is extended to multiples of the
// tick step for count ticks. The domain direction is preserved.
func (s Linear) Nice(count int) Linear {
	lo, hi := s.DomainExtent()
	if lo == hi || count < 1 || !finiteRange(lo, hi) {
		return s
	}
	var prev float64
	for range 10 {
		_, _, step := tickSpec(lo, hi, float64(count))
		if step == prev {
			break
		}
		switch {
		case step > 0:
			lo, hi = math.Floor(lo/step)*step, math.Ceil(hi/step)*step
		case step < 0:
			lo, hi = math.Ceil(lo*step)/step, math.Floor(hi*step)/step
		default:
			return s
		}
		prev = step
	}
	if s.d0 <= s.d1 {
		s.d0, s.d1 = lo, hi
	} else {
		s.d0, s.d1 = hi, lo
	}
	return s
}

// Error thresholds between the 1, 2, 5 and 10 step multipliers.
var (
	tickE10 = math.Sqrt(50)
	tickE5  = math.Sqrt(10)
	tickE2  = math.Sqrt(2)
)

// tickSpec picks the tick step for about count ticks over [lo, hi] and
// returns the first and last tick indices. A positive inc is the step
// itself (tick i is i*inc); a negative inc is its inverse (tick i is
// i/-inc) so fractional steps stay exact.
func tickSpec(lo, hi, count float64) (i1, i2, inc float64) {
	step := (hi - lo) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= tickE10:
		factor = 10
	case e >= tickE5:
		factor = 5
	case e >= tickE2:
		factor = 2
	}
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1, i2 = roundHalfUp(lo*inc), roundHalfUp(hi*inc)
		if i1/inc < lo {
			i1++
		}
		if i2/inc > hi {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1, i2 = roundHalfUp(lo/inc), roundHalfUp(hi/inc)
		if i1*inc < lo {
			i1++
		}
		if i2*inc > hi {
			i2--
		}
	}
	if i2 < i1 && count >= 0.5 && count < 2 {
		return tickSpec(lo, hi, count*2)
	}
	return i1, i2, inc
}

func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }

func finiteRange(lo, hi float64) bool {
	return !math.IsNaN(lo) && !math.IsNaN(hi) && !math.IsInf(lo, 0) && !math.IsInf(hi, 0)
}

// Mirror returns the scale used by population pyramid axes: the domain
// becomes [-d1, d1] and the range [r0-r1, r0+r1], so one side of a
// one-sided scale is reflected around the origin.
func Mirror(s Linear) Linear {
	return Linear{
		d0:    -s.d1,
		d1:    s.d1,
		r0:    s.r0 - s.r1,
		r1:    s.r0 + s.r1,
		clamp: s.clamp,
	}
}
