package scale

import (
	"math"
	"slices"
)

// Band maps an ordered list of categories to evenly spaced bands.
type Band struct {
	domain       []string
	index        map[string]int
	r0, r1       float64
	paddingInner float64
	paddingOuter float64
	align        float64
	round        bool
}

// NewBand returns a band scale over domain with range [r0, r1] and no
// padding. Duplicate categories keep their first position.
func NewBand(domain []string, r0, r1 float64) Band {
	b := Band{r0: r0, r1: r1, align: 0.5}
	return b.WithDomain(domain)
}

// WithDomain returns a copy of b with a new domain.
func (b Band) WithDomain(domain []string) Band {
	b.domain = make([]string, 0, len(domain))
	b.index = make(map[string]int, len(domain))
	for _, d := range domain {
		if _, ok := b.index[d]; ok {
			continue
		}
		b.index[d] = len(b.domain)
		b.domain = append(b.domain, d)
	}
	return b
}

// WithRange returns a copy of b mapping onto [r0, r1].
func (b Band) WithRange(r0, r1 float64) Band {
	b.r0, b.r1 = r0, r1
	return b
}

// RangeRound returns a copy of b mapping onto [r0, r1] with band starts
// and widths rounded to whole pixels.
func (b Band) RangeRound(r0, r1 float64) Band {
	b.r0, b.r1, b.round = r0, r1, true
	return b
}

// Padding sets both the inner and outer padding ratio.
func (b Band) Padding(p float64) Band {
	return b.PaddingInner(p).PaddingOuter(p)
}

// PaddingInner sets the gap between bands as a fraction of the step,
// clamped to [0, 1].
func (b Band) PaddingInner(p float64) Band {
	b.paddingInner = math.Max(0, math.Min(1, p))
	return b
}

// PaddingOuter sets the space before the first and after the last band as
// a fraction of the step.
func (b Band) PaddingOuter(p float64) Band {
	b.paddingOuter = math.Max(0, p)
	return b
}

// Domain returns the categories in order.
func (b Band) Domain() []string { return slices.Clone(b.domain) }

// Range returns the configured range, which may be reversed.
func (b Band) Range() (float64, float64) { return b.r0, b.r1 }

// RangeExtent returns the range as (min, max).
func (b Band) RangeExtent() (float64, float64) { return extent(b.r0, b.r1) }

// DomainExtent returns the first and last category.
func (b Band) DomainExtent() (string, string) {
	if len(b.domain) == 0 {
		return "", ""
	}
	return b.domain[0], b.domain[len(b.domain)-1]
}

// Step returns the distance between the starts of adjacent bands.
func (b Band) Step() float64 {
	step, _ := b.geometry()
	return step
}

// Bandwidth returns the width of each band.
func (b Band) Bandwidth() float64 {
	step, _ := b.geometry()
	bw := step * (1 - b.paddingInner)
	if b.round {
		bw = math.Round(bw)
	}
	return bw
}

// Map returns the start of the band for category v, or NaN if v is not in
// the domain.
func (b Band) Map(v string) float64 {
	i, ok := b.index[v]
	if !ok {
		return math.NaN()
	}
	step, start := b.geometry()
	if b.r1 < b.r0 {
		i = len(b.domain) - 1 - i
	}
	return start + step*float64(i)
}

// Contains reports whether v is one of the categories.
func (b Band) Contains(v string) bool {
	_, ok := b.index[v]
	return ok
}

// Ticks returns every category. Band scales have no notion of tick
// density; ordinal axes subsample the domain themselves.
func (b Band) Ticks(int) []string { return b.Domain() }

func (b Band) geometry() (step, start float64) {
	n := float64(len(b.domain))
	lo, hi := extent(b.r0, b.r1)
	step = (hi - lo) / math.Max(1, n-b.paddingInner+b.paddingOuter*2)
	if b.round {
		step = math.Floor(step)
	}
	start = lo + (hi-lo-step*(n-b.paddingInner))*b.align
	if b.round {
		start = math.Round(start)
	}
	return step, start
}

func extent(a, b float64) (float64, float64) {
	if a <= b {
		return a, b
	}
	return b, a
}
