package scale

import (
	"math"
	"time"

	"github.com/aclements/go-moremath/scale"
)

// Time maps instants onto a pixel range.
type Time struct {
	d0, d1 time.Time
	r0, r1 float64
}

// NewTime returns a time scale mapping [d0, d1] onto [r0, r1].
func NewTime(d0, d1 time.Time, r0, r1 float64) Time {
	return Time{d0: d0, d1: d1, r0: r0, r1: r1}
}

// WithRange returns a copy of s with a new range.
func (s Time) WithRange(r0, r1 float64) Time {
	s.r0, s.r1 = r0, r1
	return s
}

// Domain returns the configured domain.
func (s Time) Domain() (time.Time, time.Time) { return s.d0, s.d1 }

// RangeExtent returns the range as (min, max).
func (s Time) RangeExtent() (float64, float64) { return extent(s.r0, s.r1) }

// DomainExtent returns the domain as (earliest, latest).
func (s Time) DomainExtent() (time.Time, time.Time) {
	if s.d1.Before(s.d0) {
		return s.d1, s.d0
	}
	return s.d0, s.d1
}

// Map maps t into the range. The zero time maps to NaN.
func (s Time) Map(t time.Time) float64 {
	if t.IsZero() {
		return math.NaN()
	}
	return s.linear().Map(float64(t.UnixMilli()))
}

// Invert maps a range value back to an instant.
func (s Time) Invert(y float64) time.Time {
	ms := s.linear().Invert(y)
	return time.UnixMilli(int64(math.Round(ms))).In(s.d0.Location())
}

func (s Time) linear() Linear {
	return NewLinear(float64(s.d0.UnixMilli()), float64(s.d1.UnixMilli()), s.r0, s.r1)
}

// interval is a calendar-aligned tick step.
type interval struct {
	unit time.Duration // for sub-day steps
	days int
	mons int
	n    int
}

func (iv interval) approx() time.Duration {
	switch {
	case iv.mons > 0:
		return time.Duration(iv.mons*iv.n) * 30 * 24 * time.Hour
	case iv.days > 0:
		return time.Duration(iv.days*iv.n) * 24 * time.Hour
	}
	return iv.unit * time.Duration(iv.n)
}

var tickIntervals = []interval{
	{unit: time.Second, n: 1},
	{unit: time.Second, n: 5},
	{unit: time.Second, n: 15},
	{unit: time.Second, n: 30},
	{unit: time.Minute, n: 1},
	{unit: time.Minute, n: 5},
	{unit: time.Minute, n: 15},
	{unit: time.Minute, n: 30},
	{unit: time.Hour, n: 1},
	{unit: time.Hour, n: 3},
	{unit: time.Hour, n: 6},
	{unit: time.Hour, n: 12},
	{days: 1, n: 1},
	{days: 1, n: 2},
	{days: 7, n: 1},
	{mons: 1, n: 1},
	{mons: 1, n: 3},
	{mons: 1, n: 6},
}

// Ticks returns about count calendar-aligned instants within the domain.
// Spans of a year or more tick on round years.
func (s Time) Ticks(count int) []time.Time {
	lo, hi := s.DomainExtent()
	if count < 1 || lo.IsZero() || hi.IsZero() {
		return nil
	}
	if lo.Equal(hi) {
		return []time.Time{lo}
	}

	target := hi.Sub(lo) / time.Duration(count)
	if target > 365*24*time.Hour/2 {
		return yearTicks(lo, hi, count)
	}

	iv := tickIntervals[len(tickIntervals)-1]
	for _, c := range tickIntervals {
		if c.approx() >= target {
			iv = c
			break
		}
	}
	if iv.approx() < target {
		return yearTicks(lo, hi, count)
	}

	var out []time.Time
	for t := floor(lo, iv); !t.After(hi); t = step(t, iv) {
		if !t.Before(lo) {
			out = append(out, t)
		}
	}
	return out
}

// yearTicks places ticks on January 1st of round years chosen by the
// linear tick algorithm.
func yearTicks(lo, hi time.Time, count int) []time.Time {
	y0 := float64(lo.Year())
	if !lo.Equal(time.Date(lo.Year(), 1, 1, 0, 0, 0, 0, lo.Location())) {
		y0++
	}
	y1 := float64(hi.Year())
	if y1 < y0 {
		return nil
	}
	if y1 == y0 {
		return []time.Time{time.Date(int(y0), 1, 1, 0, 0, 0, 0, lo.Location())}
	}
	ls := scale.Linear{Min: y0, Max: y1}
	o := scale.TickOptions{Max: count, MinLevel: 0, MaxLevel: 1000}
	major, _ := ls.Ticks(o)
	if len(major) == 0 {
		major = []float64{y0}
	}
	out := make([]time.Time, 0, len(major))
	for _, y := range major {
		out = append(out, time.Date(int(y), 1, 1, 0, 0, 0, 0, lo.Location()))
	}
	return out
}

func floor(t time.Time, iv interval) time.Time {
	loc := t.Location()
	switch {
	case iv.mons > 0:
		m := (int(t.Month())-1)/(iv.mons*iv.n)*(iv.mons*iv.n) + 1
		return time.Date(t.Year(), time.Month(m), 1, 0, 0, 0, 0, loc)
	case iv.days == 7:
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		return d.AddDate(0, 0, -int(d.Weekday()))
	case iv.days > 0:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	stepDur := iv.unit * time.Duration(iv.n)
	return day.Add(t.Sub(day) / stepDur * stepDur)
}

func step(t time.Time, iv interval) time.Time {
	switch {
	case iv.mons > 0:
		return t.AddDate(0, iv.mons*iv.n, 0)
	case iv.days > 0:
		return t.AddDate(0, 0, iv.days*iv.n)
	}
	return t.Add(iv.unit * time.Duration(iv.n))
}
