// Package axis lays out and draws chart axes.
//
// An axis is configured with a [Config] (usually obtained from one of the
// presets [X], [XTime], [XOrdinal], [XPyramid], [Y], [YTime], [YOrdinal]),
// validated by [New], laid out into a [Result] by [Axis.Layout] and written
// to SVG by [Draw]. Layout runs a fixed sequence of passes over the ticks:
//
//  1. base ticks, labels and the domain line
//  2. edge suppression: tick lines within 8px of either range end are hidden
//  3. highlighting, which may hide labels crowding a highlighted one
//  4. tick length override for all but the outermost domain values
//  5. outer label alignment
//  6. label wrapping
//  7. slanting (top and bottom axes only)
//  8. the title
//
// Every call recomputes the result from scratch.
package axis

import (
	"fmt"
	"time"

	sverrors "github.com/matzehuels/statviz/pkg/errors"
)

// TickProximityThreshold is the distance in pixels from either end of the
// range within which tick lines are hidden.
const TickProximityThreshold = 8

// Orientation is the side of the chart an axis is drawn on.
type Orientation string

// Orientations.
const (
	Top    Orientation = "top"
	Bottom Orientation = "bottom"
	Left   Orientation = "left"
	Right  Orientation = "right"
)

// Horizontal reports whether ticks are laid out along the x axis.
func (o Orientation) Horizontal() bool { return o == Top || o == Bottom }

// Slant is the rotation applied to tick labels.
type Slant string

// Slant modes. SlantHorizontal is accepted as an explicit "no slant".
const (
	SlantNone       Slant = ""
	SlantHorizontal Slant = "horizontal"
	SlantVertical   Slant = "vertical"
	SlantDiagonal   Slant = "diagonal"
)

// Scale is what an axis needs from a scale.
type Scale[T any] interface {
	Map(T) float64
	RangeExtent() (float64, float64)
	DomainExtent() (T, T)
	Ticks(count int) []T
}

// banded is implemented by scales that map values to bands rather than
// points. Ticks are centered on the band.
type banded interface {
	Bandwidth() float64
}

// ordinal is implemented by scales with a discrete domain.
type ordinal[T any] interface {
	Domain() []T
}

// Config holds every axis option. Zero values are meaningful: no title, no
// highlight, no wrapping, no slant.
type Config[T any] struct {
	Scale  Scale[T]
	Orient Orientation

	// Ticks is the desired number of ticks. For ordinal axes the domain is
	// subsampled to about this many values, always keeping both ends.
	Ticks int
	// TickValues, if set, replaces the generated ticks.
	TickValues []T

	TickSize      float64
	OuterTickSize float64
	TickPadding   float64
	TickFormat    func(T) string
	TickColor     string

	// TickLength overrides the inner tick length for every tick except the
	// first and last domain values.
	TickLength *float64

	AlignOuterLabels bool
	Halo             bool

	// Highlight lists values whose labels are marked active. Values are
	// compared by their string form. HighlightFunc is an alternative
	// predicate; a label is active if either matches.
	Highlight     []T
	HighlightFunc func(T) bool
	// HighlightBoundary hides labels closer than this many pixels to an
	// active label. Zero or less disables hiding.
	HighlightBoundary float64

	ShowZeroY bool
	Slant     Slant
	// TextWrap wraps labels at this width in pixels. Zero disables wrapping.
	TextWrap float64
	FontSize float64

	Title         string
	TitleAlign    string
	TitleLeft     *float64
	TitleTop      *float64
	TitleCenter   bool
	TitleVertical bool
	DxTitle       float64
	DyTitle       float64

	Vertical bool

	ordinalTicks bool
	hideZero     bool
}

// Axis is a validated axis configuration.
type Axis[T any] struct {
	cfg Config[T]
}

// New validates cfg. A missing scale, an unknown orientation or an unknown
// slant are configuration errors.
func New[T any](cfg Config[T]) (*Axis[T], error) {
	if cfg.Scale == nil {
		return nil, sverrors.New(sverrors.ErrCodeMissingProperty, "axis has no scale")
	}
	switch cfg.Orient {
	case Top, Bottom, Left, Right:
	case "":
		return nil, sverrors.New(sverrors.ErrCodeMissingProperty, "axis has no orientation")
	default:
		return nil, sverrors.New(sverrors.ErrCodeInvalidOrientation, "unknown axis orientation %q", cfg.Orient)
	}
	switch cfg.Slant {
	case SlantNone, SlantHorizontal, SlantVertical, SlantDiagonal:
	default:
		return nil, sverrors.New(sverrors.ErrCodeInvalidConfig, "unknown label slant %q", cfg.Slant)
	}
	if cfg.TitleAlign != "" && !validAnchor(cfg.TitleAlign) {
		return nil, sverrors.New(sverrors.ErrCodeInvalidConfig, "unknown title alignment %q", cfg.TitleAlign)
	}
	if cfg.TickFormat == nil {
		cfg.TickFormat = defaultFormat[T]
	}
	return &Axis[T]{cfg: cfg}, nil
}

// Must is like New but panics on error. It is meant for axes built from
// constant configuration.
func Must[T any](a *Axis[T], err error) *Axis[T] {
	if err != nil {
		panic(err)
	}
	return a
}

// Config returns the validated configuration.
func (a *Axis[T]) Config() Config[T] { return a.cfg }

func validAnchor(s string) bool {
	return s == "start" || s == "middle" || s == "end"
}

func defaultFormat[T any](v T) string {
	switch t := any(v).(type) {
	case string:
		return t
	case time.Time:
		return t.Format(time.DateOnly)
	}
	return fmt.Sprint(v)
}

// equal compares tick values the way labels are matched: by string form.
func equal[T any](a, b T) bool {
	if ta, ok := any(a).(time.Time); ok {
		return ta.Equal(any(b).(time.Time))
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}
