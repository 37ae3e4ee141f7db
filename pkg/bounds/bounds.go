// Package bounds computes the drawing area of a chart following the margin
// convention: an outer box of Width x Height with padding on each side and
// an inner box where scales and marks live.
package bounds

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/statviz/pkg/fn"
	"github.com/matzehuels/statviz/pkg/measure"
)

// Defaults applied when a dimension is neither configured nor measurable.
const (
	DefaultWidth       = 516
	DefaultInnerHeight = 365
	DefaultTop         = 0
	DefaultRight       = 1
	DefaultBottom      = 0
	DefaultLeft        = 1
)

// Config holds the recognized bounds options. Nil fields take defaults.
type Config struct {
	Top    *float64 `json:"top,omitempty" toml:"top"`
	Right  *float64 `json:"right,omitempty" toml:"right"`
	Bottom *float64 `json:"bottom,omitempty" toml:"bottom"`
	Left   *float64 `json:"left,omitempty" toml:"left"`
	Width  *float64 `json:"width,omitempty" toml:"width"`
	Height *float64 `json:"height,omitempty" toml:"height"`

	// FillHeight uses the measured container height, when there is one,
	// instead of the default inner height.
	FillHeight bool `json:"fill_height,omitempty" toml:"fill_height"`
}

// Padding is the space between the outer and inner box.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Bounds is the computed geometry for one render.
type Bounds struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	InnerWidth  float64 `json:"inner_width"`
	InnerHeight float64 `json:"inner_height"`
	Padding     Padding `json:"padding"`

	// Screen carries the measurement the bounds were computed from. Tooltip
	// fitting and responsive props need it downstream.
	Screen measure.Dimensions `json:"screen"`
}

// Compute derives Bounds from cfg. A missing width is taken from m and
// falls back to DefaultWidth when m is nil or reports zero. A missing height
// is DefaultInnerHeight plus the vertical padding.
//
// Inner dimensions may come out negative if the padding exceeds the outer
// size; that is a caller error and is not corrected.
func Compute(cfg Config, m measure.Measurer) Bounds {
	dims := measure.Of(m)
	p := Padding{
		Top:    fn.Either(cfg.Top, DefaultTop),
		Right:  fn.Either(cfg.Right, DefaultRight),
		Bottom: fn.Either(cfg.Bottom, DefaultBottom),
		Left:   fn.Either(cfg.Left, DefaultLeft),
	}

	width := float64(DefaultWidth)
	if dims.Measured() {
		width = dims.Width
	}
	width = fn.Either(cfg.Width, width)

	height := DefaultInnerHeight + p.Top + p.Bottom
	if cfg.FillHeight && dims.Height > 0 {
		height = dims.Height
	}
	height = fn.Either(cfg.Height, height)

	return Bounds{
		Width:       width,
		Height:      height,
		InnerWidth:  width - p.Left - p.Right,
		InnerHeight: height - p.Top - p.Bottom,
		Padding:     p,
		Screen:      dims,
	}
}

// Translate returns the SVG transform that moves the origin to the top-left
// corner of the inner box.
func (b Bounds) Translate() string {
	return TranslateString(b.Padding.Left, b.Padding.Top)
}

// TranslateString formats an SVG translate transform.
func TranslateString(x, y float64) string {
	return fmt.Sprintf("translate(%s,%s)", num(x), num(y))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
