// Package measure describes the size of the container a chart is drawn into.
//
// In a browser the container is a DOM element; here it is whatever the
// caller knows about the target: a CLI flag, an HTTP query parameter, or the
// width of a terminal. A zero width means the container has not been laid
// out (or cannot be measured) and downstream calculators fall back to their
// defaults.
package measure

// Dimensions is a snapshot of a container's size at measurement time.
type Dimensions struct {
	Width        float64 `json:"width" toml:"width"`
	Height       float64 `json:"height,omitempty" toml:"height"`
	ScreenWidth  float64 `json:"screen_width,omitempty" toml:"screen_width"`
	ScreenHeight float64 `json:"screen_height,omitempty" toml:"screen_height"`
}

// Measured reports whether the container reported a usable width.
func (d Dimensions) Measured() bool { return d.Width > 0 }

// Measurer reads the current size of a container.
type Measurer interface {
	Measure() Dimensions
}

// Fixed is a Measurer that always reports the same dimensions.
type Fixed Dimensions

// Measure implements Measurer.
func (f Fixed) Measure() Dimensions { return Dimensions(f) }

// Width returns a Measurer for a container of the given width and unknown
// height.
func Width(w float64) Measurer { return Fixed{Width: w} }

// Func adapts a function to the Measurer interface.
type Func func() Dimensions

// Measure implements Measurer.
func (f Func) Measure() Dimensions { return f() }

// Of measures m, treating a nil Measurer as an unmeasurable container.
func Of(m Measurer) Dimensions {
	if m == nil {
		return Dimensions{}
	}
	d := m.Measure()
	if d.Width < 0 {
		d.Width = 0
	}
	if d.Height < 0 {
		d.Height = 0
	}
	return d
}
