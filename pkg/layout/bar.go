package layout

import "math"

// Vertical bar chart constants.
const (
	MaxBarWidth       = 48
	MinBarPadding     = 2
	MaxBarPadding     = 100
	TargetBarRatio    = 0.7
	TargetPaddingRatio = 1 - TargetBarRatio
)

// Horizontal bar chart constants.
const (
	BarHeight     = 22
	BarPadHeight  = 10
	BarAxisOffset = 10
)

// VerticalBarDims is the geometry of a vertical bar chart.
type VerticalBarDims struct {
	BarWidth float64 `json:"bar_width"`
	PadWidth float64 `json:"pad_width"`
	// PadRatio is the gap between bars relative to the step (bar + gap).
	PadRatio float64 `json:"pad_ratio"`
	// OuterRatio is the space left over on either side relative to the step.
	OuterRatio float64 `json:"outer_ratio"`
	// BarGroupWidth is the width actually covered by bars and gaps.
	BarGroupWidth float64 `json:"bar_group_width"`
	TotalWidth    float64 `json:"total_width"`
	// AxisOffset shifts an ordinal axis so ticks sit under bar centers.
	AxisOffset float64 `json:"axis_offset"`
}

// Step returns the distance between the left edges of adjacent bars.
func (d VerticalBarDims) Step() float64 { return d.BarWidth + d.PadWidth }

// VerticalBar lays out n bars across width. Bars aim for a 70/30 bar to gap
// ratio but never grow wider than MaxBarWidth; gaps stay within
// [MinBarPadding, MaxBarPadding]. Whatever is left becomes outer padding,
// so n*BarWidth + (n-1)*PadWidth never exceeds width.
func VerticalBar(width float64, n int) VerticalBarDims {
	if n <= 0 || width <= 0 {
		return VerticalBarDims{TotalWidth: math.Max(width, 0)}
	}
	count := float64(n)
	pads := count - 1

	var bar, pad float64
	if n == 1 {
		bar = math.Min(width, MaxBarWidth)
	} else {
		pad = width * TargetPaddingRatio / (TargetPaddingRatio*pads + TargetBarRatio*count)
		bar = (width - pad*pads) / count
		if bar > MaxBarWidth {
			pad = (width - MaxBarWidth*count) / pads
		}
		pad = clamp(pad, MinBarPadding, MaxBarPadding)
		bar = math.Min(MaxBarWidth, (width-pad*pads)/count)
		if bar < 0 {
			bar, pad = 0, width/pads
		}
	}

	group := bar*count + pad*pads
	step := bar + pad
	return VerticalBarDims{
		BarWidth:      bar,
		PadWidth:      pad,
		PadRatio:      ratio(pad, step),
		OuterRatio:    ratio((width-group)/2, step),
		BarGroupWidth: group,
		TotalWidth:    width,
		AxisOffset:    -bar / 2,
	}
}

// HorizontalBarDims is the geometry of a horizontal bar chart.
type HorizontalBarDims struct {
	BarHeight   float64 `json:"bar_height"`
	PadHeight   float64 `json:"pad_height"`
	PadRatio    float64 `json:"pad_ratio"`
	OuterRatio  float64 `json:"outer_ratio"`
	TotalHeight float64 `json:"total_height"`
	AxisOffset  float64 `json:"axis_offset"`
}

// HorizontalBar lays out n bars of fixed, readable height. The chart grows
// with n: callers pass TotalHeight back into the bounds as the inner height.
func HorizontalBar(n int) HorizontalBarDims {
	d := HorizontalBarDims{
		BarHeight:  BarHeight,
		PadHeight:  BarPadHeight,
		PadRatio:   ratio(BarPadHeight, BarHeight+BarPadHeight),
		AxisOffset: -(BarHeight / 2) - BarAxisOffset,
	}
	if n > 0 {
		d.TotalHeight = float64(n)*BarHeight + float64(n-1)*BarPadHeight
	}
	return d
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ratio returns num/den, or 0 when den is not positive.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
