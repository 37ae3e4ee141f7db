package layout

import "math"

// DefaultCellSide is the preferred side of a heat table cell.
const DefaultCellSide = 30

// Padding is the space reserved around a heat table for axes and legend.
type Padding struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// HeatTableDims is the geometry of a grid of square cells.
type HeatTableDims struct {
	Side       float64 `json:"side"`
	PaddedSide float64 `json:"padded_side"`
	PadRatio   float64 `json:"pad_ratio"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	// CenteredOffset moves the table to the middle of the available width.
	CenteredOffset float64 `json:"centered_offset"`
}

// HeatTable fits numX columns into width minus the horizontal padding, with
// pad pixels between cells. Cells are square: the side is chosen from the
// horizontal constraint only and the height follows from numY. The side is
// floored to whole pixels so adjacent cells do not leave anti-aliased seams.
func HeatTable(width, pad float64, numX, numY int, padding Padding) HeatTableDims {
	inner := width - padding.Left - padding.Right

	sidePad := float64(DefaultCellSide) + pad
	if numX > 0 {
		sidePad = math.Min(inner/float64(numX), sidePad)
	}
	side := math.Max(0, math.Floor(sidePad-pad))
	padded := side + pad

	d := HeatTableDims{
		Side:       side,
		PaddedSide: padded,
		PadRatio:   1 - ratio(side, padded),
		Width:      extent(numX, padded, pad),
		Height:     extent(numY, padded, pad),
	}
	if padded <= 0 {
		d.PadRatio = 0
	}
	d.CenteredOffset = (inner - d.Width) / 2
	return d
}

func extent(n int, step, pad float64) float64 {
	if n <= 0 {
		return 0
	}
	return math.Max(0, float64(n)*step-pad)
}
