package layout

import (
	"math"
	"testing"
)

func TestHeatTable(t *testing.T) {
	tests := []struct {
		name       string
		width, pad float64
		numX, numY int
		padding    Padding
		want       HeatTableDims
	}{
		{
			name:  "capped at default side",
			width: 1000, pad: 2, numX: 5, numY: 3,
			want: HeatTableDims{
				Side: 30, PaddedSide: 32, PadRatio: 1 - 30.0/32,
				Width: 158, Height: 94, CenteredOffset: (1000 - 158) / 2.0,
			},
		},
		{
			name:  "narrow container",
			width: 516, pad: 2, numX: 20, numY: 8,
			padding: Padding{Left: 66, Right: 0},
			// 450/20 = 22.5 -> side floor(20.5) = 20
			want: HeatTableDims{
				Side: 20, PaddedSide: 22, PadRatio: 1 - 20.0/22,
				Width: 438, Height: 174, CenteredOffset: (450 - 438) / 2.0,
			},
		},
		{
			name:  "no columns",
			width: 516, pad: 2, numX: 0, numY: 4,
			want: HeatTableDims{
				Side: 30, PaddedSide: 32, PadRatio: 1 - 30.0/32,
				Width: 0, Height: 126, CenteredOffset: 258,
			},
		},
		{
			name:  "no rows",
			width: 516, pad: 2, numX: 4, numY: 0,
			want: HeatTableDims{
				Side: 30, PaddedSide: 32, PadRatio: 1 - 30.0/32,
				Width: 126, Height: 0, CenteredOffset: (516 - 126) / 2.0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HeatTable(tt.width, tt.pad, tt.numX, tt.numY, tt.padding)
			if got != tt.want {
				t.Errorf("HeatTable() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHeatTableSquareCells(t *testing.T) {
	for _, width := range []float64{0, 40, 300, 516, 1200} {
		for _, numX := range []int{0, 1, 6, 31} {
			for _, numY := range []int{0, 1, 4, 50} {
				d := HeatTable(width, 2, numX, numY, Padding{})
				if d.Side < 0 || d.Side != math.Floor(d.Side) {
					t.Fatalf("HeatTable(%v,%d,%d): side %v is not a whole pixel", width, numX, numY, d.Side)
				}
				if numX > 0 && d.Width != float64(numX)*d.PaddedSide-2 && d.Width != 0 {
					t.Errorf("HeatTable(%v,%d,%d): width %v not derived from side", width, numX, numY, d.Width)
				}
				if numY > 0 && d.Height != float64(numY)*d.PaddedSide-2 && d.Height != 0 {
					t.Errorf("HeatTable(%v,%d,%d): height %v not derived from side", width, numX, numY, d.Height)
				}
				if d.Side > 0 && d.Width > width {
					t.Errorf("HeatTable(%v,%d,%d): width %v overflows", width, numX, numY, d.Width)
				}
			}
		}
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("Right/Bottom = %v/%v", r.Right(), r.Bottom())
	}
	if r.CenterX() != 25 || r.CenterY() != 40 {
		t.Errorf("CenterX/CenterY = %v/%v", r.CenterX(), r.CenterY())
	}
	if r.Empty() {
		t.Error("Empty() = true")
	}
	if !(Rect{Width: 5}).Empty() {
		t.Error("zero-height rect not empty")
	}
}
