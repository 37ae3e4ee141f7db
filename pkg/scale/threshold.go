package scale

import (
	"math"
	"slices"
	"sort"
)

// Threshold maps numbers to one of len(thresholds)+1 outputs. Values below
// the first threshold map to the first output, values at or above the last
// threshold map to the last one.
type Threshold[T any] struct {
	thresholds []float64
	outputs    []T
}

// NewThreshold returns a threshold scale. Thresholds must be ascending and
// outputs must have one more element than thresholds; surplus outputs are
// ignored and missing ones map to the zero T.
func NewThreshold[T any](thresholds []float64, outputs []T) Threshold[T] {
	return Threshold[T]{
		thresholds: slices.Clone(thresholds),
		outputs:    slices.Clone(outputs),
	}
}

// Map returns the output for v. NaN maps to the zero T.
func (s Threshold[T]) Map(v float64) T {
	var zero T
	if math.IsNaN(v) {
		return zero
	}
	i := sort.SearchFloat64s(s.thresholds, v)
	// SearchFloat64s finds the first threshold >= v; a value equal to a
	// threshold belongs to the bin above it.
	if i < len(s.thresholds) && s.thresholds[i] == v {
		i++
	}
	if i < len(s.outputs) {
		return s.outputs[i]
	}
	return zero
}

// Thresholds returns the bin boundaries.
func (s Threshold[T]) Thresholds() []float64 { return slices.Clone(s.thresholds) }

// Outputs returns the bin outputs.
func (s Threshold[T]) Outputs() []T { return slices.Clone(s.outputs) }
