// Package layout derives chart geometry from the available space and the
// number of items to place.
//
// The calculators are pure functions. Their results feed band scales (see
// package scale) through the pad and outer ratios, and for charts whose size
// depends on the data (horizontal bars, heat tables) the computed extent is
// fed back into the bounds calculation.
//
// Item counts of zero never panic or divide by zero; they yield a
// zero-sized geometry.
package layout
