// Package scale maps data domains to pixel ranges.
//
// Scales are immutable values: configuration methods return modified
// copies, so a scale built for one render can be shared by marks and axes
// without coordination. Each chart constructs its scales fresh after the
// bounds and layout are known.
//
// The scales implemented here are:
//
//   - [Band]: discrete categories onto contiguous bands with inner and outer
//     padding ratios, as produced by the layout calculators
//   - [Linear]: continuous numbers, with clamping, nice domains and ticks
//   - [Time]: instants, with calendar-aligned ticks
//   - [Threshold]: numbers onto discrete outputs such as color bins
//
// [Mirror] derives the symmetric scale of a population pyramid axis.
package scale
