// Package render holds the drawing side of statviz.
//
// # Overview
//
// Chart geometry is computed by [chart.Compute]; the subpackages here turn
// that geometry into documents:
//
//   - [canvas]: SVG documents with layers and pattern definitions
//   - [axis]: axis renderer (ticks, labels, titles, highlighting)
//   - [mark]: bars, lines, dots, pie slices and GeoJSON areas
//   - [tooltip]: anchors, orientation fitting and tooltip boxes
//   - [palette]: qualitative and sequential color scales
//   - [text]: label measurement and wrapping
//   - [sink]: output formats (SVG, HTML, JSON, PNG, PDF)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG document using the external
// rsvg-convert tool from librsvg:
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// [chart.Compute]: github.com/matzehuels/statviz/pkg/chart.Compute
// [canvas]: github.com/matzehuels/statviz/pkg/render/canvas
// [axis]: github.com/matzehuels/statviz/pkg/render/axis
// [mark]: github.com/matzehuels/statviz/pkg/render/mark
// [tooltip]: github.com/matzehuels/statviz/pkg/render/tooltip
// [palette]: github.com/matzehuels/statviz/pkg/render/palette
// [text]: github.com/matzehuels/statviz/pkg/render/text
// [sink]: github.com/matzehuels/statviz/pkg/render/sink
package render
