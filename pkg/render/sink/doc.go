// Package sink provides output format renderers for laid out charts.
//
// # Overview
//
// A "sink" transforms a computed [chart.Layout] into a final output format.
// This package provides renderers for:
//
//   - SVG: the chart document, optionally with hover highlighting
//   - HTML: a standalone page holding the SVG in a sized container
//   - JSON: the geometry (bounds, resolved props, ticks, marks) for tooling
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster output (requires rsvg-convert)
//
// Basic usage:
//
//	l, err := chart.Compute(spec, measure.Width(640))
//	svg := sink.RenderSVG(l, sink.WithInteraction())
//
// # JSON Output
//
// [RenderJSON] exports everything the layout computed. Coordinates that
// have no finite value (tooltip anchors of undefined map areas) are written
// as null.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render SVG first, then convert it via
// [render.ToPDF] and [render.ToPNG]. These require librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [chart.Layout]: github.com/matzehuels/statviz/pkg/chart.Layout
// [render.ToPDF]: github.com/matzehuels/statviz/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/statviz/pkg/render.ToPNG
package sink
