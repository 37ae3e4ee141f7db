// Package pkg provides the libraries behind statviz, a responsive charting
// toolkit: charts are laid out for a measured container width and rendered
// as SVG, HTML, JSON, PNG or PDF.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. Measurement and responsiveness: [measure], [responsive], [bounds]
//  2. Geometry: [layout], [scale], [format] and the render packages
//     ([render/axis], [render/mark], [render/tooltip], [render/canvas])
//  3. Charts: [chart] decodes TOML specs and computes a Layout per width
//  4. Orchestration: [pipeline] (decode → layout → render) with [cache]
//     and [observability] hooks
//
// # Data Flow
//
//	TOML spec + container width
//	         ↓
//	    [chart] Decode, Validate
//	         ↓
//	    [responsive] props for the breakpoint (palm, lap, _)
//	         ↓
//	    [bounds] + [layout] + [scale] → marks, axes, tooltips
//	         ↓
//	    [render/sink] SVG/HTML/JSON/PNG/PDF
//
// A resize is a new measurement and always a full recomputation: layouts
// carry no state from one width to the next.
//
// # Quick Start
//
//	spec, err := chart.DecodeFile("einwohner.toml")
//	if err != nil {
//	    return err
//	}
//	l, err := chart.Compute(spec, measure.Width(320))
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(l, sink.WithInteraction())
//
// [measure]: github.com/matzehuels/statviz/pkg/measure
// [responsive]: github.com/matzehuels/statviz/pkg/responsive
// [bounds]: github.com/matzehuels/statviz/pkg/bounds
// [layout]: github.com/matzehuels/statviz/pkg/layout
// [scale]: github.com/matzehuels/statviz/pkg/scale
// [format]: github.com/matzehuels/statviz/pkg/format
// [render/axis]: github.com/matzehuels/statviz/pkg/render/axis
// [render/mark]: github.com/matzehuels/statviz/pkg/render/mark
// [render/tooltip]: github.com/matzehuels/statviz/pkg/render/tooltip
// [render/canvas]: github.com/matzehuels/statviz/pkg/render/canvas
// [render/sink]: github.com/matzehuels/statviz/pkg/render/sink
// [chart]: github.com/matzehuels/statviz/pkg/chart
// [pipeline]: github.com/matzehuels/statviz/pkg/pipeline
// [cache]: github.com/matzehuels/statviz/pkg/cache
// [observability]: github.com/matzehuels/statviz/pkg/observability
package pkg
