package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/statviz/pkg/chart"
	"github.com/matzehuels/statviz/pkg/render/sink"
)

// Render writes l in every format of opts. The spec supplies the title for
// formats that carry one; opts.Title overrides it.
func Render(ctx context.Context, l *chart.Layout, spec *chart.Spec, opts Options) (map[string][]byte, error) {
	title := opts.Title
	if title == "" && spec != nil {
		title = spec.Title
	}
	var svgOpts []sink.SVGOption
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatHTML:
			htmlOpts := []sink.HTMLOption{sink.WithTitle(title), sink.WithHTMLSVGOptions(svgOpts...)}
			if spec != nil && strings.HasPrefix(strings.ToLower(spec.Locale), "en") {
				htmlOpts = append(htmlOpts, sink.WithLang("en"))
			}
			data, err = sink.RenderHTML(l, htmlOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(l, sink.WithJSONTitle(title), sink.WithJSONVersion(opts.Version))
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l, sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l)
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
