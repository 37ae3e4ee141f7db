package sink

import (
	"bytes"
	"html/template"

	"github.com/matzehuels/statviz/pkg/chart"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 16px; font-family: Arial, sans-serif; }
    .sszvis-container { max-width: {{.Width}}px; }
    .sszvis-container h1 { font-size: 16px; margin: 0 0 8px; }
  </style>
</head>
<body>
  <div class="sszvis-container" data-chart="{{.Name}}" data-breakpoint="{{.Breakpoint}}">
{{- if .Title}}
    <h1>{{.Title}}</h1>
{{- end}}
    {{.SVG}}
  </div>
</body>
</html>
`))

// HTMLOption configures HTML rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title   string
	lang    string
	svgOpts []SVGOption
}

// WithTitle sets the page title and heading.
func WithTitle(title string) HTMLOption { return func(r *htmlRenderer) { r.title = title } }

// WithLang sets the document language.
func WithLang(lang string) HTMLOption { return func(r *htmlRenderer) { r.lang = lang } }

// WithHTMLSVGOptions passes options through to the underlying SVG renderer.
func WithHTMLSVGOptions(opts ...SVGOption) HTMLOption {
	return func(r *htmlRenderer) { r.svgOpts = opts }
}

// RenderHTML embeds the chart in a standalone page whose container is as
// wide as the layout.
func RenderHTML(l *chart.Layout, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{lang: "de"}
	for _, opt := range opts {
		opt(&r)
	}

	data := struct {
		Lang, Title, Name, Breakpoint string
		Width                         float64
		SVG                           template.HTML
	}{
		Lang:       r.lang,
		Title:      r.title,
		Name:       l.Name,
		Breakpoint: l.Breakpoint,
		Width:      l.Bounds.Width,
		SVG:        template.HTML(inline(RenderSVG(l, r.svgOpts...))),
	}
	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// inline drops the XML prolog, which has no place inside an HTML body.
func inline(svg []byte) []byte {
	if i := bytes.Index(svg, []byte("<svg")); i > 0 {
		return svg[i:]
	}
	return svg
}
