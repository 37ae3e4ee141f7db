package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/statviz/pkg/chart"
	"github.com/matzehuels/statviz/pkg/render/canvas"
)

const hoverCSS = `
    [data-key] { transition: opacity 0.2s ease; }
    .sszvis-svg.hovering [data-key]:not(.sszvis-tooltip-anchor) { opacity: 0.6; }
    .sszvis-svg.hovering [data-key].highlight { opacity: 1; }`

const hoverJS = `
    (function() {
      var root = document.currentScript ? document.currentScript.closest('svg') : null;
      if (!root) { return; }
      function marks(key) { return root.querySelectorAll('[data-key="' + CSS.escape(key) + '"]'); }
      root.querySelectorAll('[data-key]').forEach(function(el) {
        el.addEventListener('mouseenter', function() {
          root.classList.add('hovering');
          marks(el.dataset.key).forEach(function(m) { m.classList.add('highlight'); });
        });
        el.addEventListener('mouseleave', function() {
          root.classList.remove('hovering');
          root.querySelectorAll('.highlight').forEach(function(m) { m.classList.remove('highlight'); });
        });
      });
    })();`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interactive bool
	canvasOpts  []canvas.Option
}

// WithInteraction adds hover highlighting: marks sharing a data key with
// the hovered element stay opaque while the rest fade.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithRandomIDs gives every document its own id prefix. Use it when the
// same chart is embedded several times on one page.
func WithRandomIDs() SVGOption {
	return func(r *svgRenderer) { r.canvasOpts = append(r.canvasOpts, canvas.WithRandomIDs()) }
}

// RenderSVG writes the layout as a standalone SVG document. It does not
// modify l and is safe to call concurrently.
func RenderSVG(l *chart.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	l.Draw(&buf, r.canvasOpts...)
	if !r.interactive {
		return buf.Bytes()
	}

	out := buf.Bytes()
	end := bytes.LastIndex(out, []byte("</svg>"))
	if end < 0 {
		return out
	}
	var extra bytes.Buffer
	fmt.Fprintf(&extra, "  <style>%s\n  </style>\n", hoverCSS)
	fmt.Fprintf(&extra, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", hoverJS)

	result := make([]byte, 0, len(out)+extra.Len())
	result = append(result, out[:end]...)
	result = append(result, extra.Bytes()...)
	return append(result, out[end:]...)
}
