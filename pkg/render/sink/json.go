package sink

import (
	"encoding/json"

	"github.com/matzehuels/statviz/pkg/chart"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title   string
	version string
	compact bool
}

// WithJSONTitle records the chart title.
func WithJSONTitle(title string) JSONOption { return func(r *jsonRenderer) { r.title = title } }

// WithJSONVersion records the version of the tool that computed the layout.
func WithJSONVersion(v string) JSONOption { return func(r *jsonRenderer) { r.version = v } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Version string `json:"version,omitempty"`
	Title   string `json:"title,omitempty"`
	*chart.Layout
}

// RenderJSON exports the layout as a JSON document: bounds, resolved props,
// axis ticks, mark geometry, tooltip anchors and boxes.
func RenderJSON(l *chart.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Version: r.version, Title: r.title, Layout: l}
	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
