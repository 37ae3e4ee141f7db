// Package pipeline runs the decode → layout → render sequence shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: read the TOML chart spec and the GeoJSON it references
//  2. Layout: measure, resolve responsive props and compute the geometry
//  3. Render: write the geometry in the requested formats
//
// Rendered artifacts are cached under a key built from the spec content and
// everything else that changes the output (width, format, ...). When every
// requested format is cached the layout stage is skipped.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    SpecPath: "charts/einwohner.toml",
//	    Width:    640,
//	    Formats:  []string{"svg", "json"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/statviz/pkg/bounds"
	"github.com/matzehuels/statviz/pkg/cache"
	"github.com/matzehuels/statviz/pkg/chart"
	"github.com/matzehuels/statviz/pkg/errors"
	"github.com/matzehuels/statviz/pkg/measure"
	"github.com/matzehuels/statviz/pkg/render/sink"
)

const (
	// DefaultWidth is the container width used when none is given.
	DefaultWidth = float64(bounds.DefaultWidth)

	// MaxWidth bounds requested widths; wider containers do not change
	// any chart beyond its max width anyway.
	MaxWidth = 10000.0

	// DefaultScale is the PNG resolution factor.
	DefaultScale = sink.DefaultPNGScale
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatHTML: true,
	FormatJSON: true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatHTML: "text/html; charset=utf-8",
	FormatJSON: "application/json",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
}

// Options contains all configuration for one pipeline run.
// The exported fields serialize as the body of the HTTP render endpoint.
type Options struct {
	// Spec is the TOML chart definition. SpecPath is read when Spec is empty.
	Spec     string `json:"spec,omitempty"`
	SpecPath string `json:"-"`

	// Name overrides the chart name.
	Name string `json:"name,omitempty"`

	// Measurement of the target container.
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	ScreenWidth  float64 `json:"screen_width,omitempty"`
	ScreenHeight float64 `json:"screen_height,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Title       string   `json:"title,omitempty"`

	// Refresh bypasses cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	// GeoFS resolves GeoJSON paths. It defaults to the directory of
	// SpecPath; specs given inline cannot reference GeoJSON without it.
	GeoFS   fs.FS       `json:"-"`
	Version string      `json:"-"`
	Logger  *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Spec is the decoded chart spec.
	Spec *chart.Spec

	// SpecHash is the content hash of the spec and its GeoJSON files.
	SpecHash string

	// Layout is the computed geometry. It is nil when every artifact came
	// from the cache.
	Layout *chart.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	Breakpoint string
	DecodeTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it again has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Spec == "" && o.SpecPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "spec or spec path is required")
	}
	for name, v := range map[string]float64{
		"width": o.Width, "height": o.Height, "screen_width": o.ScreenWidth, "screen_height": o.ScreenHeight,
	} {
		if v < 0 || v > MaxWidth {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be between 0 and %v, got %v", name, MaxWidth, v)
		}
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}

	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Measurer returns the container measurement described by o.
func (o *Options) Measurer() measure.Measurer {
	return measure.Fixed{
		Width:        o.Width,
		Height:       o.Height,
		ScreenWidth:  o.ScreenWidth,
		ScreenHeight: o.ScreenHeight,
	}
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:       format,
		Width:        o.Width,
		Height:       o.Height,
		ScreenWidth:  o.ScreenWidth,
		ScreenHeight: o.ScreenHeight,
		Version:      o.Version,
	}
	switch format {
	case FormatSVG, FormatHTML:
		opts.Interactive = o.Interactive
	case FormatPNG:
		opts.Scale = o.Scale
	}
	if format == FormatHTML || format == FormatJSON {
		opts.Title = o.Title
	}
	return opts
}

// String summarizes the options for logs.
func (o *Options) String() string {
	src := o.SpecPath
	if src == "" {
		src = "inline"
	}
	return fmt.Sprintf("%s@%vpx [%s]", src, o.Width, strings.Join(o.Formats, ","))
}
