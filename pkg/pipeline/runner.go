package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/statviz/pkg/cache"
	"github.com/matzehuels/statviz/pkg/chart"
	"github.com/matzehuels/statviz/pkg/errors"
	"github.com/matzehuels/statviz/pkg/observability"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state, so one Runner can serve concurrent
// runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer uses the DefaultKeyer, a nil
// cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs decode → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{}

	// Stage 1: Decode
	start := time.Now()
	spec, hash, err := r.Decode(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Spec, result.SpecHash = spec, hash
	result.Stats.Rows = len(spec.Data)
	result.Stats.DecodeTime = time.Since(start)
	opts.Logger.Debug("decoded spec", "chart", spec.Name, "type", spec.Type, "rows", len(spec.Data), "hash", hash[:12])

	// Every cached format skips the layout.
	if artifacts, ok := r.cached(ctx, hash, opts); ok {
		result.Artifacts = artifacts
		result.CacheInfo.RenderHit = true
		if bp, err := chart.Breakpoint(spec, opts.Measurer()); err == nil {
			result.Stats.Breakpoint = bp
		}
		opts.Logger.Info("served from cache", "chart", spec.Name, "formats", opts.Formats)
		return result, nil
	}

	// Stage 2: Layout
	start = time.Now()
	l, err := r.Layout(ctx, spec, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.Breakpoint = l.Breakpoint
	result.Stats.LayoutTime = time.Since(start)
	opts.Logger.Info("computed layout",
		"chart", spec.Name,
		"breakpoint", l.Breakpoint,
		"width", l.Bounds.Width,
		"height", l.Bounds.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	start = time.Now()
	artifacts, err := r.Render(ctx, l, spec, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	opts.Logger.Info("rendered outputs", "formats", opts.Formats, "duration", result.Stats.RenderTime)

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return result, nil
}

// Decode reads, decodes and validates the spec and loads its GeoJSON. The
// returned hash covers the spec source and the GeoJSON files.
func (r *Runner) Decode(ctx context.Context, opts Options) (spec *chart.Spec, hash string, err error) {
	name := opts.Name
	if name == "" && opts.SpecPath != "" {
		name = strings.TrimSuffix(filepath.Base(opts.SpecPath), filepath.Ext(opts.SpecPath))
	}
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, name)
	start := time.Now()
	defer func() {
		var chartType string
		var rows int
		if spec != nil {
			chartType, rows = spec.Type, len(spec.Data)
		}
		hooks.OnDecodeComplete(ctx, name, chartType, rows, time.Since(start), err)
	}()

	src := []byte(opts.Spec)
	fsys := opts.GeoFS
	if opts.Spec == "" {
		if src, err = os.ReadFile(opts.SpecPath); err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeLoad, err, "read spec %s", opts.SpecPath)
		}
		if fsys == nil {
			fsys = os.DirFS(filepath.Dir(opts.SpecPath))
		}
	}

	spec, err = chart.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, "", err
	}
	if opts.Name != "" || spec.Name == "" {
		spec.Name = name
	}
	if fsys != nil {
		if err = spec.LoadGeo(fsys); err != nil {
			return nil, "", err
		}
	}
	if err = spec.Validate(); err != nil {
		return nil, "", err
	}

	h, err := specHash(src, spec, fsys)
	if err != nil {
		return nil, "", err
	}
	return spec, h, nil
}

// specHash hashes the spec source together with the GeoJSON files it
// references, so that editing a map file invalidates cached renders.
func specHash(src []byte, spec *chart.Spec, fsys fs.FS) (string, error) {
	parts := [][]byte{src, []byte(spec.Name)}
	if fsys != nil {
		for _, name := range []string{spec.Geo.Path, spec.Geo.Lakes} {
			if name == "" {
				continue
			}
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return "", errors.Wrap(errors.ErrCodeLoad, err, "read geojson %s", name)
			}
			parts = append(parts, data)
		}
	}
	return cache.Hash(bytes.Join(parts, []byte{0})), nil
}

// Layout computes the geometry of spec for the measurement in opts.
func (r *Runner) Layout(ctx context.Context, spec *chart.Spec, opts Options) (*chart.Layout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, spec.Type, opts.Width)
	start := time.Now()

	l, err := chart.Compute(spec, opts.Measurer())
	var bp string
	if l != nil {
		bp = l.Breakpoint
	}
	hooks.OnLayoutComplete(ctx, spec.Type, bp, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", spec.Name, err)
	}
	return l, nil
}

// Render writes the layout in every requested format.
func (r *Runner) Render(ctx context.Context, l *chart.Layout, spec *chart.Spec, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := Render(ctx, l, spec, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func (r *Runner) cached(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
