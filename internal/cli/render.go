package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statviz/pkg/buildinfo"
	"github.com/matzehuels/statviz/pkg/pipeline"
)

// renderOpts holds the command-line flags shared by render and watch.
type renderOpts struct {
	output       string   // output file (single format) or base path (several)
	formats      []string // svg, html, json, png, pdf
	width        float64  // measured container width
	height       float64  // measured container height, 0 if unconstrained
	screenWidth  float64
	screenHeight float64
	interactive  bool    // hover highlighting in svg and html output
	scale        float64 // png resolution multiplier
	title        string
	cache        string // cache target: directory, redis://, mongodb:// or "none"
	refresh      bool   // ignore cached artifacts
}

func (o *renderOpts) bind(cmd *cobra.Command, formats *string) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (single format) or base path (several formats)")
	cmd.Flags().StringVarP(formats, "format", "f", "", "output format(s): svg (default), html, json, png, pdf (comma-separated)")
	cmd.Flags().Float64VarP(&o.width, "width", "w", pipeline.DefaultWidth, "container width in pixels")
	cmd.Flags().Float64Var(&o.height, "height", 0, "container height in pixels (0: unconstrained)")
	cmd.Flags().Float64Var(&o.screenWidth, "screen-width", 0, "screen width in pixels (default: container width)")
	cmd.Flags().Float64Var(&o.screenHeight, "screen-height", 0, "screen height in pixels")
	cmd.Flags().BoolVar(&o.interactive, "interactive", false, "add hover highlighting to svg and html output")
	cmd.Flags().Float64Var(&o.scale, "scale", pipeline.DefaultScale, "png resolution multiplier")
	cmd.Flags().StringVar(&o.title, "title", "", "document title (default: the chart title)")
	cmd.Flags().StringVar(&o.cache, "cache", "", "cache: directory, redis:// or mongodb:// URL, or \"none\" (default: ~/.cache/statviz)")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached artifacts")
}

func (o *renderOpts) pipelineOptions(input string) pipeline.Options {
	return pipeline.Options{
		SpecPath:     input,
		Width:        o.width,
		Height:       o.height,
		ScreenWidth:  o.screenWidth,
		ScreenHeight: o.screenHeight,
		Formats:      o.formats,
		Interactive:  o.interactive,
		Scale:        o.scale,
		Title:        o.title,
		Refresh:      o.refresh,
		Version:      buildinfo.Read().Version,
	}
}

// renderCommand creates the render command for generating chart files.
func (c *CLI) renderCommand() *cobra.Command {
	var formats string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [spec.toml]",
		Short: "Render a chart spec for a container width",
		Example: `  statviz render einwohner.toml --width 320
  statviz render einwohner.toml -f svg,html,png -o out/einwohner`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formats)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, opts.cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			result, paths, err := runRender(ctx, runner, args[0], &opts)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Rendered %s", result.Spec.Name)
			printStats(cmd.OutOrStdout(), len(result.Spec.Data), result.Stats.Breakpoint, opts.width, result.CacheInfo.RenderHit)
			for _, p := range paths {
				printFile(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	opts.bind(cmd, &formats)
	return cmd
}

// runRender executes the pipeline for input and writes one file per format.
// It returns the written paths in format order.
func runRender(ctx context.Context, runner *pipeline.Runner, input string, opts *renderOpts) (*pipeline.Result, []string, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var spin *Spinner
	if slices.Contains(opts.formats, pipeline.FormatPNG) || slices.Contains(opts.formats, pipeline.FormatPDF) {
		spin = newSpinnerWithContext(ctx, "Converting "+input)
		spin.Start()
	}
	result, err := runner.Execute(ctx, opts.pipelineOptions(input))
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return nil, nil, err
	}

	multiple := len(result.Artifacts) > 1
	var paths []string
	for _, format := range opts.formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(opts.output, input, format, multiple)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, nil, fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debugf("Wrote %s: %d bytes", path, len(data))
		paths = append(paths, path)
	}
	prog.done(fmt.Sprintf("Rendered %s at %gpx", result.Spec.Name, opts.width))
	return result, paths, nil
}
