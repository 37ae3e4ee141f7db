package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/statviz/pkg/errors"
	"github.com/matzehuels/statviz/pkg/pipeline"
)

// watchDebounce coalesces the bursts of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

// watchCommand creates the watch command, which re-renders a spec whenever
// it or one of the files next to it changes.
func (c *CLI) watchCommand() *cobra.Command {
	var formats string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "watch [spec.toml]",
		Short: "Re-render a chart spec whenever it changes",
		Args:  cobra.ExactArgs(1),
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
			return watch(ctx, cmd.OutOrStdout(), args[0], func() error {
				result, paths, err := runRender(ctx, runner, args[0], &opts)
				if err != nil {
					return err
				}
				printStats(cmd.OutOrStdout(), len(result.Spec.Data), result.Stats.Breakpoint, opts.width, result.CacheInfo.RenderHit)
				for _, p := range paths {
					printFile(cmd.OutOrStdout(), p)
				}
				return nil
			})
		},
	}
	opts.bind(cmd, &formats)
	return cmd
}

// watch calls render once and again after every change in the directory
// of path, until ctx is canceled. Render errors are reported and watching
// continues, so a half-edited spec does not end the session.
func watch(ctx context.Context, out io.Writer, path string, render func() error) error {
	logger := loggerFromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create watcher")
	}
	defer w.Close()

	// Editors often replace the file, so watch the directory.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return errors.Wrap(errors.ErrCodeLoad, err, "watch %s", dir)
	}

	run := func() {
		if err := render(); err != nil {
			printError(out, "%s", errors.UserMessage(err))
			logger.Debug("render failed", "error", err)
		}
	}
	run()
	printInfo(out, "Watching %s (ctrl+c to stop)", dir)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, path) {
				continue
			}
			logger.Debug("change", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", dir, err)
		case <-fire:
			fire = nil
			run()
		}
	}
}

// relevant reports whether ev can change the chart of spec: writes to
// TOML and GeoJSON files. The JSON layout render writes next to the spec
// is ignored so that writing it does not trigger another render.
func relevant(ev fsnotify.Event, spec string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	switch filepath.Ext(ev.Name) {
	case ".toml", ".geojson":
		return true
	case ".json":
		return stem(ev.Name) != stem(spec)
	}
	return false
}

func stem(path string) string {
	path = filepath.Clean(path)
	return strings.TrimSuffix(path, filepath.Ext(path))
}
