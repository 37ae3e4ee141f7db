package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/statviz/pkg/cache"
	"github.com/matzehuels/statviz/pkg/errors"
	"github.com/matzehuels/statviz/pkg/pipeline"
)

const testSpec = `
type = "vbar"
title = "Einwohner"

[x]
field = "kreis"

[y]
field = "einwohner"

[[data]]
kreis = "Kreis 1"
einwohner = 5800

[[data]]
kreis = "Kreis 2"
einwohner = 31000
`

func writeSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "einwohner.toml")
	if err := os.WriteFile(path, []byte(testSpec), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"render", "preview", "watch", "serve", "types", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	spec := writeSpec(t)
	base := filepath.Join(filepath.Dir(spec), "out")

	out, err := execute(t, "render", spec, "--width", "320", "-f", "svg,json", "-o", base, "--cache", "none")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Rendered einwohner", "palm", "320px", base + ".svg"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(svg), []byte("<?xml")) || !bytes.Contains(svg, []byte("sszvis-svg")) {
		t.Errorf("unexpected svg output: %.80s", svg)
	}
	js, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(js, []byte(`"breakpoint": "palm"`)) {
		t.Errorf("json layout should report the palm breakpoint: %.200s", js)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	spec := writeSpec(t)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"render", spec, "-f", "gif", "--cache", "none"}, errors.ErrCodeInvalidFormat},
		{"missing spec", []string{"render", spec + ".missing", "--cache", "none"}, errors.ErrCodeLoad},
		{"negative width", []string{"render", spec, "--width", "-1", "--cache", "none"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRunRenderCaching(t *testing.T) {
	spec := writeSpec(t)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(c, nil, newLogger(io.Discard, LogInfo))
	opts := &renderOpts{formats: []string{"svg"}, width: 600}
	ctx := context.Background()

	first, paths, err := runRender(ctx, runner, spec, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit || len(paths) != 1 || !strings.HasSuffix(paths[0], "einwohner.svg") {
		t.Errorf("first render: hit=%v paths=%v", first.CacheInfo.RenderHit, paths)
	}

	second, _, err := runRender(ctx, runner, spec, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit || second.Stats.Breakpoint != "lap" {
		t.Errorf("second render: hit=%v breakpoint=%q", second.CacheInfo.RenderHit, second.Stats.Breakpoint)
	}

	opts.refresh = true
	third, _, err := runRender(ctx, runner, spec, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestTypesCommand(t *testing.T) {
	out, err := execute(t, "types")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"vbar", "heattable", "map", "x.field", "geo.path"} {
		if !strings.Contains(out, want) {
			t.Errorf("types output lacks %q", want)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	spec := writeSpec(t)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	dir := strings.TrimSpace(out)
	if filepath.Base(dir) != appName {
		t.Errorf("cache path = %q", dir)
	}

	if _, err := execute(t, "render", spec); err != nil {
		t.Fatal(err)
	}
	if n := countEntries(t, dir); n != 1 {
		t.Fatalf("cache holds %d entries after render, want 1", n)
	}
	out, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 1 cached renders") {
		t.Errorf("clear output = %q", out)
	}
	if n := countEntries(t, dir); n != 0 {
		t.Errorf("cache holds %d entries after clear, want 0", n)
	}
}

func countEntries(t *testing.T, dir string) int {
	t.Helper()
	var n int
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() && filepath.Ext(path) == ".json" {
			n++
		}
		return nil
	})
	return n
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the command name")
	}
}
