package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	stamp := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	tests := []struct {
		name string
		in   Info
		want Info
	}{
		{
			"defaults filled from stamp",
			Info{Version: "dev", Commit: "none", Date: "unknown"},
			Info{Version: "v0.3.1", Commit: "0123456789abcdef0123", Date: "2026-10-01T12:00:00Z", Modified: true},
		},
		{
			"ldflags win",
			Info{Version: "v1.0.0", Commit: "abc", Date: "2026-01-01"},
			Info{Version: "v1.0.0", Commit: "abc", Date: "2026-01-01", Modified: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fromBuildInfo(tt.in, stamp); got != tt.want {
				t.Errorf("fromBuildInfo() = %+v, want %+v", got, tt.want)
			}
		})
	}

	devel := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}
	if got := fromBuildInfo(Info{Version: "dev"}, devel); got.Version != "dev" {
		t.Errorf("devel build version = %q, want dev", got.Version)
	}
}

func TestShort(t *testing.T) {
	if got := (Info{Commit: "0123456789abcdef"}).Short(); got != "0123456789ab" {
		t.Errorf("Short() = %q", got)
	}
	if got := (Info{Commit: "none"}).Short(); got != "none" {
		t.Errorf("Short() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") || !strings.Contains(tmpl, "commit: ") {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(String(), "go: go") {
		t.Errorf("String() = %q", String())
	}
}
