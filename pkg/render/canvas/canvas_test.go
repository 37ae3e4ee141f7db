package canvas

import (
	"bytes"
	"strings"
	"testing"
)

func TestEnsurePatternOnce(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, 100, 50, WithSeed("chart"))
	url1 := c.EnsurePattern(MapMissingValue)
	url2 := c.EnsurePattern(MapMissingValue)
	c.Close()

	if url1 != url2 {
		t.Errorf("EnsurePattern() urls differ: %q vs %q", url1, url2)
	}
	if want := "url(#" + c.ID("missing-pattern") + ")"; url1 != want {
		t.Errorf("EnsurePattern() = %q, want %q", url1, want)
	}
	out := buf.String()
	if n := strings.Count(out, "<pattern"); n != 1 {
		t.Errorf("document has %d pattern definitions, want 1", n)
	}
	if !strings.Contains(out, `fill="#BFBFBF"`) {
		t.Error("missing value pattern background not written")
	}
}

func TestSeedDeterministic(t *testing.T) {
	a := New(&bytes.Buffer{}, 10, 10, WithSeed("map-kreis@516"))
	b := New(&bytes.Buffer{}, 10, 10, WithSeed("map-kreis@516"))
	c := New(&bytes.Buffer{}, 10, 10, WithSeed("map-kreis@320"))

	if a.Prefix() != b.Prefix() {
		t.Errorf("same seed, different prefixes: %q vs %q", a.Prefix(), b.Prefix())
	}
	if a.Prefix() == c.Prefix() {
		t.Errorf("different seeds share prefix %q", a.Prefix())
	}
	if r1, r2 := New(&bytes.Buffer{}, 1, 1, WithRandomIDs()), New(&bytes.Buffer{}, 1, 1, WithRandomIDs()); r1.Prefix() == r2.Prefix() {
		t.Error("random prefixes collide")
	}
}

func TestLayersBalanced(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, 200, 100, WithClass("sszvis-chart"))
	c.Layer("outer", 10, 5)
	c.Layer("inner", 0, 0, Attr("data-name", `a<b`))
	c.Close()

	out := buf.String()
	if open, closed := strings.Count(out, "<g"), strings.Count(out, "</g>"); open != 2 || closed != 2 {
		t.Errorf("groups open=%d closed=%d, want 2/2", open, closed)
	}
	for _, want := range []string{`class="outer"`, `transform="translate(10,5)"`, `data-name="a&lt;b"`, `class="sszvis-chart"`, "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, `class="inner" transform`) {
		t.Error("zero translate written")
	}
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{Num(1.5), "1.5"},
		{Num(-0.25), "-0.25"},
		{Translate(0, 2), "translate(0,2)"},
		{Rotate(-45), "rotate(-45)"},
		{Classes("a", "", "b"), "a b"},
		{Attr("title", `"x"`), `title="&#34;x&#34;"`},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
