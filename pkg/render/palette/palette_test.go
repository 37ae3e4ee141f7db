package palette

import (
	"math"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestOrdinal(t *testing.T) {
	o := Qual6().WithDomain([]string{"a", "b", "a", "c"})
	if got := o.Map("a"); got != qual6[0] {
		t.Errorf("Map(a) = %s", got)
	}
	if got := o.Map("c"); got != qual6[2] {
		t.Errorf("Map(c) = %s, want third color", got)
	}
	if got := o.Map("unknown"); got != qual6[0] {
		t.Errorf("Map(unknown) = %s, want first color", got)
	}

	keys := make([]string, 8)
	for i := range keys {
		keys[i] = string(rune('a' + i))
	}
	cyc := Qual6().WithDomain(keys)
	if cyc.Map("g") != cyc.Map("a") {
		t.Error("palette does not cycle")
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "qual12", "qual6", "qual6a", "qual6b"} {
		if _, ok := ByName(name); !ok {
			t.Errorf("ByName(%q) not found", name)
		}
	}
	if _, ok := ByName("rainbow"); ok {
		t.Error("ByName(rainbow) succeeded")
	}
}

func lightness(t *testing.T, hex string) float64 {
	t.Helper()
	c, err := colorful.Hex(hex)
	if err != nil {
		t.Fatalf("Hex(%q): %v", hex, err)
	}
	_, _, l := c.Hsl()
	return l
}

func TestDarker(t *testing.T) {
	base := "#5182B3"
	if lightness(t, SlightlyDarker(base)) >= lightness(t, base) {
		t.Error("SlightlyDarker did not darken")
	}
	if lightness(t, Darker(base, 1)) >= lightness(t, SlightlyDarker(base)) {
		t.Error("Darker(1) is not darker than SlightlyDarker")
	}
	if got := Darker("url(#pattern)", 1); got != "url(#pattern)" {
		t.Errorf("Darker(pattern) = %q", got)
	}

	dark := Qual12().Darker()
	if dark.Map("x") == Qual12().Map("x") {
		t.Error("Ordinal.Darker() left colors unchanged")
	}
}

func TestSequential(t *testing.T) {
	s := SeqBlu(0, 100)
	if got := s.Map(0); !strings.EqualFold(got, seqBlu[0]) {
		t.Errorf("Map(lo) = %s, want %s", got, seqBlu[0])
	}
	if got := s.Map(100); !strings.EqualFold(got, seqBlu[2]) {
		t.Errorf("Map(hi) = %s, want %s", got, seqBlu[2])
	}
	if got := s.Map(-50); got != s.Map(0) {
		t.Errorf("Map below domain = %s, want clamped", got)
	}
	if got := s.Map(50); !strings.EqualFold(got, seqBlu[1]) {
		t.Errorf("Map(mid) = %s, want middle stop %s", got, seqBlu[1])
	}
	if l0, l1 := lightness(t, s.Map(25)), lightness(t, s.Map(75)); l1 >= l0 {
		t.Errorf("sequential palette not monotone: %v >= %v", l1, l0)
	}
	if got := s.Map(math.NaN()); got != "" {
		t.Errorf("Map(NaN) = %q", got)
	}
}
