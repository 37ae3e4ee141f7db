package fn

import (
	"slices"
	"testing"
)

type row struct {
	name  string
	value float64
}

func TestValue(t *testing.T) {
	c := Const[row]("black")
	if got := c.Of(row{}); got != "black" {
		t.Errorf("Const.Of() = %q, want black", got)
	}
	if c.IsAccessor() {
		t.Error("Const should not be an accessor")
	}

	a := Accessor(func(r row) float64 { return r.value * 2 })
	if got := a.Of(row{value: 21}); got != 42 {
		t.Errorf("Accessor.Of() = %v, want 42", got)
	}
	if !a.IsAccessor() {
		t.Error("Accessor should report IsAccessor")
	}

	var zero Value[row, float64]
	if got := zero.Of(row{value: 3}); got != 0 {
		t.Errorf("zero Value.Of() = %v, want 0", got)
	}
}

func TestEither(t *testing.T) {
	if got := Either(nil, 1.0); got != 1 {
		t.Errorf("Either(nil) = %v, want 1", got)
	}
	if got := Either(Ptr(0.0), 1.0); got != 0 {
		t.Errorf("Either(&0) = %v, want 0", got)
	}
}

func TestSet(t *testing.T) {
	got := Set([]int{2, 1, 1, 6, 8, 6, 5, 3}, func(i int) int { return i })
	want := []int{2, 1, 6, 8, 5, 3}
	if !slices.Equal(got, want) {
		t.Errorf("Set() = %v, want %v", got, want)
	}

	rows := []row{{"b", 1}, {"a", 2}, {"b", 3}}
	names := Set(rows, func(r row) string { return r.name })
	if !slices.Equal(names, []string{"b", "a"}) {
		t.Errorf("Set(rows) = %v", names)
	}
}

func TestGroupBy(t *testing.T) {
	rows := []row{{"b", 1}, {"a", 2}, {"b", 3}}
	groups := GroupBy(rows, func(r row) string { return r.name })
	if len(groups["b"]) != 2 || groups["b"][1].value != 3 {
		t.Errorf("GroupBy()[b] = %v", groups["b"])
	}
	if len(groups["a"]) != 1 {
		t.Errorf("GroupBy()[a] = %v", groups["a"])
	}
}

func TestFind(t *testing.T) {
	rows := []row{{"b", 1}, {"a", 2}}
	r, ok := Find(rows, func(r row) bool { return r.value > 1 })
	if !ok || r.name != "a" {
		t.Errorf("Find() = %v, %v", r, ok)
	}
	if _, ok := Find(rows, func(r row) bool { return r.value > 5 }); ok {
		t.Error("Find() should miss")
	}
}
