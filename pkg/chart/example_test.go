package chart_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/statviz/pkg/chart"
	"github.com/matzehuels/statviz/pkg/measure"
)

func ExampleCompute() {
	spec, err := chart.Decode(strings.NewReader(`
type = "vbar"
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
`))
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, w := range []float64{320, 900} {
		l, err := chart.Compute(spec, measure.Width(w))
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%v: %s, slant %s, %d bars, bottom padding %v\n",
			w, l.Breakpoint, l.Props.String("slant"), len(l.Bars), l.Bounds.Padding.Bottom)
	}
	// Output:
	// 320: palm, slant vertical, 2 bars, bottom padding 140
	// 900: lap, slant horizontal, 2 bars, bottom padding 60
}
