package responsive_test

import (
	"fmt"

	"github.com/matzehuels/statviz/pkg/measure"
	"github.com/matzehuels/statviz/pkg/responsive"
)

func ExampleProps() {
	r, err := responsive.New(nil).
		Prop("slant", responsive.Rules{
			"palm": responsive.Literal("vertical"),
			"_":    responsive.Literal("none"),
		}).
		Prop("bottom", responsive.Rules{
			"_": responsive.Func(func(d measure.Dimensions) float64 { return d.Width / 10 }),
		}).
		Compile()
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, w := range []float64{320, 900} {
		props := r.Resolve(measure.Dimensions{Width: w})
		bottom, _ := props.Float("bottom")
		fmt.Printf("%v: slant=%s bottom=%v\n", w, props.String("slant"), bottom)
	}
	// Output:
	// 320: slant=vertical bottom=32
	// 900: slant=none bottom=90
}
