// Package responsive selects configuration values by container width.
//
// Chart authors declare, per property, values keyed by breakpoint name:
//
//	props, err := responsive.New(nil).
//	    Prop("slant", responsive.Rules{
//	        "palm": responsive.Literal("vertical"),
//	        "_":    responsive.Literal("horizontal"),
//	    }).
//	    Prop("bottomPadding", responsive.Rules{
//	        "_": responsive.Func(func(d measure.Dimensions) float64 { return d.Width / 10 }),
//	    }).
//	    Compile()
//
// Breakpoints are tested mobile-first, smallest first. For every property
// the first matching breakpoint that the property names wins; the wildcard
// "_" is the mandatory fallback. A property without a wildcard is rejected
// by [Props.Compile], so resolution itself can never fail.
package responsive

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	sverrors "github.com/matzehuels/statviz/pkg/errors"
	"github.com/matzehuels/statviz/pkg/measure"
)

// Wildcard is the breakpoint name that matches every measurement.
const Wildcard = "_"

// Breakpoint is a named upper bound on the container size.
type Breakpoint struct {
	Name string
	// Width is the largest width (inclusive) this breakpoint matches.
	Width float64
	// Height, if positive, additionally bounds the screen height.
	Height float64
}

// Test reports whether d falls within the breakpoint.
func (b Breakpoint) Test(d measure.Dimensions) bool {
	if d.Width > b.Width {
		return false
	}
	if b.Height > 0 && d.ScreenHeight > b.Height {
		return false
	}
	return true
}

// DefaultBreakpoints is the breakpoint scheme used by all bundled charts.
var DefaultBreakpoints = []Breakpoint{
	{Name: "palm", Width: 540},
	{Name: "lap", Width: 1023},
}

// Value is a breakpoint entry: either a literal or a function of the
// container measurement.
type Value struct {
	literal any
	fn      func(measure.Dimensions) any
}

// Literal returns a Value that resolves to v for every measurement.
func Literal(v any) Value { return Value{literal: v} }

// Func returns a Value computed from the measurement when resolved.
func Func[T any](f func(measure.Dimensions) T) Value {
	return Value{fn: func(d measure.Dimensions) any { return f(d) }}
}

func (v Value) resolve(d measure.Dimensions) any {
	if v.fn != nil {
		return v.fn(d)
	}
	return v.literal
}

// Rules maps breakpoint names to values for one property.
type Rules map[string]Value

// Props collects property rules. Errors are accumulated and reported by
// Compile.
type Props struct {
	breakpoints []Breakpoint
	names       []string
	rules       map[string]Rules
	errs        []error
}

// New starts a property set over the given breakpoints, which must be sorted
// by ascending width. A nil slice selects DefaultBreakpoints.
func New(breakpoints []Breakpoint) *Props {
	p := &Props{rules: make(map[string]Rules)}
	if breakpoints == nil {
		breakpoints = DefaultBreakpoints
	}
	p.breakpoints = slices.Clone(breakpoints)

	seen := make(map[string]bool, len(breakpoints))
	for i, bp := range breakpoints {
		switch {
		case bp.Name == "" || bp.Name == Wildcard:
			p.errs = append(p.errs, sverrors.New(sverrors.ErrCodeInvalidConfig, "breakpoint %d has reserved name %q", i, bp.Name))
		case seen[bp.Name]:
			p.errs = append(p.errs, sverrors.New(sverrors.ErrCodeInvalidConfig, "duplicate breakpoint %q", bp.Name))
		case i > 0 && bp.Width <= breakpoints[i-1].Width:
			p.errs = append(p.errs, sverrors.New(sverrors.ErrCodeInvalidConfig, "breakpoint %q is not wider than %q", bp.Name, breakpoints[i-1].Name))
		}
		seen[bp.Name] = true
	}
	return p
}

// Prop declares the rules for one property. Redeclaring a property replaces
// its rules.
func (p *Props) Prop(name string, rules Rules) *Props {
	if _, ok := rules[Wildcard]; !ok {
		p.errs = append(p.errs, sverrors.New(sverrors.ErrCodeInvalidConfig, "property %q has no wildcard %q value", name, Wildcard))
		return p
	}
	for bp := range rules {
		if bp != Wildcard && !p.hasBreakpoint(bp) {
			p.errs = append(p.errs, sverrors.New(sverrors.ErrCodeInvalidConfig, "property %q uses unknown breakpoint %q", name, bp))
			return p
		}
	}
	if _, ok := p.rules[name]; !ok {
		p.names = append(p.names, name)
	}
	p.rules[name] = maps.Clone(rules)
	return p
}

// Names returns the declared property names in declaration order.
func (p *Props) Names() []string { return slices.Clone(p.names) }

func (p *Props) hasBreakpoint(name string) bool {
	return slices.ContainsFunc(p.breakpoints, func(b Breakpoint) bool { return b.Name == name })
}

// Compile validates the declared properties and returns a Resolver.
func (p *Props) Compile() (*Resolver, error) {
	if len(p.errs) > 0 {
		return nil, errors.Join(p.errs...)
	}
	return &Resolver{
		breakpoints: p.breakpoints,
		names:       slices.Clone(p.names),
		rules:       maps.Clone(p.rules),
	}, nil
}

// Resolver resolves compiled properties for a measurement.
// It is immutable and safe for concurrent use.
type Resolver struct {
	breakpoints []Breakpoint
	names       []string
	rules       map[string]Rules
}

// Names returns the declared property names in declaration order.
func (r *Resolver) Names() []string { return slices.Clone(r.names) }

// Breakpoint returns the name of the narrowest breakpoint matching d, or
// Wildcard if none does.
func (r *Resolver) Breakpoint(d measure.Dimensions) string {
	for _, bp := range r.breakpoints {
		if bp.Test(d) {
			return bp.Name
		}
	}
	return Wildcard
}

// Resolve selects one value per property for d.
func (r *Resolver) Resolve(d measure.Dimensions) Resolved {
	out := make(Resolved, len(r.names))
	for _, name := range r.names {
		rules := r.rules[name]
		v, ok := Value{}, false
		for _, bp := range r.breakpoints {
			if !bp.Test(d) {
				continue
			}
			if v, ok = rules[bp.Name]; ok {
				break
			}
		}
		if !ok {
			v = rules[Wildcard]
		}
		out[name] = v.resolve(d)
	}
	return out
}

// Resolved maps property names to their values for one measurement.
type Resolved map[string]any

// Get returns the resolved property as a T. It reports false if the
// property is absent or has a different type.
func Get[T any](r Resolved, name string) (T, bool) {
	v, ok := r[name].(T)
	return v, ok
}

// String returns the property as a string, or "" if it is not one.
func (r Resolved) String(name string) string {
	s, _ := r[name].(string)
	return s
}

// Float returns the property as a float64. Integer values are converted.
// The second result is false for absent, nil and non-numeric values.
func (r Resolved) Float(name string) (float64, bool) {
	switch v := r[name].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Bool returns the property as a bool, or false.
func (r Resolved) Bool(name string) bool {
	b, _ := r[name].(bool)
	return b
}

// GoString renders the resolved values in declaration-independent,
// sorted order. It is used in debug logs.
func (r Resolved) GoString() string {
	keys := slices.Sorted(maps.Keys(r))
	s := "responsive.Resolved{"
	for i, k := range keys {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s: %v", k, r[k])
	}
	return s + "}"
}
