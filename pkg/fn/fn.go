// Package fn provides small functional helpers shared by the chart
// renderers.
//
// The central type is [Value], a value that is either a constant or an
// accessor computed from a datum. Renderers take Values for every per-datum
// attribute (fill, stroke, position) and resolve them explicitly at the call
// site with [Value.Of].
package fn

// Value is either a constant of type T or an accessor deriving a T from a
// datum of type D. The zero Value resolves to the zero T.
type Value[D, T any] struct {
	constant T
	accessor func(D) T
}

// Const returns a Value that always resolves to v.
func Const[D, T any](v T) Value[D, T] {
	return Value[D, T]{constant: v}
}

// Accessor returns a Value computed from each datum by f.
// A nil f behaves like the zero Value.
func Accessor[D, T any](f func(D) T) Value[D, T] {
	return Value[D, T]{accessor: f}
}

// Of resolves the value for datum d.
func (v Value[D, T]) Of(d D) T {
	if v.accessor != nil {
		return v.accessor(d)
	}
	return v.constant
}

// IsAccessor reports whether the value depends on the datum.
func (v Value[D, T]) IsAccessor() bool { return v.accessor != nil }

// Either returns *p if p is non-nil, otherwise fallback.
func Either[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}
	return fallback
}

// Ptr returns a pointer to v. It is handy for optional configuration fields.
func Ptr[T any](v T) *T { return &v }

// Set returns the distinct keys of items in order of first appearance.
//
//	[2,1,1,6,8,6,5,3] -> [2,1,6,8,5,3]
func Set[D any, K comparable](items []D, key func(D) K) []K {
	seen := make(map[K]struct{}, len(items))
	out := make([]K, 0, len(items))
	for _, it := range items {
		k := key(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// GroupBy buckets items by key, preserving the input order within a bucket.
func GroupBy[D any, K comparable](items []D, key func(D) K) map[K][]D {
	out := make(map[K][]D)
	for _, it := range items {
		k := key(it)
		out[k] = append(out[k], it)
	}
	return out
}

// Find returns the first item satisfying pred.
func Find[D any](items []D, pred func(D) bool) (D, bool) {
	for _, it := range items {
		if pred(it) {
			return it, true
		}
	}
	var zero D
	return zero, false
}
