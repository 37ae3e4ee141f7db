// Package canvas writes SVG documents for charts.
//
// A Canvas wraps an svgo writer and adds what every chart needs on top of
// it: named layers (groups) with transforms, and pattern definitions that
// are written once per document under ids that do not collide when several
// charts share one HTML page.
package canvas

import (
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"
	"github.com/google/uuid"

	"github.com/matzehuels/statviz/pkg/render/text"
)

// Option configures a Canvas.
type Option func(*Canvas)

// WithSeed derives the document id prefix from seed. Equal seeds produce
// equal prefixes, so re-rendering the same chart yields identical output.
func WithSeed(seed string) Option {
	return func(c *Canvas) {
		if seed != "" {
			c.prefix = "sv-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()[:8]
		}
	}
}

// WithRandomIDs gives the document a random id prefix.
func WithRandomIDs() Option {
	return func(c *Canvas) {
		c.prefix = "sv-" + uuid.NewString()[:8]
	}
}

// WithClass sets the class attribute of the root svg element.
func WithClass(class string) Option {
	return func(c *Canvas) { c.class = class }
}

// Canvas is an SVG document being written.
type Canvas struct {
	*svg.SVG
	prefix string
	class  string
	defs   map[string]bool
	depth  int
}

// New starts an SVG document of the given size on w.
func New(w io.Writer, width, height float64, opts ...Option) *Canvas {
	c := &Canvas{
		SVG:    svg.New(w),
		prefix: "sv",
		defs:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	attrs := []string{Attr("id", c.prefix)}
	if c.class != "" {
		attrs = append(attrs, Attr("class", c.class))
	}
	c.Start(width, height, attrs...)
	return c
}

// Prefix returns the document id prefix.
func (c *Canvas) Prefix() string { return c.prefix }

// ID returns the document-unique id for name.
func (c *Canvas) ID(name string) string { return c.prefix + "-" + name }

// URL returns a paint reference to the element with the given name.
func (c *Canvas) URL(name string) string { return "url(#" + c.ID(name) + ")" }

// Layer opens a group with the given class, translated by (x, y). Close it
// with End.
func (c *Canvas) Layer(class string, x, y float64, attrs ...string) {
	all := make([]string, 0, len(attrs)+2)
	if class != "" {
		all = append(all, Attr("class", class))
	}
	if x != 0 || y != 0 {
		all = append(all, Attr("transform", Translate(x, y)))
	}
	c.Group(append(all, attrs...)...)
	c.depth++
}

// End closes the innermost Layer.
func (c *Canvas) End() {
	if c.depth == 0 {
		return
	}
	c.Gend()
	c.depth--
}

// Close closes any open layers and finishes the document.
func (c *Canvas) Close() {
	for c.depth > 0 {
		c.End()
	}
	c.SVG.End()
}

// Attr formats an escaped XML attribute for svgo's variadic style
// arguments.
func Attr(name, value string) string {
	return name + `="` + text.EscapeXML(value) + `"`
}

// Num formats a number for attribute values with the shortest exact
// representation.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Translate formats an SVG translate transform.
func Translate(x, y float64) string {
	return "translate(" + Num(x) + "," + Num(y) + ")"
}

// Rotate formats an SVG rotate transform.
func Rotate(deg float64) string {
	return "rotate(" + Num(deg) + ")"
}

// Classes joins non-empty class names.
func Classes(names ...string) string {
	out := names[:0:0]
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

