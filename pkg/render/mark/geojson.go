package mark

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"

	"github.com/matzehuels/statviz/pkg/fn"
	"github.com/matzehuels/statviz/pkg/render/canvas"
	"github.com/matzehuels/statviz/pkg/render/palette"
	"github.com/matzehuels/statviz/pkg/render/tooltip"
)

// Map element classes.
const (
	GeoJSONClass          = "sszvis-map__geojsonelement"
	GeoJSONUndefinedClass = "sszvis-map__geojsonelement--undefined"
	LakeClass             = "sszvis-map__lakearea"
)

// Default keys matching data to features and the default area stroke.
const (
	DefaultDataKey     = "geoId"
	DefaultFeatureKey  = "id"
	DefaultStrokeWidth = 1.25
)

// MapEvents are the interactions a page can bind on map areas. They are
// emitted as data attributes since the SVG carries no script.
var MapEvents = []string{"over", "out", "click"}

// Projector maps geometries into pixel space.
type Projector interface {
	Project(orb.Geometry) orb.Geometry
}

// Projection is a Mercator projection fitted to a pixel box.
type Projection struct {
	scale, tx, ty float64
}

// FitMercator returns the Mercator projection that fits every feature of fc
// into a width by height box, centered and with its aspect ratio kept.
// Coordinates are longitude and latitude in degrees.
func FitMercator(fc *geojson.FeatureCollection, width, height float64) Projection {
	var (
		b     orb.Bound
		found bool
	)
	if fc != nil {
		for _, f := range fc.Features {
			if f == nil || f.Geometry == nil {
				continue
			}
			fb := mercator(f.Geometry).Bound()
			if !found {
				b, found = fb, true
				continue
			}
			b = b.Union(fb)
		}
	}
	if !found {
		return Projection{scale: 1}
	}

	bw, bh := b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]
	var s float64
	switch {
	case bw > 0 && bh > 0:
		s = math.Min(width/bw, height/bh)
	case bw > 0:
		s = width / bw
	case bh > 0:
		s = height / bh
	default:
		s = 1
	}
	return Projection{
		scale: s,
		tx:    (width-bw*s)/2 - b.Min[0]*s,
		ty:    (height-bh*s)/2 + b.Max[1]*s,
	}
}

// Project returns a projected copy of g.
func (p Projection) Project(g orb.Geometry) orb.Geometry {
	return project.Geometry(mercator(g), p.point)
}

func (p Projection) point(pt orb.Point) orb.Point {
	return orb.Point{pt[0]*p.scale + p.tx, -pt[1]*p.scale + p.ty}
}

func mercator(g orb.Geometry) orb.Geometry {
	return project.Geometry(orb.Clone(g), project.WGS84.ToMercator)
}

// Planar leaves coordinates untouched, for data already in pixels.
type Planar struct{}

// Project returns g.
func (Planar) Project(g orb.Geometry) orb.Geometry { return g }

// GeoJSON draws map areas colored by the datum whose key matches the
// feature. Features without a matching datum, or whose datum is not
// Defined, get the missing-value pattern.
type GeoJSON[D any] struct {
	Features *geojson.FeatureCollection
	// Lakes are drawn on top of the areas with the lake pattern.
	Lakes *geojson.FeatureCollection
	// Projection defaults to FitMercator over Features for Width and
	// Height.
	Projection    Projector
	Width, Height float64

	// DataKey extracts the area id from a datum.
	DataKey func(D) string
	// FeatureKey names the feature property holding the area id. When a
	// feature lacks the property its GeoJSON id is used.
	FeatureKey string

	Defined     func(D) bool
	Fill        fn.Value[D, string]
	Stroke      fn.Value[D, string]
	StrokeWidth float64
}

// MapArea is a laid out map feature.
type MapArea struct {
	Key         string         `json:"key"`
	D           string         `json:"d"`
	Defined     bool           `json:"defined"`
	Fill        string         `json:"fill,omitempty"`
	Stroke      string         `json:"stroke,omitempty"`
	StrokeWidth float64        `json:"strokeWidth"`
	Anchor      tooltip.Anchor `json:"anchor"`
}

// MapLayout is the geometry of a map.
type MapLayout struct {
	Areas []MapArea `json:"areas"`
	Lakes []string  `json:"lakes,omitempty"`
}

// Layout projects the features and joins them with data. Fill is empty for
// undefined areas; DrawMap fills them with the missing-value pattern.
func (m GeoJSON[D]) Layout(data []D) MapLayout {
	var out MapLayout
	if m.Features == nil {
		return out
	}
	proj := m.Projection
	if proj == nil {
		proj = FitMercator(m.Features, m.Width, m.Height)
	}
	byKey := make(map[string]D, len(data))
	if m.DataKey != nil {
		for _, d := range data {
			byKey[m.DataKey(d)] = d
		}
	}
	sw := m.StrokeWidth
	if sw <= 0 {
		sw = DefaultStrokeWidth
	}

	for _, f := range m.Features.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		g := proj.Project(f.Geometry)
		a := MapArea{
			Key:         m.featureKey(f),
			D:           Path(g),
			StrokeWidth: sw,
		}
		d, ok := byKey[a.Key]
		a.Defined = ok && (m.Defined == nil || m.Defined(d))
		if a.Defined {
			a.Fill = orDefault(m.Fill.Of(d), palette.DefaultColor)
			a.Stroke = orDefault(m.Stroke.Of(d), palette.DefaultColor)
		}
		c, _ := planar.CentroidArea(g)
		a.Anchor = tooltip.Anchor{X: c[0], Y: c[1], Key: a.Key}
		out.Areas = append(out.Areas, a)
	}

	if m.Lakes != nil {
		for _, f := range m.Lakes.Features {
			if f == nil || f.Geometry == nil {
				continue
			}
			out.Lakes = append(out.Lakes, Path(proj.Project(f.Geometry)))
		}
	}
	return out
}

func (m GeoJSON[D]) featureKey(f *geojson.Feature) string {
	name := m.FeatureKey
	if name == "" {
		name = DefaultFeatureKey
	}
	if v, ok := f.Properties[name]; ok && v != nil {
		return fmt.Sprint(v)
	}
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// DrawMap writes the areas and lakes of l to c.
func DrawMap(c *canvas.Canvas, l MapLayout) {
	var missing string
	for _, a := range l.Areas {
		if !a.Defined && missing == "" {
			missing = c.EnsurePattern(canvas.MapMissingValue)
		}
	}
	lake := ""
	if len(l.Lakes) > 0 {
		lake = c.EnsurePattern(canvas.MapLake)
	}

	for _, a := range l.Areas {
		if a.D == "" {
			continue
		}
		cls, fill, stroke := GeoJSONClass, a.Fill, a.Stroke
		if !a.Defined {
			cls, fill, stroke = canvas.Classes(GeoJSONClass, GeoJSONUndefinedClass), missing, ""
		}
		attrs := []string{
			canvas.Attr("class", cls),
			`data-event-target=""`,
			canvas.Attr("data-events", strings.Join(MapEvents, " ")),
			canvas.Attr("data-key", a.Key),
			canvas.Attr("fill", fill),
			canvas.Attr("stroke-width", canvas.Num(a.StrokeWidth)),
		}
		if stroke != "" {
			attrs = append(attrs, canvas.Attr("stroke", stroke))
		}
		c.Path(a.D, attrs...)
	}
	for _, d := range l.Lakes {
		if d == "" {
			continue
		}
		c.Path(d, canvas.Attr("class", LakeClass), canvas.Attr("fill", lake), canvas.Attr("stroke", palette.LakeLine))
	}
}

func (a MapArea) anchor() tooltip.Anchor { return a.Anchor }

// Path returns the SVG path data of a projected geometry. Points are drawn
// as small circles.
func Path(g orb.Geometry) string {
	var b strings.Builder
	writePath(&b, g)
	return b.String()
}

func writePath(b *strings.Builder, g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		b.WriteString("M" + point(g[0], g[1]+pointRadius))
		b.WriteString("a4.5,4.5 0 1,1 0,-9a4.5,4.5 0 1,1 0,9z")
	case orb.MultiPoint:
		for _, p := range g {
			writePath(b, p)
		}
	case orb.LineString:
		writeLine(b, g, false)
	case orb.MultiLineString:
		for _, l := range g {
			writeLine(b, l, false)
		}
	case orb.Ring:
		writeLine(b, g, true)
	case orb.Polygon:
		for _, r := range g {
			writeLine(b, r, true)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			writePath(b, p)
		}
	case orb.Collection:
		for _, c := range g {
			writePath(b, c)
		}
	}
}

const pointRadius = 4.5

func writeLine(b *strings.Builder, pts []orb.Point, closed bool) {
	if closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	for i, p := range pts {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString("L")
		}
		b.WriteString(point(p[0], p[1]))
	}
	if closed && len(pts) > 0 {
		b.WriteString("Z")
	}
}
