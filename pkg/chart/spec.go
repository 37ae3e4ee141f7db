package chart

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/paulmach/orb/geojson"

	"github.com/matzehuels/statviz/pkg/bounds"
	"github.com/matzehuels/statviz/pkg/errors"
	"github.com/matzehuels/statviz/pkg/format"
	"github.com/matzehuels/statviz/pkg/render/tooltip"
	"github.com/matzehuels/statviz/pkg/responsive"
)

// Spec is a chart definition as read from a TOML document.
//
//	name = "bevoelkerung"
//	type = "vbar"
//
//	[x]
//	field = "kreis"
//	[y]
//	field = "einwohner"
//	title = "Einwohner"
//
//	[props.slant]
//	palm = "vertical"
//	_ = "horizontal"
//
//	[[data]]
//	kreis = "Kreis 1"
//	einwohner = 5800
type Spec struct {
	Name   string `toml:"name" json:"name"`
	Type   string `toml:"type" json:"type"`
	Title  string `toml:"title" json:"title,omitempty"`
	Locale string `toml:"locale" json:"locale,omitempty"`

	// MaxWidth caps the width the chart geometry is computed for. Wider
	// containers center the chart.
	MaxWidth float64 `toml:"max_width" json:"max_width,omitempty"`

	// Bounds overrides the padding and size the chart type derives from its
	// responsive props.
	Bounds bounds.Config `toml:"bounds" json:"bounds"`

	// Breakpoints replaces the default palm/lap scheme.
	Breakpoints []responsive.Breakpoint `toml:"breakpoints" json:"breakpoints,omitempty"`
	// Props maps property name to breakpoint name to value. Entries are
	// merged over the chart type's defaults.
	Props map[string]map[string]any `toml:"props" json:"props,omitempty"`

	X Axis `toml:"x" json:"x"`
	Y Axis `toml:"y" json:"y"`

	// Y2 adds a second value axis to line charts.
	Y2 *Axis `toml:"y2" json:"y2,omitempty"`

	// Value is the measure of heat tables, pies and maps.
	Value Axis `toml:"value" json:"value"`

	Color Color `toml:"color" json:"color"`
	Geo   Geo   `toml:"geo" json:"geo"`

	Tooltip Tooltip `toml:"tooltip" json:"tooltip"`
	// Selection lists the keys of selected data: highlighted ticks, darker
	// bars and visible tooltips.
	Selection []string `toml:"selection" json:"selection,omitempty"`

	Data []Row `toml:"data" json:"data"`

	features *geojson.FeatureCollection
	lakes    *geojson.FeatureCollection
}

// Axis binds a data field to a chart dimension.
type Axis struct {
	Field string `toml:"field" json:"field"`
	Title string `toml:"title" json:"title,omitempty"`
	Ticks int    `toml:"ticks" json:"ticks,omitempty"`
	// Format names a number format (number, percent, age, none) or, for
	// time fields, a strftime layout such as "%Y".
	Format string `toml:"format" json:"format,omitempty"`
	// Time parses the field as a date.
	Time bool `toml:"time" json:"time,omitempty"`
}

// Color configures the categorical or sequential color mapping.
type Color struct {
	Field   string `toml:"field" json:"field,omitempty"`
	Palette string `toml:"palette" json:"palette,omitempty"`
}

// Geo references the GeoJSON files of a map chart, relative to the spec.
type Geo struct {
	Path       string `toml:"path" json:"path,omitempty"`
	Lakes      string `toml:"lakes" json:"lakes,omitempty"`
	DataKey    string `toml:"data_key" json:"data_key,omitempty"`
	FeatureKey string `toml:"feature_key" json:"feature_key,omitempty"`
}

// Tooltip configures tooltip text.
type Tooltip struct {
	Header      string              `toml:"header" json:"header,omitempty"`
	Body        []string            `toml:"body" json:"body,omitempty"`
	Orientation tooltip.Orientation `toml:"orientation" json:"orientation,omitempty"`
}

// Decode reads a spec from r. Unknown keys are configuration errors.
func Decode(r io.Reader) (*Spec, error) {
	var s Spec
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode chart spec")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in chart spec: %s", strings.Join(keys, ", "))
	}
	return &s, nil
}

// DecodeFile reads a spec file and loads the GeoJSON it references. The
// chart name defaults to the file stem.
func DecodeFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "read spec %s", path)
	}
	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := s.LoadGeo(os.DirFS(filepath.Dir(path))); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadGeo reads the GeoJSON files named in s.Geo from fsys.
func (s *Spec) LoadGeo(fsys fs.FS) error {
	var err error
	if s.Geo.Path != "" {
		if s.features, err = readFeatures(fsys, s.Geo.Path); err != nil {
			return err
		}
	}
	if s.Geo.Lakes != "" {
		if s.lakes, err = readFeatures(fsys, s.Geo.Lakes); err != nil {
			return err
		}
	}
	return nil
}

// SetFeatures attaches already decoded map features.
func (s *Spec) SetFeatures(features, lakes *geojson.FeatureCollection) {
	s.features, s.lakes = features, lakes
}

func readFeatures(fsys fs.FS, name string) (*geojson.FeatureCollection, error) {
	if err := errors.ValidatePath(name); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "geojson %s", name)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "read geojson %s", name)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "parse geojson %s", name)
	}
	return fc, nil
}

// Validate checks that the chart type exists, that the fields it needs are
// bound and that the responsive props compile.
func (s *Spec) Validate() error {
	if s.Name != "" {
		if err := errors.ValidateChartName(s.Name); err != nil {
			return err
		}
	}
	t, ok := registry[s.Type]
	if !ok {
		return errors.New(errors.ErrCodeInvalidChartType, "unknown chart type %q (want one of %s)", s.Type, strings.Join(Types(), ", "))
	}
	for _, req := range t.requires(s) {
		if req.value == "" {
			return errors.New(errors.ErrCodeMissingProperty, "%s chart needs %s", s.Type, req.name)
		}
	}
	switch s.Tooltip.Orientation {
	case "", tooltip.Top, tooltip.Bottom, tooltip.Left, tooltip.Right:
	default:
		return errors.New(errors.ErrCodeInvalidOrientation, "unknown tooltip orientation %q", s.Tooltip.Orientation)
	}
	if _, ok := format.LocaleByName(s.Locale); !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown locale %q", s.Locale)
	}
	if _, err := s.resolver(t); err != nil {
		return err
	}
	return nil
}

// resolver merges the spec's props over the chart type's defaults.
func (s *Spec) resolver(t chartType) (*responsive.Resolver, error) {
	props := responsive.New(s.Breakpoints)
	declared := make(map[string]bool)
	for _, p := range t.props {
		merged := maps.Clone(p.rules)
		maps.Copy(merged, rules(s.Props[p.name]))
		props.Prop(p.name, merged)
		declared[p.name] = true
	}
	for name, byBreakpoint := range s.Props {
		if declared[name] {
			continue
		}
		props.Prop(name, rules(byBreakpoint))
	}
	return props.Compile()
}

type requirement struct {
	name, value string
}

// Row is one datum. Values are whatever TOML decoded: strings, integers,
// floats, booleans or datetimes.
type Row map[string]any

// String returns the field as text. Missing fields are empty.
func (r Row) String(field string) string {
	switch v := r[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.DateOnly)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Float returns the field as a number. Missing or non-numeric fields are
// NaN.
func (r Row) Float(field string) float64 {
	switch v := r[field].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
	return math.NaN()
}

var dateLayouts = []string{time.RFC3339, time.DateTime, time.DateOnly, "2006-01", "2006"}

// Time returns the field as a date. Integers are read as years. The second
// result is false when the field cannot be read as a date.
func (r Row) Time(field string) (time.Time, bool) {
	switch v := r[field].(type) {
	case time.Time:
		return v, true
	case int64:
		return time.Date(int(v), time.January, 1, 0, 0, 0, 0, time.UTC), true
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
