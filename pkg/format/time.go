package format

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lestrrat-go/strftime"
)

// Locale holds the calendar names used when formatting dates.
type Locale struct {
	Name        string
	Days        [7]string
	ShortDays   [7]string
	Months      [12]string
	ShortMonths [12]string
	// Periods are the AM/PM designators. Locales without a 12-hour clock
	// leave them empty.
	Periods [2]string
}

// German is the default locale.
var German = Locale{
	Name:        "de",
	Days:        [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
	ShortDays:   [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
	Months:      [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
	ShortMonths: [12]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
}

// English is provided for charts that opt out of the default locale.
var English = Locale{
	Name:        "en",
	Days:        [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	ShortDays:   [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	Months:      [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	ShortMonths: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	Periods:     [2]string{"AM", "PM"},
}

// LocaleByName returns the locale for a language tag ("de" or "en").
func LocaleByName(name string) (Locale, bool) {
	switch strings.ToLower(name) {
	case "", "de", "de-ch", "german":
		return German, true
	case "en", "english":
		return English, true
	}
	return Locale{}, false
}

// TimeFunc formats an instant.
type TimeFunc func(time.Time) string

type layoutKey struct{ locale, layout string }

// compiled caches patterns of named locales.
var compiled sync.Map // layoutKey -> *strftime.Strftime

// Layout compiles a strftime pattern for l. Besides the standard
// directives it knows %L (milliseconds), and the name directives %a %A %b
// %B %p use the locale's names. Unknown directives are an error.
func (l Locale) Layout(layout string) (TimeFunc, error) {
	key := layoutKey{l.Name, layout}
	if l.Name != "" {
		if f, ok := compiled.Load(key); ok {
			return timeFunc(f.(*strftime.Strftime)), nil
		}
	}
	f, err := strftime.New(layout, strftime.WithSpecificationSet(l.specs()))
	if err != nil {
		return nil, fmt.Errorf("time layout %q: %w", layout, err)
	}
	if l.Name != "" {
		compiled.Store(key, f)
	}
	return timeFunc(f), nil
}

func timeFunc(f *strftime.Strftime) TimeFunc {
	return func(t time.Time) string { return strings.TrimSpace(f.FormatString(t)) }
}

func (l Locale) specs() strftime.SpecificationSet {
	ss := strftime.NewSpecificationSet()
	names := map[byte]func(time.Time) string{
		'a': func(t time.Time) string { return l.ShortDays[t.Weekday()] },
		'A': func(t time.Time) string { return l.Days[t.Weekday()] },
		'b': func(t time.Time) string { return l.ShortMonths[t.Month()-1] },
		'B': func(t time.Time) string { return l.Months[t.Month()-1] },
		'p': func(t time.Time) string { return l.Periods[t.Hour()/12] },
		'L': func(t time.Time) string { return fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond)) },
	}
	for verb, name := range names {
		// Set only fails on the immutable default set.
		_ = ss.Set(verb, strftime.AppendFunc(func(b []byte, t time.Time) []byte {
			return append(b, name(t)...)
		}))
	}
	return ss
}

// Time formats t with a strftime pattern. A pattern that does not compile
// is returned unchanged; use Layout to validate user input.
func (l Locale) Time(layout string, t time.Time) string {
	f, err := l.Layout(layout)
	if err != nil {
		return layout
	}
	return f(t)
}

// AxisTime picks the label layout from the finest calendar field that is
// not at its start value: milliseconds, seconds, minutes, hours, weekday,
// day of month, month, and finally the year.
func (l Locale) AxisTime(t time.Time) string {
	return l.Time(AxisTimeLayout(t), t)
}

// AxisTime formats t for a time axis in the default locale.
func AxisTime(t time.Time) string {
	return German.AxisTime(t)
}

// AxisTimeLayout returns the layout AxisTime uses for t.
func AxisTimeLayout(t time.Time) string {
	switch {
	case t.Nanosecond()/int(time.Millisecond) != 0:
		return ".%L"
	case t.Second() != 0:
		return ":%S"
	case t.Minute() != 0:
		return "%I:%M"
	case t.Hour() != 0:
		return "%I %p"
	case t.Weekday() != time.Sunday && t.Day() != 1:
		return "%a %d"
	case t.Day() != 1:
		return "%b %d"
	case t.Month() != time.January:
		return "%B"
	}
	return "%Y"
}
