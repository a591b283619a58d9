// Package timelabel rewrites the visible text of time elements into a
// locale-formatted rendering of their machine-readable datetime.
//
// The package owns no markup. Hosts hand it a Document that yields time
// elements and a Formatter that knows the viewer's locale and timezone; the
// localizer reads each element's datetime, formats it, and writes the result
// back into the element's text.
package timelabel

import (
	"errors"
	"reflect"
	"time"
)

var (
	// ErrNoDocument is returned when a pass runs without a document.
	ErrNoDocument = errors.New("timelabel: document is required")
	// ErrNoFormatter is returned when a localizer has no formatter.
	ErrNoFormatter = errors.New("timelabel: formatter is required")
)

// Element is one time element in a host document.
type Element interface {
	// DateTime returns the machine-readable datetime value, or "" when the
	// element carries none.
	DateTime() string
	// SetText replaces the element's visible text.
	SetText(text string)
}

// Document exposes the time elements of a host document in document order.
type Document interface {
	TimeElements() []Element
}

// Formatter renders absolute instants for the viewer's locale.
type Formatter interface {
	// Format renders t in the viewer's locale and timezone.
	Format(t time.Time) string
	// Invalid returns the text written for a value that is not a datetime.
	Invalid() string
}

// LocatedFormatter is a Formatter that renders in a fixed location.
// Datetimes without an offset are read in that location; for other
// formatters they are read in time.Local.
type LocatedFormatter interface {
	Formatter
	Location() *time.Location
}

// Localizer rewrites time element text using a Formatter.
type Localizer struct {
	formatter Formatter
}

// New returns a localizer that renders with f.
func New(f Formatter) *Localizer {
	return &Localizer{formatter: f}
}

// Localize rewrites the text of every time element in doc.
//
// Values that do not parse get the formatter's invalid sentinel; the
// remaining elements are still processed.
func (l *Localizer) Localize(doc Document) error {
	if isNil(doc) {
		return ErrNoDocument
	}
	if l == nil || isNil(l.formatter) {
		return ErrNoFormatter
	}
	loc := time.Local
	if located, ok := l.formatter.(LocatedFormatter); ok {
		if value := located.Location(); value != nil {
			loc = value
		}
	}
	for _, el := range doc.TimeElements() {
		if el == nil {
			continue
		}
		el.SetText(l.render(el.DateTime(), loc))
	}
	return nil
}

func (l *Localizer) render(value string, loc *time.Location) string {
	t, err := ParseDateTime(value, loc)
	if err != nil {
		return l.formatter.Invalid()
	}
	return l.formatter.Format(t)
}

// isNil also catches a nil pointer held in a non-nil interface.
func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
