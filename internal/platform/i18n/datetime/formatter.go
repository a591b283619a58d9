package datetime

import (
	"time"

	"golang.org/x/text/language"
)

// Formatter renders instants with one locale's long-form layout.
type Formatter struct {
	tag      language.Tag
	layout   string
	invalid  string
	location *time.Location
}

// Format renders t in the formatter's location.
func (f *Formatter) Format(t time.Time) string {
	return t.In(f.location).Format(f.layout)
}

// Invalid returns the text shown for a value that is not a datetime.
func (f *Formatter) Invalid() string {
	return f.invalid
}

// Location returns the location instants are rendered in.
func (f *Formatter) Location() *time.Location {
	return f.location
}

// Tag returns the resolved locale.
func (f *Formatter) Tag() language.Tag {
	return f.tag
}

// Layout returns the Go reference layout in use.
func (f *Formatter) Layout() string {
	return f.layout
}
