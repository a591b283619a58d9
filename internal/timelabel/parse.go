package timelabel

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateTime reports a value that is not a recognised datetime.
var ErrInvalidDateTime = errors.New("timelabel: invalid datetime")

// Layouts carrying an explicit offset or UTC designator.
var absoluteLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04Z07:00",
}

// Date-only layouts, read as UTC midnight.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
}

// Layouts without an offset; they are read in the viewer's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
}

// ParseDateTime parses a machine-readable datetime value.
//
// Values with an offset are absolute. A date, a year and month, or a year
// alone is UTC midnight at its start. A date and time without an offset is
// read in loc (time.Local when nil). A time of 24:00 is midnight at the end
// of the day.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDateTime)
	}
	if loc == nil {
		loc = time.Local
	}
	if midnight, ok := startOfNextDay(value); ok {
		t, err := parseDateTime(midnight, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, value)
		}
		return t.AddDate(0, 0, 1), nil
	}
	t, err := parseDateTime(value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, value)
	}
	return t, nil
}

func parseDateTime(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateTime
}

// startOfNextDay rewrites a "YYYY-MM-DDT24:00[:00[.000]]" value to 00:00 of
// the same date. It reports false when the value is not a 24:00 time or when
// any minute, second, or fraction digit is non-zero.
func startOfNextDay(value string) (string, bool) {
	const dateLen = len("2006-01-02")
	if len(value) < dateLen+len("T24:00") {
		return "", false
	}
	if sep := value[dateLen]; sep != 'T' && sep != 't' && sep != ' ' {
		return "", false
	}
	clock := value[dateLen+1:]
	if !strings.HasPrefix(clock, "24:00") {
		return "", false
	}
	rest := clock[len("24:00"):]
	if strings.HasPrefix(rest, ":") {
		if !strings.HasPrefix(rest, ":00") {
			return "", false
		}
		rest = rest[len(":00"):]
		if strings.HasPrefix(rest, ".") {
			rest = strings.TrimLeft(rest[1:], "0")
			if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
				return "", false
			}
		}
	}
	return value[:dateLen+1] + "00" + clock[len("24"):], true
}
