// Package datetime renders absolute instants the way a viewer's locale
// expects to read them.
//
// Per-locale Go reference layouts live in go-i18n message files embedded
// from locales/. A Bundle resolves a requested locale to the closest
// shipped one and hands out Formatters bound to a location.
package datetime

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const (
	// BaseLocale is the locale used when nothing closer is shipped.
	BaseLocale = "en-US"

	// MessageLongLayout holds the long-form date and time layout.
	MessageLongLayout = "DateTimeLong"
	// MessageInvalid holds the text written for invalid datetimes.
	MessageInvalid = "InvalidDate"

	localeGlob = "locales/active.*.toml"
)

//go:embed locales/active.*.toml
var embeddedLocaleFS embed.FS

// Bundle holds the loaded locale layouts.
type Bundle struct {
	bundle  *i18n.Bundle
	tags    []language.Tag
	matcher language.Matcher
}

// NewBundle loads the embedded locale layouts.
func NewBundle() (*Bundle, error) {
	return LoadFromFS(embeddedLocaleFS)
}

// LoadFromFS loads locale layouts from locales/active.*.toml in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, localeGlob)
	if err != nil {
		return nil, fmt.Errorf("glob locale layouts: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale layout files found")
	}
	sort.Strings(paths)

	base := language.MustParse(BaseLocale)
	bundle := i18n.NewBundle(base)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	var tags []language.Tag
	for _, p := range paths {
		file, err := bundle.LoadMessageFileFS(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("load locale layouts %s: %w", path.Base(p), err)
		}
		if err := checkMessages(p, file); err != nil {
			return nil, err
		}
		tags = append(tags, file.Tag)
	}

	if !containsTag(tags, base) {
		return nil, fmt.Errorf("base locale %s is not defined in locale layouts", BaseLocale)
	}
	// The base locale leads so the matcher falls back to it.
	ordered := make([]language.Tag, 0, len(tags))
	ordered = append(ordered, base)
	for _, tag := range tags {
		if tag != base {
			ordered = append(ordered, tag)
		}
	}
	return &Bundle{
		bundle:  bundle,
		tags:    ordered,
		matcher: language.NewMatcher(ordered),
	}, nil
}

// Locales returns the shipped locales, base locale first.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.tags))
	for _, tag := range b.tags {
		out = append(out, tag.String())
	}
	return out
}

// Match resolves a requested locale to the closest shipped one.
// Unknown, blank, or unparsable values resolve to the base locale.
func (b *Bundle) Match(locale string) language.Tag {
	if b == nil || len(b.tags) == 0 {
		return language.MustParse(BaseLocale)
	}
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	if locale == "" {
		return b.tags[0]
	}
	requested, err := language.Parse(locale)
	if err != nil {
		return b.tags[0]
	}
	_, index, confidence := b.matcher.Match(requested)
	if confidence == language.No {
		return b.tags[0]
	}
	return b.tags[index]
}

// Formatter returns a formatter for locale that renders instants in loc.
// A nil loc means time.Local.
func (b *Bundle) Formatter(locale string, loc *time.Location) (*Formatter, error) {
	if b == nil {
		return nil, fmt.Errorf("locale layouts are not loaded")
	}
	if loc == nil {
		loc = time.Local
	}
	tag := b.Match(locale)
	localizer := i18n.NewLocalizer(b.bundle, tag.String(), BaseLocale)

	layout, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: MessageLongLayout})
	if err != nil {
		return nil, fmt.Errorf("resolve %s layout for %s: %w", MessageLongLayout, tag, err)
	}
	invalid, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: MessageInvalid})
	if err != nil {
		return nil, fmt.Errorf("resolve %s for %s: %w", MessageInvalid, tag, err)
	}
	return &Formatter{
		tag:      tag,
		layout:   layout,
		invalid:  invalid,
		location: loc,
	}, nil
}

func checkMessages(p string, file *i18n.MessageFile) error {
	seen := map[string]bool{}
	for _, msg := range file.Messages {
		seen[msg.ID] = true
	}
	for _, id := range []string{MessageLongLayout, MessageInvalid} {
		if !seen[id] {
			return fmt.Errorf("locale layouts %s: message %q is required", path.Base(p), id)
		}
	}
	return nil
}

func containsTag(tags []language.Tag, want language.Tag) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
