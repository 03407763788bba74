// Package normalize folds untrusted message text and catalog phrases into the
// single comparable form used by the matcher.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Folder lower-cases text for one configured locale. It holds no caser state,
// so a single Folder may be shared by concurrent requests.
type Folder struct {
	tag language.Tag
}

// New returns a Folder for the given BCP 47 locale; an unparsable locale
// falls back to the root (locale-independent) casing rules.
func New(locale string) *Folder {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.Und
	}
	return &Folder{tag: tag}
}

// Default folds with root casing rules.
func Default() *Folder {
	return &Folder{tag: language.Und}
}

func (f *Folder) Locale() string {
	return f.tag.String()
}

// Fold trims surrounding whitespace, composes to NFC and lower-cases s.
func (f *Folder) Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	// cases.Caser is stateful, so each call gets its own.
	return cases.Lower(f.tag).String(s)
}
