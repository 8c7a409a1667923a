package textutil

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transformers carry state, so each call borrows its own chain.
var stripMarksPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	},
}

// NormalizeTitle folds a title into a comparison key: lowercase, diacritics
// removed, and only [a-z0-9] kept. Empty input yields "". The result is
// idempotent under repeated application.
func NormalizeTitle(value string) string {
	if value == "" {
		return ""
	}
	lowered := strings.ToLower(value)

	t := stripMarksPool.Get().(transform.Transformer)
	t.Reset()
	stripped, _, err := transform.String(t, lowered)
	stripMarksPool.Put(t)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for i := 0; i < len(stripped); i++ {
		c := stripped[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return strings.TrimSpace(b.String())
}

// TitleCase renders an upper-case source label such as "HELSINKI: TENNISPALATSI"
// in title case. Mixed-case input is returned unchanged.
func TitleCase(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || value != strings.ToUpper(value) {
		return value
	}
	return cases.Title(language.Finnish).String(strings.ToLower(value))
}
