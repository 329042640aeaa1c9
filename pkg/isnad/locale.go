package isnad

import "strings"

// Locale identifies a supported display language.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleArabic  Locale = "ar"
	LocaleFrench  Locale = "fr"
)

// DefaultLocale is used when no locale is requested.
const DefaultLocale = LocaleEnglish

// Locales lists the supported locales.
var Locales = []Locale{LocaleEnglish, LocaleArabic, LocaleFrench}

// ParseLocale accepts a locale tag such as "ar" or "fr-FR".
func ParseLocale(s string) (Locale, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	for _, l := range Locales {
		if string(l) == s {
			return l, true
		}
	}
	return DefaultLocale, false
}

// LocalizedText maps a locale to display text.
type LocalizedText map[Locale]string

// Get returns the text for l, falling back to English and then Arabic.
// It returns "" when none of those are present.
func (t LocalizedText) Get(l Locale) string {
	if s := strings.TrimSpace(t[l]); s != "" {
		return s
	}
	if s := strings.TrimSpace(t[LocaleEnglish]); s != "" {
		return s
	}
	return strings.TrimSpace(t[LocaleArabic])
}

// All joins every non-empty translation with a space. It is used to build
// search haystacks.
func (t LocalizedText) All() string {
	var parts []string
	for _, l := range Locales {
		if s := t[l]; s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
