// Package textnorm folds narrator names and grade strings into a form
// suitable for case- and diacritic-insensitive substring matching in both
// Latin and Arabic script.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letterVariants unifies Arabic letters that are spelled inconsistently
// across sources. Alif with hamza or madda is handled by mark stripping.
var letterVariants = strings.NewReplacer(
	"ة", "ه", // taa marbuta
	"ى", "ي", // alif maqsura
	"ٱ", "ا", // alif wasla
	"ـ", "", // tatweel
)

// Fold lowercases s, strips combining marks (Arabic tashkeel, Latin
// accents, hamza carriers), unifies Arabic letter variants and collapses
// whitespace. The result is only meant for comparison.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = letterVariants.Replace(cases.Fold().String(out))
	return strings.Join(strings.Fields(out), " ")
}

// Contains reports whether the folded haystack contains the folded needle.
// An empty needle matches everything.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

var honorifics = []string{
	"رضي الله عنهما",
	"رضي الله عنهم",
	"رضي الله عنها",
	"رضي الله عنه",
	"صلى الله عليه وسلم",
	"صلي الله عليه وسلم",
	"رحمه الله",
}

// StripHonorifics removes trailing and embedded Arabic honorific phrases
// from a name so it can be displayed and compared on its own.
func StripHonorifics(name string) string {
	for _, h := range honorifics {
		name = strings.ReplaceAll(name, h, "")
	}
	return strings.Join(strings.Fields(name), " ")
}
