package repository

import (
	"slices"
	"strings"

	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/isnad/textnorm"
)

// Search limits.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// ClampLimit maps a requested search limit into [1, MaxSearchLimit].
// Zero or negative values select DefaultSearchLimit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	return min(limit, MaxSearchLimit)
}

// Matches reports whether query occurs in any localized name of n or in
// its raw grade. Matching ignores case and Arabic diacritics.
func Matches(n isnad.Narrator, query string) bool {
	for _, name := range n.Names {
		if textnorm.Contains(name, query) {
			return true
		}
	}
	return textnorm.Contains(n.Grade, query)
}

// SortByIndex orders narrators by ascending index in place.
func SortByIndex(ns []isnad.Narrator) {
	slices.SortFunc(ns, func(a, b isnad.Narrator) int { return a.Index - b.Index })
}

// SearchKey is the folded text a narrator is searched by: every localized
// name and the raw grade, one per line. Stores that cannot fold text at
// query time persist it next to the record.
func SearchKey(n isnad.Narrator) string {
	parts := make([]string, 0, len(n.Names)+1)
	for _, l := range isnad.Locales {
		if s := n.Names[l]; s != "" {
			parts = append(parts, textnorm.Fold(s))
		}
	}
	if n.Grade != "" {
		parts = append(parts, textnorm.Fold(n.Grade))
	}
	return strings.Join(parts, "\n")
}
