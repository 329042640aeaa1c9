package errors

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxHadithIDLength = 128
	maxQueryLength    = 200

	// MaxPageSize caps page sizes accepted from callers.
	MaxPageSize = 100
)

// ValidateHadithID validates a hadith identifier for safety.
//
// Identifiers are opaque strings such as "bukhari:1" or "muslim-8a". They are
// rejected when empty, too long, or when they contain control characters,
// whitespace, slashes or path traversal sequences, since ids end up in cache
// keys and URL paths.
func ValidateHadithID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidHadithID, "hadith id cannot be empty")
	}
	if len(id) > maxHadithIDLength {
		return New(ErrCodeInvalidHadithID, "hadith id too long (max %d characters)", maxHadithIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidHadithID, "hadith id contains invalid characters")
		}
	}
	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidHadithID, "hadith id cannot contain path separators: %q", id)
	}
	return nil
}

// ValidateQuery validates a narrator search query.
// Queries must contain at least one non-space character.
func ValidateQuery(q string) error {
	if strings.TrimSpace(q) == "" {
		return New(ErrCodeInvalidQuery, "search query cannot be empty")
	}
	if !utf8.ValidString(q) {
		return New(ErrCodeInvalidQuery, "search query is not valid UTF-8")
	}
	if utf8.RuneCountInString(q) > maxQueryLength {
		return New(ErrCodeInvalidQuery, "search query too long (max %d characters)", maxQueryLength)
	}
	for _, r := range q {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidQuery, "search query contains control characters")
		}
	}
	return nil
}

// ParseIndex parses a single narrator index. Indices are non-negative.
func ParseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, New(ErrCodeInvalidIndex, "invalid narrator index %q", s)
	}
	if n < 0 {
		return 0, New(ErrCodeInvalidIndex, "narrator index cannot be negative: %d", n)
	}
	return n, nil
}

// ParseIndexList parses a comma separated list of narrator indices such as
// "20, 11013, 30418". Empty elements are skipped; an entirely empty list
// yields a nil slice and no error.
func ParseIndexList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		n, err := ParseIndex(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// ValidatePage checks a 1-based page number and a page size.
// A page size of zero means "use the default" and is accepted.
func ValidatePage(page, size int) error {
	if page < 1 {
		return New(ErrCodeInvalidPage, "page must be >= 1, got %d", page)
	}
	if size < 0 {
		return New(ErrCodeInvalidPage, "page size cannot be negative: %d", size)
	}
	if size > MaxPageSize {
		return New(ErrCodeInvalidPage, "page size too large (max %d)", MaxPageSize)
	}
	return nil
}
