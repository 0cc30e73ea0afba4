package domain

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SlugCounter reports how many existing stores carry the given slug
// pattern. The pattern is a case-insensitive regular expression matching
// the base slug or any numbered variant of it.
type SlugCounter func(ctx context.Context, pattern string) (int64, error)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives the base slug from a display name: diacritics
// stripped, lowercased, punctuation dropped, whitespace collapsed to
// single hyphens.
func Slugify(name string) string {
	ascii, _, err := transform.String(deaccent, name)
	if err != nil {
		ascii = name
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(ascii) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingHyphen = true
		}
	}
	return b.String()
}

// SlugPattern builds the lookup pattern for a base slug: the base
// itself or the base followed by a numeric suffix.
func SlugPattern(base string) string {
	return fmt.Sprintf(`^(%s)(-[0-9]*)?$`, regexp.QuoteMeta(base))
}

// UniqueSlug produces a slug for name that is unique among existing
// stores. With no match the base slug is used as-is; with N matches the
// slug becomes base-(N+1).
//
// The suffix derives from the count of matches, not the highest
// existing suffix. The two differ once records are deleted (a hole in
// the numbering makes the count lag behind the maximum), which is safe
// here because stores are never deleted. Known limitation, kept for
// compatibility.
func UniqueSlug(ctx context.Context, name string, count SlugCounter) (string, error) {
	base := Slugify(name)
	matches, err := count(ctx, SlugPattern(base))
	if err != nil {
		return "", err
	}
	if matches == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, matches+1), nil
}
