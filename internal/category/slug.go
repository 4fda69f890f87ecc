package category

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugSeps     = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts a category name to its URL slug: accents are folded to ASCII, anything
// that is not a letter, digit, underscore, space or hyphen is dropped, and runs of spaces
// or hyphens become a single hyphen. Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}

	ascii = nonSlugChars.ReplaceAllString(strings.ToLower(ascii), "")
	ascii = slugSeps.ReplaceAllString(ascii, "-")
	return strings.Trim(ascii, "-_")
}
