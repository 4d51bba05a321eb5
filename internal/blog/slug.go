// AngelaMos | 2026
// slug.go

package blog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	fallbackSlug  = "post"
	maxSlugLength = 280
	slugSuffixLen = 8
)

// Letters NFD cannot decompose into an ASCII base.
var slugReplacer = strings.NewReplacer(
	"ß", "ss",
	"æ", "ae",
	"œ", "oe",
	"ø", "o",
	"ł", "l",
	"đ", "d",
	"ı", "i",
	"þ", "th",
)

var apostrophes = map[rune]bool{
	'\'': true,
	'‘':  true,
	'’':  true,
	'ʻ':  true,
	'ʼ':  true,
	'`':  true,
}

// Slugify lowercases s, folds accented Latin letters to ASCII, drops
// apostrophes and joins the remaining alphanumeric runs with single
// hyphens. Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	s = slugReplacer.Replace(strings.ToLower(s))

	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		s,
	)
	if err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false

	for _, r := range s {
		switch {
		case apostrophes[r]:
			continue
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}

	slug := b.String()
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}

	return slug
}

// baseSlug picks the slug a post is first inserted under: an explicit
// slug when given, otherwise one derived from the title.
func baseSlug(explicit, title string) string {
	if slug := Slugify(explicit); slug != "" {
		return slug
	}
	if slug := Slugify(title); slug != "" {
		return slug
	}
	return fallbackSlug
}
