// AngelaMos | 2026
// slug_test.go

package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Hello World", "hello-world"},
		{"uzbek apostrophes", "O‘zbekiston soliq kodeksi: yangi o'zgarishlar", "ozbekiston-soliq-kodeksi-yangi-ozgarishlar"},
		{"okina", "Gʻalaba", "galaba"},
		{"accents", "Crème brûlée à la carte", "creme-brulee-a-la-carte"},
		{"special letters", "Straße Ærø Łódź", "strasse-aero-lodz"},
		{"punctuation runs", "  --AI & Buxgalteriya!!  2026--  ", "ai-buxgalteriya-2026"},
		{"cyrillic only", "Привет", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Hello World",
		"O‘zbekiston",
		"a--b__c",
		"Crème brûlée",
		"ß-æ-œ",
		"100% AI!",
	}

	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), in)
	}
}

func TestBaseSlug(t *testing.T) {
	assert.Equal(t, "custom-slug", baseSlug("Custom Slug", "Title"))
	assert.Equal(t, "title", baseSlug("", "Title"))
	assert.Equal(t, fallbackSlug, baseSlug("", "!!!"))
}
