package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"punctuation stripped", "Spring Gala!!!", "spring-gala"},
		{"uppercase lowered", "JAZZ Night", "jazz-night"},
		{"whitespace collapsed", "  Summer   Fest  ", "summer-fest"},
		{"repeated dashes collapsed", "rock -- roll", "rock-roll"},
		{"unicode dropped", "Café Münchën", "caf-mnchn"},
		{"all symbols", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestUniqueSlug_DistinctForSameTitle(t *testing.T) {
	a := UniqueSlug("Spring Gala!!!")
	b := UniqueSlug("Spring Gala!!!")

	assert.True(t, strings.HasPrefix(a, "spring-gala-"), "got %q", a)
	assert.True(t, strings.HasPrefix(b, "spring-gala-"), "got %q", b)
	assert.NotEqual(t, a, b)
}

func TestUniqueSlug_EmptyBase(t *testing.T) {
	slug := UniqueSlug("???")
	assert.NotEmpty(t, slug)
	assert.False(t, strings.HasPrefix(slug, "-"))
}
