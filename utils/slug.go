package utils

import (
	"strings"

	"github.com/google/uuid"
)

// Slugify converts a title to a URL-safe base slug: lowercase, keep
// [a-z0-9 -], collapse whitespace to single dashes, collapse repeated
// dashes, trim leading/trailing dashes.
func Slugify(title string) string {
	lower := strings.ToLower(title)

	var b strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '-':
			b.WriteRune('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// UniqueSlug appends a short random suffix so two submissions with the same
// title never collide on the events collection's unique slug index.
func UniqueSlug(title string) string {
	base := Slugify(title)
	suffix := uuid.New().String()[:8]
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
