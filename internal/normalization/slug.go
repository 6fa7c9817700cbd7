package normalization

import (
	"regexp"
	"strings"
)

var slugInvalid = regexp.MustCompile(`[^a-z0-9-]+`)

// Slug canonicalizes caller-supplied identifiers (model IDs, tag names):
// lowercase, trimmed, whitespace and underscores collapsed to hyphens.
func Slug(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	s = slugInvalid.ReplaceAllString(s, "")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// SlugPtr applies Slug through a pointer, passing nil through.
func SlugPtr(input *string) *string {
	if input == nil {
		return nil
	}
	s := Slug(*input)
	return &s
}
