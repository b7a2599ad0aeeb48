package content

import (
	"regexp"
	"strings"
)

var (
	reSlugStrip  = regexp.MustCompile(`[^\w\s\p{Z}-]`)
	reSlugSpace  = regexp.MustCompile(`[\s\p{Z}]+`)
	reSlugDashes = regexp.MustCompile(`-{2,}`)
	reSlugValid  = regexp.MustCompile(`^[\w-]+$`)
)

// Slugify derives a document slug from a title: lower-cased, characters
// outside word/space/hyphen dropped, whitespace runs (Unicode spaces such
// as U+00A0 included) turned into a single hyphen, repeated hyphens
// collapsed, leading and trailing hyphens trimmed.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = reSlugStrip.ReplaceAllString(s, "")
	s = reSlugSpace.ReplaceAllString(s, "-")
	s = reSlugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidSlug reports whether s can name a document file. Only word
// characters and hyphens are accepted, so a slug never escapes its
// collection directory.
func ValidSlug(s string) bool {
	return reSlugValid.MatchString(s)
}
