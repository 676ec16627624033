package slug

import (
	"regexp"
	"strings"
	"unicode"
)

const maxLength = 64

var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Generate turns a title or state key into a lowercase, hyphenated name
// safe for file names. camelCase boundaries become hyphens, so
// "kanbanState" yields "kanban-state".
func Generate(s string) string {
	var b strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}

	slug := nonAlphanumericRegex.ReplaceAllString(b.String(), "-")
	slug = strings.Trim(slug, "-")

	if slug == "" {
		return "board"
	}

	if len(slug) > maxLength {
		slug = strings.TrimRight(slug[:maxLength], "-")
	}

	return slug
}
