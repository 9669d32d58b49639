package utils

import (
	"html"
	"strings"
)

// StripTags removes HTML markup from catalog long-text fields (product
// descriptions arrive as rich text). It never fails: malformed markup is
// dropped along with everything between angle brackets, entities are
// decoded, and whitespace is collapsed.
func StripTags(input string) string {
	if input == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(input))

	inTag := false
	for _, r := range input {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}

	// Unterminated tag: whatever followed '<' is discarded above, which is
	// the safe reading for display text.
	cleaned := html.UnescapeString(b.String())
	return strings.Join(strings.Fields(cleaned), " ")
}

// Truncate limits display text to max runes, appending an ellipsis when cut
func Truncate(input string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(input)
	if len(runes) <= max {
		return input
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
