package core

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Word characters are Unicode letters, marks, digits and underscore.
	disallowedQueryChars = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\p{Zs}\-()]+`)
	queryWhitespace      = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// NormalizeQuery trims a free-text query, strips special characters (keeping
// hyphens and parentheses) and collapses whitespace. It returns "" when no
// letter or digit survives, which callers must treat as ErrInvalidQuery.
func NormalizeQuery(raw string) string {
	q := strings.TrimSpace(raw)
	q = disallowedQueryChars.ReplaceAllString(q, "")
	q = queryWhitespace.ReplaceAllString(q, " ")
	q = strings.TrimSpace(q)

	if !strings.ContainsFunc(q, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) {
		return ""
	}
	return q
}
