package analyzer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ccollicutt/notemap/pkg/config"
)

// Ellipsis marks a connection preview.
const Ellipsis = "..."

// ShareKeywords reports whether a and b have a whitespace-separated token
// longer than three characters in common, ignoring case.
func ShareKeywords(a, b string) bool {
	return len(SharedTokens(a, b, config.DefaultMinTokenLength, language.Und)) > 0
}

// SharedTokens returns the distinct tokens of a (in order) that also occur in
// b. Only tokens of at least minLen characters are considered.
func SharedTokens(a, b string, minLen int, tag language.Tag) []string {
	lower := cases.Lower(tag)
	return sharedTokens(a, tokenSet(b, minLen, lower), minLen, lower)
}

// Preview returns the first n characters of content followed by Ellipsis.
func Preview(content string, n int) string {
	runes := []rune(content)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + Ellipsis
}

func tokens(s string, minLen int, lower cases.Caser) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minLen {
			continue
		}
		out = append(out, lower.String(f))
	}
	return out
}

func tokenSet(s string, minLen int, lower cases.Caser) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range tokens(s, minLen, lower) {
		set[tok] = true
	}
	return set
}

func sharedTokens(s string, other map[string]bool, minLen int, lower cases.Caser) []string {
	var shared []string
	seen := make(map[string]bool)
	for _, tok := range tokens(s, minLen, lower) {
		if other[tok] && !seen[tok] {
			seen[tok] = true
			shared = append(shared, tok)
		}
	}
	return shared
}
