package parser

import (
	"strings"
)

// Parse splits raw text into non-empty lines and computes each line's level.
// Blank and whitespace-only lines are dropped; the survivors keep their
// original order. Returns ErrEmptyInput if nothing survives.
func Parse(raw string) ([]Line, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyInput
	}

	rawLines := strings.Split(raw, "\n")
	lines := make([]Line, 0, len(rawLines))

	for i, r := range rawLines {
		content := strings.TrimSpace(r)
		if content == "" {
			continue
		}

		lines = append(lines, Line{
			Raw:     r,
			Content: content,
			Level:   Level(r),
			LineNum: i + 1,
		})
	}

	return lines, nil
}

// Level counts the consecutive tab or space characters at the start of s.
func Level(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}
