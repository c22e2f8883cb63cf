// Package parser turns raw note text into indentation-levelled lines.
package parser

import "errors"

// ErrEmptyInput is returned when the input holds no non-blank lines.
var ErrEmptyInput = errors.New("input is empty")

// Line represents a single non-empty note line.
type Line struct {
	// Raw is the original line, leading indentation included.
	Raw string

	// Content is the line with surrounding whitespace removed.
	Content string

	// Level is the number of leading tab or space characters.
	// Tabs and spaces count one unit each.
	Level int

	// LineNum is the 1-based line number in the raw input.
	LineNum int
}
