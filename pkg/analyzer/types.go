// Package analyzer classifies note lines and links related neighbours.
package analyzer

import "github.com/ccollicutt/notemap/pkg/parser"

// ErrEmptyInput is returned when the input holds no non-blank lines.
var ErrEmptyInput = parser.ErrEmptyInput

// Category is a label assigned to a note line.
type Category string

// ClassifiedLine is one non-empty input line after classification.
type ClassifiedLine struct {
	// Level is the indentation depth (leading tab/space count).
	Level int `json:"level"`

	// Content is the trimmed line text; never empty.
	Content string `json:"content"`

	// Category is the label of the first matching rule, or the default.
	Category Category `json:"category"`

	// Connections holds previews of related preceding lines, oldest first.
	Connections []string `json:"connections"`

	// LineNum is the 1-based line number in the raw input.
	LineNum int `json:"line,omitempty"`
}

// HasConnections returns true if the line is linked to an earlier line.
func (l *ClassifiedLine) HasConnections() bool {
	return len(l.Connections) > 0
}

// Analysis is the classifier output for one input.
type Analysis struct {
	// Notes are the classified lines in input order.
	Notes []ClassifiedLine

	// Categories are the distinct categories in first-seen order.
	Categories []Category

	// DefaultCategory is the label used for unmatched lines.
	DefaultCategory Category
}

// Uncategorized returns the number of lines that fell into the default category.
func (a *Analysis) Uncategorized() int {
	count := 0
	for _, n := range a.Notes {
		if n.Category == a.DefaultCategory {
			count++
		}
	}
	return count
}

// TotalConnections returns the number of connections across all lines.
func (a *Analysis) TotalConnections() int {
	total := 0
	for _, n := range a.Notes {
		total += len(n.Connections)
	}
	return total
}

// LineTrace explains how a single line was classified and linked.
type LineTrace struct {
	Line ClassifiedLine `json:"line"`

	// Keyword is the rule keyword that matched; empty for the default category.
	Keyword string `json:"keyword,omitempty"`

	// Links describes each connection in Line.Connections, in the same order.
	Links []Link `json:"links"`
}

// Link records why a line is connected to an earlier one.
type Link struct {
	// LineNum is the 1-based line number of the earlier line.
	LineNum int `json:"line"`

	// Preview is the connection text as it appears in Connections.
	Preview string `json:"preview"`

	// Shared lists the overlapping tokens, in the later line's order.
	Shared []string `json:"shared"`
}
