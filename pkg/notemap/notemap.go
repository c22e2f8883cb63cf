// Package notemap turns indented freeform notes into a category-grouped outline.
//
// It composes the parser, the keyword classifier and the outline renderer
// using the built-in rule table. Callers that need configured rules should use
// analyzer.NewAnalyzer together with output.NewResult.
package notemap

import (
	"fmt"

	"github.com/ccollicutt/notemap/pkg/analyzer"
	"github.com/ccollicutt/notemap/pkg/output"
)

// ErrEmptyInput is returned when the input holds no non-blank lines.
var ErrEmptyInput = analyzer.ErrEmptyInput

// Analyze classifies raw notes with the default rules and renders the outline.
func Analyze(raw string) (*output.AnalysisResult, error) {
	a, err := analyzer.NewAnalyzer(nil)
	if err != nil {
		return nil, fmt.Errorf("creating analyzer: %w", err)
	}

	analysis, err := a.Analyze(raw)
	if err != nil {
		return nil, err
	}

	return output.NewResult(analysis), nil
}

// Render groups classified notes by category and renders the outline.
func Render(notes []analyzer.ClassifiedLine) string {
	return output.Render(notes)
}
