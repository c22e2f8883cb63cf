// Package output provides rendering and report generation for analyzed notes.
package output

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/notemap/pkg/analyzer"
)

// AnalysisResult is the complete, deterministic output of one analysis.
type AnalysisResult struct {
	// StructuredNotes are the classified lines in input order.
	StructuredNotes []analyzer.ClassifiedLine `json:"structuredNotes"`

	// RenderedOutput is the category-grouped outline.
	RenderedOutput string `json:"renderedOutput"`

	// Categories are the distinct categories in first-seen order.
	Categories []analyzer.Category `json:"categories"`
}

// NewResult renders an analysis into an AnalysisResult.
func NewResult(a *analyzer.Analysis) *AnalysisResult {
	return &AnalysisResult{
		StructuredNotes: a.Notes,
		RenderedOutput:  Render(a.Notes),
		Categories:      a.Categories,
	}
}

// Report wraps an AnalysisResult with statistics and run metadata.
type Report struct {
	Summary  Summary         `json:"summary"`
	Result   *AnalysisResult `json:"result"`
	Metadata Metadata        `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// Lines is the number of non-empty lines analyzed.
	Lines int `json:"lines"`

	// Categories is the number of distinct categories.
	Categories int `json:"categories"`

	// Connections is the total number of connections across lines.
	Connections int `json:"connections"`

	// Uncategorized is the number of lines in the default category.
	Uncategorized int `json:"uncategorized"`

	// DefaultCategory is the label of the fallback category.
	DefaultCategory analyzer.Category `json:"defaultCategory"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// RunID uniquely identifies the analysis run.
	RunID string `json:"runId"`

	// Sources lists the inputs that were analyzed.
	Sources []string `json:"sources"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzedAt"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from an analysis. A missing RunID is generated.
func NewReport(a *analyzer.Analysis, meta Metadata) *Report {
	if meta.RunID == "" {
		meta.RunID = uuid.NewString()
	}

	return &Report{
		Result:   NewResult(a),
		Metadata: meta,
		Summary: Summary{
			Lines:           len(a.Notes),
			Categories:      len(a.Categories),
			Connections:     a.TotalConnections(),
			Uncategorized:   a.Uncategorized(),
			DefaultCategory: a.DefaultCategory,
		},
	}
}

// HasUncategorized returns true if any line fell into the default category.
func (r *Report) HasUncategorized() bool {
	return r.Summary.Uncategorized > 0
}

// SummaryLine returns a one-line description of the report.
func (r *Report) SummaryLine() string {
	return fmt.Sprintf("NoteMap: %d lines, %d categories, %d connections, %d uncategorized",
		r.Summary.Lines,
		r.Summary.Categories,
		r.Summary.Connections,
		r.Summary.Uncategorized)
}
