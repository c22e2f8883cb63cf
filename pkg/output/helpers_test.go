package output

import (
	"testing"
	"time"

	"github.com/ccollicutt/notemap/pkg/analyzer"
)

func createTestAnalysis(t *testing.T, raw string) *analyzer.Analysis {
	t.Helper()
	a, err := analyzer.NewAnalyzer(nil)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}
	analysis, err := a.Analyze(raw)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return analysis
}

func createTestReport(t *testing.T) *Report {
	t.Helper()
	analysis := createTestAnalysis(t, "repair the cabinet\n  cabinet needs paint\ncall grandma\n\tbuy flowers")
	return NewReport(analysis, Metadata{
		RunID:      "run-1",
		Sources:    []string{"notes.txt"},
		AnalyzedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		Duration:   5 * time.Millisecond,
	})
}
