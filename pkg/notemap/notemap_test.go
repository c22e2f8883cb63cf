package notemap

import (
	"errors"
	"strings"
	"testing"

	"github.com/ccollicutt/notemap/pkg/analyzer"
)

func TestAnalyze_Scenario(t *testing.T) {
	result, err := Analyze("Buy milk\n  Check price\nFix the shelf")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	wantLevels := []int{0, 2, 0}
	if len(result.StructuredNotes) != len(wantLevels) {
		t.Fatalf("StructuredNotes = %d, want %d", len(result.StructuredNotes), len(wantLevels))
	}
	for i, want := range wantLevels {
		if got := result.StructuredNotes[i].Level; got != want {
			t.Errorf("notes[%d].Level = %d, want %d", i, got, want)
		}
	}

	wantCategories := []analyzer.Category{"Tasks", "DIY Projects"}
	if len(result.Categories) != len(wantCategories) {
		t.Fatalf("Categories = %v, want %v", result.Categories, wantCategories)
	}
	for i, want := range wantCategories {
		if result.Categories[i] != want {
			t.Errorf("Categories[%d] = %q, want %q", i, result.Categories[i], want)
		}
	}

	if result.RenderedOutput != Render(result.StructuredNotes) {
		t.Error("RenderedOutput differs from Render(StructuredNotes)")
	}
	if !strings.HasPrefix(result.RenderedOutput, "# Tasks\n\n## Buy milk\n") {
		t.Errorf("RenderedOutput = %q", result.RenderedOutput)
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t\n  \n"} {
		_, err := Analyze(raw)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Analyze(%q) error = %v, want ErrEmptyInput", raw, err)
		}
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	raw := "repair the cabinet\ncabinet needs paint\nbuy paint brushes\n\tcheck laptop battery"

	first, err := Analyze(raw)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := Analyze(raw)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if first.RenderedOutput != second.RenderedOutput {
		t.Error("RenderedOutput differs between runs")
	}
	if got := first.StructuredNotes[1].Connections; len(got) != 1 || got[0] != "repair the cabinet..." {
		t.Errorf("notes[1].Connections = %q", got)
	}
}
