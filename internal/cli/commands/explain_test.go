package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ccollicutt/notemap/pkg/analyzer"
)

const explainNotes = "repair the cabinet\ncabinet needs paint\ncall grandma"

func TestRunExplain_Table(t *testing.T) {
	stdout, _, err := execute(t, NewExplainCommand(&GlobalOptions{}), explainNotes)
	if err != nil {
		t.Fatalf("explain error = %v", err)
	}

	for _, want := range []string{"MATCHED", "cabinet needs paint", "line 1 [cabinet]", "(default)", "General"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunExplain_JSON(t *testing.T) {
	stdout, _, err := execute(t, NewExplainCommand(&GlobalOptions{}), explainNotes, "-o", "json")
	if err != nil {
		t.Fatalf("explain error = %v", err)
	}

	var traces []analyzer.LineTrace
	if err := json.Unmarshal([]byte(stdout), &traces); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(traces) != 3 {
		t.Fatalf("traces = %d, want 3", len(traces))
	}
	if traces[0].Keyword != "cabinet" {
		t.Errorf("traces[0].Keyword = %q, want cabinet", traces[0].Keyword)
	}
	if len(traces[1].Links) != 1 || traces[1].Links[0].LineNum != 1 {
		t.Fatalf("traces[1].Links = %+v", traces[1].Links)
	}
	if shared := traces[1].Links[0].Shared; len(shared) != 1 || shared[0] != "cabinet" {
		t.Errorf("Shared = %q, want [cabinet]", shared)
	}
}

func TestRunExplain_Errors(t *testing.T) {
	if _, _, err := execute(t, NewExplainCommand(&GlobalOptions{}), "   "); err == nil {
		t.Error("expected error for empty input")
	}
	if _, _, err := execute(t, NewExplainCommand(&GlobalOptions{}), explainNotes, "-o", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRunRules(t *testing.T) {
	stdout, _, err := execute(t, NewRulesCommand(&GlobalOptions{}), "")
	if err != nil {
		t.Fatalf("rules error = %v", err)
	}

	for _, want := range []string{"PRIORITY", "DIY Projects", "shelf, board", "Repairs", "General", "(no match)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Index(stdout, "DIY Projects") > strings.Index(stdout, "Repairs") {
		t.Error("rules not listed in priority order")
	}
}

func TestRunRules_JSON(t *testing.T) {
	stdout, _, err := execute(t, NewRulesCommand(&GlobalOptions{}), "", "-o", "json")
	if err != nil {
		t.Fatalf("rules error = %v", err)
	}

	var rules []analyzer.Rule
	if err := json.Unmarshal([]byte(stdout), &rules); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(rules) != 5 || rules[3].Category != "Tasks" {
		t.Errorf("rules = %+v", rules)
	}
}
