package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const detectNotes = "garden hose\n  garden shed\n    garden gloves\nbuy seeds\n"

func TestNewDetectCommand_Defaults(t *testing.T) {
	cmd := NewDetectCommand(&GlobalOptions{})

	if got := cmd.Flags().Lookup("sample").DefValue; got != "200" {
		t.Errorf("sample default = %s, want 200", got)
	}
	if got := cmd.Flags().Lookup("output").DefValue; got != "text" {
		t.Errorf("output default = %s, want text", got)
	}
}

func TestRunDetect_Text(t *testing.T) {
	path := writeTempFile(t, "notes.txt", detectNotes)

	stdout, _, err := execute(t, NewDetectCommand(&GlobalOptions{}), "", path)
	if err != nil {
		t.Fatalf("detect error = %v", err)
	}

	for _, want := range []string{"Lines sampled: 4", "Indentation: spaces (unit 2)", "Max level: 4", "Tasks", "garden"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunDetect_JSON(t *testing.T) {
	path := writeTempFile(t, "notes.txt", detectNotes)

	stdout, _, err := execute(t, NewDetectCommand(&GlobalOptions{}), "", "-o", "json", path)
	if err != nil {
		t.Fatalf("detect error = %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if out["file"] != path {
		t.Errorf("file = %v, want %s", out["file"], path)
	}
	if out["indent_style"] != "spaces" {
		t.Errorf("indent_style = %v, want spaces", out["indent_style"])
	}
	if out["sampled_lines"] != float64(4) {
		t.Errorf("sampled_lines = %v, want 4", out["sampled_lines"])
	}
}

func TestRunDetect_WriteConfig(t *testing.T) {
	path := writeTempFile(t, "notes.txt", detectNotes)
	configPath := filepath.Join(t.TempDir(), "notemap.yaml")

	_, stderr, err := execute(t, NewDetectCommand(&GlobalOptions{}), "", "-w", configPath, path)
	if err != nil {
		t.Fatalf("detect error = %v", err)
	}
	if !strings.Contains(stderr, "Wrote starter config") {
		t.Errorf("stderr = %q", stderr)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "- garden") {
		t.Errorf("config missing suggested keyword:\n%s", data)
	}

	// The written config is valid input for validate.
	if _, _, err := execute(t, NewValidateCommand(), "", configPath); err != nil {
		t.Errorf("validate on starter config: %v", err)
	}

	if _, _, err := execute(t, NewDetectCommand(&GlobalOptions{}), "", "-w", configPath, path); err == nil {
		t.Error("expected error when config exists")
	}
}

func TestRunDetect_Errors(t *testing.T) {
	if _, _, err := execute(t, NewDetectCommand(&GlobalOptions{}), "", "/nonexistent/notes.txt"); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeTempFile(t, "notes.txt", detectNotes)
	if _, _, err := execute(t, NewDetectCommand(&GlobalOptions{}), "", "-o", "xml", path); err == nil {
		t.Error("expected error for unknown format")
	}
}
