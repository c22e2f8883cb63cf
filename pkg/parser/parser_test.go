package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_LevelsAndContent(t *testing.T) {
	raw := "Buy milk\n  Check price\nFix the shelf"

	lines, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(lines) != 3 {
		t.Fatalf("Got %d lines, want 3", len(lines))
	}

	wantLevels := []int{0, 2, 0}
	wantContent := []string{"Buy milk", "Check price", "Fix the shelf"}
	for i, line := range lines {
		if line.Level != wantLevels[i] {
			t.Errorf("lines[%d].Level = %d, want %d", i, line.Level, wantLevels[i])
		}
		if line.Content != wantContent[i] {
			t.Errorf("lines[%d].Content = %q, want %q", i, line.Content, wantContent[i])
		}
	}

	if lines[1].Raw != "  Check price" {
		t.Errorf("lines[1].Raw = %q, want untrimmed form", lines[1].Raw)
	}
}

func TestParse_DropsBlankLines(t *testing.T) {
	raw := "\n\nfirst\n   \n\t\nsecond\n\n"

	lines, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("Got %d lines, want 2", len(lines))
	}
	if lines[0].LineNum != 3 {
		t.Errorf("lines[0].LineNum = %d, want 3", lines[0].LineNum)
	}
	if lines[1].LineNum != 6 {
		t.Errorf("lines[1].LineNum = %d, want 6", lines[1].LineNum)
	}
}

func TestParse_CarriageReturns(t *testing.T) {
	lines, err := Parse("one\r\n  two\r\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("Got %d lines, want 2", len(lines))
	}
	if lines[1].Content != "two" || lines[1].Level != 2 {
		t.Errorf("lines[1] = %+v, want content \"two\" at level 2", lines[1])
	}
}

func TestParse_EmptyInput(t *testing.T) {
	inputs := []string{"", "   ", "\n\n", "\t \n  \r\n"}

	for _, raw := range inputs {
		_, err := Parse(raw)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Parse(%q) error = %v, want ErrEmptyInput", raw, err)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"none", 0},
		{" one", 1},
		{"\tone", 1},
		{"    four", 4},
		{"\t\t\ttabs", 3},
		{" \t \tmixed", 4},
		{"\u00a0nbsp", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := Level(tt.input); got != tt.want {
			t.Errorf("Level(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFileSource_ReadAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	content := "Buy milk\n  Check price\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewFileSource(path)
	if source.Name() != path {
		t.Errorf("Name() = %q, want %q", source.Name(), path)
	}

	text, err := source.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if text != "Buy milk\n  Check price" {
		t.Errorf("ReadAll() = %q", text)
	}
}

func TestFileSource_FileNotFound(t *testing.T) {
	source := NewFileSource("/nonexistent/notes.txt")

	_, err := source.ReadAll(context.Background())
	if err == nil {
		t.Error("ReadAll() expected error for missing file")
	}
}

func TestReaderSource_ContextCancellation(t *testing.T) {
	source := NewReaderSource(StdinName, strings.NewReader("line\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.ReadAll(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ReadAll() error = %v, want context.Canceled", err)
	}
}

func TestReadSources_Concatenates(t *testing.T) {
	a := NewReaderSource("a", strings.NewReader("first\n  nested"))
	b := NewReaderSource("b", strings.NewReader("second"))

	text, err := ReadSources(context.Background(), a, b)
	if err != nil {
		t.Fatalf("ReadSources() error = %v", err)
	}
	if text != "first\n  nested\nsecond" {
		t.Errorf("ReadSources() = %q", text)
	}
}
