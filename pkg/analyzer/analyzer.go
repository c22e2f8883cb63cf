package analyzer

import (
	"fmt"

	"golang.org/x/text/cases"

	"github.com/ccollicutt/notemap/pkg/config"
	"github.com/ccollicutt/notemap/pkg/parser"
)

// Analyzer classifies note lines and detects connections between them.
// It holds no per-run state, so one Analyzer may serve concurrent callers.
type Analyzer struct {
	rules *RuleSet

	window         int
	minTokenLength int
	previewLength  int
}

// AnalyzerOption configures analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithRules replaces the rule table.
func WithRules(rules *RuleSet) AnalyzerOption {
	return func(a *Analyzer) {
		if rules != nil {
			a.rules = rules
		}
	}
}

// WithWindow sets how many preceding lines are checked for connections.
func WithWindow(n int) AnalyzerOption {
	return func(a *Analyzer) {
		a.window = n
	}
}

// WithMinTokenLength sets the shortest token considered for connections.
func WithMinTokenLength(n int) AnalyzerOption {
	return func(a *Analyzer) {
		a.minTokenLength = n
	}
}

// WithPreviewLength sets how many characters a connection preview keeps.
func WithPreviewLength(n int) AnalyzerOption {
	return func(a *Analyzer) {
		a.previewLength = n
	}
}

// NewAnalyzer creates an analyzer from configuration.
// A nil configuration selects the built-in defaults.
func NewAnalyzer(cfg *config.Config, opts ...AnalyzerOption) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	a := &Analyzer{
		rules:          RulesFromConfig(cfg),
		window:         cfg.Connections.Window,
		minTokenLength: cfg.Connections.MinTokenLength,
		previewLength:  cfg.Connections.PreviewLength,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.window < 1 {
		return nil, fmt.Errorf("connection window must be >= 1, got %d", a.window)
	}
	if a.minTokenLength < 1 {
		return nil, fmt.Errorf("minimum token length must be >= 1, got %d", a.minTokenLength)
	}
	if a.previewLength < 1 {
		return nil, fmt.Errorf("preview length must be >= 1, got %d", a.previewLength)
	}

	return a, nil
}

// Rules returns the analyzer's rule table.
func (a *Analyzer) Rules() *RuleSet {
	return a.rules
}

// Analyze parses raw text and classifies every non-empty line.
// Returns ErrEmptyInput if raw is empty or whitespace only.
func (a *Analyzer) Analyze(raw string) (*Analysis, error) {
	lines, err := parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	return a.Classify(lines), nil
}

// Classify classifies already parsed lines.
func (a *Analyzer) Classify(lines []parser.Line) *Analysis {
	traces := a.trace(lines)

	analysis := &Analysis{
		Notes:           make([]ClassifiedLine, 0, len(traces)),
		DefaultCategory: a.rules.Fallback(),
	}

	var categories categorySet
	for _, t := range traces {
		analysis.Notes = append(analysis.Notes, t.Line)
		categories.add(t.Line.Category)
	}
	analysis.Categories = categories.list()

	return analysis
}

// Trace analyzes raw text and explains each line's category and connections.
func (a *Analyzer) Trace(raw string) ([]LineTrace, error) {
	lines, err := parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	return a.trace(lines), nil
}

func (a *Analyzer) trace(lines []parser.Line) []LineTrace {
	// Casers are stateful; each run gets its own.
	lower := cases.Lower(a.rules.Language())

	tokenSets := make([]map[string]bool, len(lines))
	for i, line := range lines {
		tokenSets[i] = tokenSet(line.Raw, a.minTokenLength, lower)
	}

	traces := make([]LineTrace, 0, len(lines))
	for i, line := range lines {
		match := a.rules.matchLower(lower.String(line.Content))

		t := LineTrace{
			Line: ClassifiedLine{
				Level:       line.Level,
				Content:     line.Content,
				Category:    match.Category,
				Connections: []string{},
				LineNum:     line.LineNum,
			},
			Keyword: match.Keyword,
		}

		for j := max(0, i-a.window); j < i; j++ {
			shared := sharedTokens(line.Content, tokenSets[j], a.minTokenLength, lower)
			if len(shared) == 0 {
				continue
			}
			preview := Preview(lines[j].Content, a.previewLength)
			t.Line.Connections = append(t.Line.Connections, preview)
			t.Links = append(t.Links, Link{
				LineNum: lines[j].LineNum,
				Preview: preview,
				Shared:  shared,
			})
		}

		traces = append(traces, t)
	}

	return traces
}

// categorySet accumulates categories in first-seen order.
type categorySet struct {
	order []Category
	seen  map[Category]bool
}

func (s *categorySet) add(c Category) {
	if s.seen == nil {
		s.seen = make(map[Category]bool)
	}
	if !s.seen[c] {
		s.seen[c] = true
		s.order = append(s.order, c)
	}
}

func (s *categorySet) list() []Category {
	if s.order == nil {
		return []Category{}
	}
	return s.order
}
