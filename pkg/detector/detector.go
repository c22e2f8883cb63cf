// Package detector profiles notes files: how they are indented and how well
// the current rule table covers them.
package detector

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/ccollicutt/notemap/pkg/analyzer"
	"github.com/ccollicutt/notemap/pkg/config"
	"github.com/ccollicutt/notemap/pkg/parser"
)

// IndentStyle describes which whitespace a file indents with.
type IndentStyle string

const (
	IndentNone   IndentStyle = "none"
	IndentSpaces IndentStyle = "spaces"
	IndentTabs   IndentStyle = "tabs"
	IndentMixed  IndentStyle = "mixed"
)

// Profile is the result of sampling a notes file.
type Profile struct {
	SampledLines int           `json:"sampled_lines"`
	Style        IndentStyle   `json:"indent_style"`
	IndentUnit   int           `json:"indent_unit"`
	MaxLevel     int           `json:"max_level"`
	Levels       []LevelCount  `json:"levels"`
	Categories   []CategoryHit `json:"categories"`
	Suggestions  []Suggestion  `json:"suggestions"`

	// Fallback is the category that unmatched lines fall into.
	Fallback analyzer.Category `json:"fallback"`
}

// LevelCount is one histogram bucket.
type LevelCount struct {
	Level int `json:"level"`
	Count int `json:"count"`
}

// CategoryHit counts the sampled lines assigned to a category.
type CategoryHit struct {
	Category analyzer.Category `json:"category"`
	Count    int               `json:"count"`
}

// Suggestion is a frequent token among uncategorized lines.
type Suggestion struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// Uncategorized returns how many sampled lines fell into the fallback category.
func (p *Profile) Uncategorized() int {
	for _, h := range p.Categories {
		if h.Category == p.Fallback {
			return h.Count
		}
	}
	return 0
}

// Detector samples notes and builds a Profile.
type Detector struct {
	rules          *analyzer.RuleSet
	sampleSize     int
	minTokenLength int
	maxSuggestions int
	minOccurrences int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of non-blank lines to sample (default 200).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithRules sets the rule table used for category hits.
func WithRules(rules *analyzer.RuleSet) Option {
	return func(d *Detector) {
		if rules != nil {
			d.rules = rules
		}
	}
}

// WithMaxSuggestions caps the number of keyword suggestions (default 5).
func WithMaxSuggestions(n int) Option {
	return func(d *Detector) {
		if n >= 0 {
			d.maxSuggestions = n
		}
	}
}

// New creates a new Detector using the default rule table.
func New(opts ...Option) *Detector {
	d := &Detector{
		rules:          analyzer.DefaultRules(),
		sampleSize:     200,
		minTokenLength: config.DefaultMinTokenLength,
		maxSuggestions: 5,
		minOccurrences: 2,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ProfileFile samples a notes file and profiles it.
func (d *Detector) ProfileFile(ctx context.Context, path string) (*Profile, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.ProfileLines(lines), nil
}

// ProfileLines profiles raw lines. Blank lines are ignored.
func (d *Detector) ProfileLines(lines []string) *Profile {
	p := &Profile{
		Style:    IndentNone,
		Fallback: d.rules.Fallback(),
	}

	lower := cases.Lower(d.rules.Language())
	levels := make(map[int]int)
	hits := make(map[analyzer.Category]int)
	tokens := make(map[string]int)
	var sawSpaces, sawTabs bool
	unit := 0

	for _, raw := range lines {
		raw = strings.TrimRight(raw, "\r")
		content := strings.TrimSpace(raw)
		if content == "" {
			continue
		}
		p.SampledLines++

		level := parser.Level(raw)
		levels[level]++
		p.MaxLevel = max(p.MaxLevel, level)

		prefix := raw[:level]
		hasSpace := strings.Contains(prefix, " ")
		hasTab := strings.Contains(prefix, "\t")
		sawSpaces = sawSpaces || hasSpace
		sawTabs = sawTabs || hasTab
		if hasSpace && !hasTab {
			unit = gcd(unit, level)
		}

		category := d.rules.Classify(content)
		hits[category]++
		if category == p.Fallback {
			for _, tok := range strings.Fields(lower.String(content)) {
				tok = strings.TrimFunc(tok, func(r rune) bool {
					return !unicode.IsLetter(r) && !unicode.IsDigit(r)
				})
				if len([]rune(tok)) >= d.minTokenLength {
					tokens[tok]++
				}
			}
		}
	}

	switch {
	case sawSpaces && sawTabs:
		p.Style = IndentMixed
	case sawSpaces:
		p.Style = IndentSpaces
		p.IndentUnit = unit
	case sawTabs:
		p.Style = IndentTabs
		p.IndentUnit = 1
	}

	p.Levels = make([]LevelCount, 0, len(levels))
	for level, count := range levels {
		p.Levels = append(p.Levels, LevelCount{Level: level, Count: count})
	}
	sort.Slice(p.Levels, func(i, j int) bool { return p.Levels[i].Level < p.Levels[j].Level })

	p.Categories = make([]CategoryHit, 0, len(hits))
	for _, rule := range d.rules.Rules() {
		if n := hits[rule.Category]; n > 0 {
			p.Categories = append(p.Categories, CategoryHit{Category: rule.Category, Count: n})
		}
	}
	if n := hits[p.Fallback]; n > 0 {
		p.Categories = append(p.Categories, CategoryHit{Category: p.Fallback, Count: n})
	}

	p.Suggestions = d.suggest(tokens)

	return p
}

// suggest ranks tokens by frequency, then alphabetically.
func (d *Detector) suggest(tokens map[string]int) []Suggestion {
	suggestions := make([]Suggestion, 0)
	for tok, n := range tokens {
		if n >= d.minOccurrences {
			suggestions = append(suggestions, Suggestion{Token: tok, Count: n})
		}
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Count != suggestions[j].Count {
			return suggestions[i].Count > suggestions[j].Count
		}
		return suggestions[i].Token < suggestions[j].Token
	})
	if len(suggestions) > d.maxSuggestions {
		suggestions = suggestions[:d.maxSuggestions]
	}
	return suggestions
}

// sampleFile reads up to sampleSize non-blank lines from a file.
func (d *Detector) sampleFile(ctx context.Context, path string) ([]string, error) {
	file, err := os.Open(path) // #nosec G304 -- path is provided by user via CLI
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() && len(lines) < d.sampleSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return lines, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
