package analyzer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ccollicutt/notemap/pkg/config"
)

// Rule maps trigger keywords to a category.
type Rule struct {
	Category    Category `json:"category"`
	Keywords    []string `json:"keywords"`
	Description string   `json:"description,omitempty"`
}

// Match is the outcome of evaluating a rule set against one line.
type Match struct {
	Category Category

	// Keyword is the trigger that matched; empty when the fallback applied.
	Keyword string

	// Priority is the 0-based index of the matching rule, or -1 for the fallback.
	Priority int
}

// RuleSet is an ordered keyword rule table. The first matching rule wins.
// A RuleSet is immutable and safe for concurrent use.
type RuleSet struct {
	rules    []Rule
	fallback Category
	tag      language.Tag
}

// NewRuleSet builds a rule table. Keywords are lower-cased with the rules of
// the given language; matching is a substring test on lower-cased content.
func NewRuleSet(rules []Rule, fallback Category, tag language.Tag) *RuleSet {
	lower := cases.Lower(tag)

	rs := &RuleSet{
		rules:    make([]Rule, 0, len(rules)),
		fallback: fallback,
		tag:      tag,
	}
	for _, r := range rules {
		keywords := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = lower.String(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		rs.rules = append(rs.rules, Rule{
			Category:    r.Category,
			Keywords:    keywords,
			Description: r.Description,
		})
	}
	return rs
}

// RulesFromConfig builds the rule table described by a configuration.
func RulesFromConfig(cfg *config.Config) *RuleSet {
	rules := make([]Rule, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		rules = append(rules, Rule{
			Category:    Category(c.Name),
			Keywords:    c.Keywords,
			Description: c.Description,
		})
	}
	return NewRuleSet(rules, Category(cfg.DefaultCategory), cfg.Language())
}

// DefaultRules returns the built-in rule table.
func DefaultRules() *RuleSet {
	return RulesFromConfig(config.DefaultConfig())
}

// Rules returns a copy of the rule table in priority order.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Fallback returns the default category.
func (rs *RuleSet) Fallback() Category {
	return rs.fallback
}

// Language returns the tag used for lower-casing.
func (rs *RuleSet) Language() language.Tag {
	return rs.tag
}

// Match evaluates the rules against content.
func (rs *RuleSet) Match(content string) Match {
	return rs.matchLower(cases.Lower(rs.tag).String(content))
}

// Classify returns the category for content.
func (rs *RuleSet) Classify(content string) Category {
	return rs.Match(content).Category
}

// matchLower evaluates the rules against already lower-cased content.
func (rs *RuleSet) matchLower(lowered string) Match {
	for i, r := range rs.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lowered, kw) {
				return Match{Category: r.Category, Keyword: kw, Priority: i}
			}
		}
	}
	return Match{Category: rs.fallback, Priority: -1}
}
