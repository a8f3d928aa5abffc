package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nyanyapushkina/log-analysis-bot/internal/model"
)

// Rule maps a set of keyword tokens to one category. Matching is
// case-insensitive and token-boundary aware: a token matches only when
// flanked by non-word characters or line edges, so "[ERROR]", "ERROR:"
// and a bare "ERROR" all match while "TERRORIST" does not.
type Rule struct {
	Name     string
	Category model.Category
	Tokens   []string
	re       *regexp.Regexp
}

// NewRule compiles a rule from its token list.
func NewRule(name string, category model.Category, tokens []string) (*Rule, error) {
	if !model.ValidCategory(category) {
		return nil, fmt.Errorf("rule %q: unknown category %q", name, category)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("rule %q: no tokens", name)
	}

	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = regexp.QuoteMeta(strings.TrimSpace(tok))
	}
	re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", name, err)
	}

	return &Rule{Name: name, Category: category, Tokens: tokens, re: re}, nil
}

// Matches reports whether the line contains any of the rule's tokens.
func (r *Rule) Matches(line string) bool {
	return r.re.MatchString(line)
}

// Set is an ordered collection of rules. Evaluation order follows the
// order rules were added; the classification result is a set, so order
// only matters for documentation and listing, not for outcomes.
type Set struct {
	rules []*Rule
}

// NewSet builds a Set from pre-compiled rules.
func NewSet(rules ...*Rule) *Set {
	return &Set{rules: rules}
}

// Default returns the built-in rule set: ERROR, WARNING and AUTH
// keyword rules matching the shipped rule file.
func Default() *Set {
	set, err := FromConfig(DefaultConfig())
	if err != nil {
		// The built-in config is static; a compile failure here is a bug.
		panic(fmt.Sprintf("rules: default config invalid: %v", err))
	}
	return set
}

// Rules returns the rules in evaluation order.
func (s *Set) Rules() []*Rule { return s.rules }

// Categories returns the known categories in canonical order, limited
// to those that at least one rule targets.
func (s *Set) Categories() []model.Category {
	present := make(map[model.Category]bool, len(s.rules))
	for _, r := range s.rules {
		present[r.Category] = true
	}
	var out []model.Category
	for _, c := range model.Categories {
		if present[c] {
			out = append(out, c)
		}
	}
	return out
}

// ClassifyLine returns the set of categories the line belongs to.
// A line may match several rules; the empty set means unmatched.
// Pure: same line and same Set always yield the same result.
func (s *Set) ClassifyLine(line string) map[model.Category]bool {
	out := make(map[model.Category]bool)
	for _, r := range s.rules {
		if out[r.Category] {
			continue
		}
		if r.Matches(line) {
			out[r.Category] = true
		}
	}
	return out
}
