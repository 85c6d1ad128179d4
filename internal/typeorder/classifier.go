package typeorder

import (
	"errors"
	"fmt"
	"strings"
)

// Rule maps every key containing Pattern to Category.
type Rule struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
}

// DefaultRules collapse the custom embed variants emitted by legacy exports.
var DefaultRules = []Rule{
	{Pattern: "customembed", Category: "customembed"},
}

// Classifier maps identity keys to ordering categories. The first matching
// rule wins.
type Classifier struct {
	rules []Rule
}

// NewClassifier validates rules and builds a Classifier. Patterns are matched
// case-insensitively and ignore "_", "-" and spaces.
func NewClassifier(rules []Rule) (*Classifier, error) {
	c := &Classifier{rules: make([]Rule, 0, len(rules))}

	for i, r := range rules {
		pattern := squash(strings.ToLower(r.Pattern))
		if pattern == "" {
			return nil, fmt.Errorf("classifier rule %d: pattern is required", i)
		}

		if r.Category == "" {
			return nil, fmt.Errorf("classifier rule %d (%s): category is required", i, r.Pattern)
		}

		c.rules = append(c.rules, Rule{Pattern: pattern, Category: strings.ToLower(r.Category)})
	}

	return c, nil
}

// DefaultClassifier returns a Classifier built from DefaultRules.
func DefaultClassifier() *Classifier {
	c, err := NewClassifier(DefaultRules)
	if err != nil {
		panic(errors.Join(errors.New("default classifier rules are invalid"), err))
	}

	return c
}

// Classify returns the category of key: the category of the first matching
// rule, or the lower-cased key itself.
func (c *Classifier) Classify(key string) string {
	lower := strings.ToLower(key)
	squashed := squash(lower)

	for _, r := range c.rules {
		if strings.Contains(squashed, r.Pattern) {
			return r.Category
		}
	}

	return lower
}

// Rules returns a copy of the normalized rule table.
func (c *Classifier) Rules() []Rule {
	return append([]Rule{}, c.rules...)
}

// squash removes the separators ignored by pattern matching.
func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || r == ' ' {
			return -1
		}

		return r
	}, s)
}
