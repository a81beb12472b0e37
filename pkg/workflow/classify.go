package workflow

import (
	"errors"
	"fmt"
	"strings"
)

// Category is the semantic operational class of a node.
type Category string

const (
	CategoryAI      Category = "ai"
	CategoryHTTP    Category = "http"
	CategoryCode    Category = "code"
	CategoryGeneric Category = "generic"
)

// ErrUnknownCategory is returned by NewClassifier for rules that target an unknown category.
var ErrUnknownCategory = errors.New("unknown category")

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryAI, CategoryHTTP, CategoryCode, CategoryGeneric:
		return true
	}
	return false
}

// Rule maps a category to the keywords that select it. Patterns are matched as
// case-insensitive substrings of the node type.
type Rule struct {
	Category Category
	Patterns []string
}

// DefaultRules returns the built-in rule table in priority order: AI, HTTP, Code.
func DefaultRules() []Rule {
	return []Rule{
		{Category: CategoryAI, Patterns: []string{
			"openai", "anthropic", "langchain", "lmchat", "gemini", "mistral", "ollama",
			"groq", "cohere", "huggingface", "deepseek", "perplexity", "llm", "agent",
		}},
		{Category: CategoryHTTP, Patterns: []string{"http", "webhook", "request"}},
		{Category: CategoryCode, Patterns: []string{"code", "function", "python", "javascript", "script"}},
	}
}

// Classifier assigns categories using an ordered rule table; the first matching rule wins.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier from rules, evaluated in slice order. Without rules the
// default table is used.
func NewClassifier(rules ...Rule) (*Classifier, error) {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	c := &Classifier{rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		if !r.Category.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, r.Category)
		}
		lowered := make([]string, 0, len(r.Patterns))
		for _, p := range r.Patterns {
			if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
				lowered = append(lowered, p)
			}
		}
		c.rules = append(c.rules, Rule{Category: r.Category, Patterns: lowered})
	}
	return c, nil
}

func defaultClassifier() *Classifier {
	c, _ := NewClassifier(DefaultRules()...)
	return c
}

// Classify returns the category of a node type. It never returns an empty category.
func (c *Classifier) Classify(nodeType string) Category {
	t := strings.ToLower(nodeType)
	for _, r := range c.rules {
		for _, p := range r.Patterns {
			if strings.Contains(t, p) {
				return r.Category
			}
		}
	}
	return CategoryGeneric
}

// IsTrigger reports whether a node type starts a workflow run.
func IsTrigger(nodeType string) bool {
	t := strings.ToLower(nodeType)
	return strings.Contains(t, "trigger") || strings.Contains(t, "webhook")
}
