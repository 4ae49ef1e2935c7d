// Package intent selects the retrieval path for an utterance from an ordered
// bilingual keyword table.
package intent

import (
	"strings"

	"neelakshi-ai/internal/models"
)

type Classifier struct {
	rules []Rule
}

// New returns a classifier over rules, or DefaultRules when none are given.
// The rules are copied and lower-cased once.
func New(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules
	}

	own := make([]Rule, len(rules))
	for i, r := range rules {
		triggers := make([]string, 0, len(r.Triggers))
		for _, t := range r.Triggers {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				triggers = append(triggers, t)
			}
		}
		own[i] = Rule{Category: r.Category, Triggers: triggers}
	}
	return &Classifier{rules: own}
}

// Classify returns the category of the first matching rule, or
// DirectCompletion when nothing matches.
func (c *Classifier) Classify(u models.Utterance) models.IntentCategory {
	for _, r := range c.rules {
		if r.matches(u.Normalized) {
			return r.Category
		}
	}
	return models.IntentDirectCompletion
}

// Candidates returns every matching category in priority order. The list is
// never empty; with no match it holds only DirectCompletion.
func (c *Classifier) Candidates(u models.Utterance) []models.IntentCategory {
	var out []models.IntentCategory
	for _, r := range c.rules {
		if r.matches(u.Normalized) {
			out = append(out, r.Category)
		}
	}
	if len(out) == 0 {
		out = append(out, models.IntentDirectCompletion)
	}
	return out
}

func (r Rule) matches(normalized string) bool {
	for _, t := range r.Triggers {
		if strings.Contains(normalized, t) {
			return true
		}
	}
	return false
}
