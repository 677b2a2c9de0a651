package intake

import (
	"log/slog"

	"github.com/google/cel-go/cel"
	"github.com/lendfolio/lendfolio/internal/errors"
)

// ChecklistRule contributes its items when its condition holds. An empty
// condition always matches, which is how the baseline items are declared.
type ChecklistRule struct {
	When  string
	Items []string
}

// Checklist derives the required-documents list from an answer set. Rules are
// independent and additive: every matching rule contributes all of its items
// in declaration order and overlapping items are intentionally not
// deduplicated.
type Checklist struct {
	rules []ChecklistRule
	// programs is parallel to rules; nil for always-matching rules.
	programs []cel.Program
}

// NewChecklist compiles the rule conditions once up front.
func NewChecklist(rules []ChecklistRule) (*Checklist, error) {
	env, err := newRuleEnv()
	if err != nil {
		return nil, err
	}

	programs := make([]cel.Program, len(rules))
	for i, rule := range rules {
		if rule.When == "" {
			continue
		}
		if programs[i], err = compileRule(env, rule.When); err != nil {
			return nil, errors.Wrap(err, "compile checklist rule", slog.Int("rule", i))
		}
	}

	return &Checklist{rules: rules, programs: programs}, nil
}

// Build computes the checklist for the answer set. The result is derived
// fresh on every call so it can never go stale against the answers.
func (c *Checklist) Build(answers Answers) []string {
	var items []string
	for i, rule := range c.rules {
		if c.programs[i] != nil && !evalRule(c.programs[i], answers) {
			continue
		}
		items = append(items, rule.Items...)
	}
	return items
}
