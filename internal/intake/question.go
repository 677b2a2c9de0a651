// Package intake implements the guided loan intake assistant: the question
// graph, flow resolution, answer validation, the conversational wizard, and
// the derived document checklist.
package intake

import (
	"log/slog"

	"github.com/google/cel-go/cel"
	"github.com/lendfolio/lendfolio/internal/errors"
)

type QuestionType string

const (
	QuestionTypeChoice QuestionType = "choice"
	QuestionTypeNumber QuestionType = "number"
	QuestionTypeText   QuestionType = "text"
)

// ValueFormat selects how an answer is rendered in transcripts, prompts and
// the package document.
type ValueFormat string

const (
	FormatVerbatim        ValueFormat = "verbatim"
	FormatCurrency        ValueFormat = "currency"
	FormatCurrencyPerYear ValueFormat = "currency_per_year"
)

// NextKind tags the routing rule variants. The default-sequential rule is a
// named variant so that "no rule" and "rule ends the flow" stay distinct.
type NextKind string

const (
	// NextSequential routes to the next question in declaration order.
	NextSequential NextKind = "sequential"
	// NextGoto routes to a fixed question id.
	NextGoto NextKind = "goto"
	// NextConditional routes to the first branch whose condition matches,
	// falling back to Default.
	NextConditional NextKind = "conditional"
	// NextEnd terminates the flow.
	NextEnd NextKind = "end"
)

// Branch routes the flow to Target when its condition holds for the current
// answer set. Conditions are CEL expressions over a single `answers` map
// variable, e.g. `answers.borrower_type == 'Individual'`.
type Branch struct {
	When   string
	Target string
}

// NextRule is a declarative routing rule. The zero value behaves as
// NextSequential.
type NextRule struct {
	Kind     NextKind
	Target   string   // NextGoto
	Branches []Branch // NextConditional
	Default  string   // NextConditional fallback target
}

type Question struct {
	ID          string
	Prompt      string
	Type        QuestionType
	Options     []string // QuestionTypeChoice
	Min         *float64 // QuestionTypeNumber, inclusive
	Max         *float64 // QuestionTypeNumber, inclusive
	Placeholder string
	Format      ValueFormat // zero value renders verbatim
	Next        NextRule
}

// QuestionSet is the immutable, compiled question graph. It is constructed
// once at startup and shared by reference; all methods are safe for
// concurrent use.
type QuestionSet struct {
	questions []Question
	index     map[string]int
	// branchPrograms holds the compiled branch conditions per question id,
	// in branch declaration order.
	branchPrograms map[string][]cel.Program
}

// NewQuestionSet validates and compiles the question table. Duplicate ids,
// empty tables and malformed branch conditions are construction errors.
func NewQuestionSet(questions []Question) (*QuestionSet, error) {
	if len(questions) == 0 {
		return nil, errors.New("question set must not be empty")
	}

	env, err := newRuleEnv()
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(questions))
	branchPrograms := make(map[string][]cel.Program)
	for i, q := range questions {
		if q.ID == "" {
			return nil, errors.New("question id must not be empty", slog.Int("position", i))
		}
		if _, exists := index[q.ID]; exists {
			return nil, errors.New("duplicate question id", slog.String("id", q.ID))
		}
		index[q.ID] = i

		if q.Next.Kind != NextConditional {
			continue
		}
		programs := make([]cel.Program, 0, len(q.Next.Branches))
		for _, branch := range q.Next.Branches {
			var program cel.Program
			if program, err = compileRule(env, branch.When); err != nil {
				return nil, errors.Wrap(err, "compile branch condition",
					slog.String("question", q.ID), slog.String("target", branch.Target))
			}
			programs = append(programs, program)
		}
		branchPrograms[q.ID] = programs
	}

	return &QuestionSet{
		questions:      questions,
		index:          index,
		branchPrograms: branchPrograms,
	}, nil
}

// Question looks up a question by id.
func (qs *QuestionSet) Question(id string) (Question, bool) {
	i, ok := qs.index[id]
	if !ok {
		return Question{}, false
	}
	return qs.questions[i], true
}

// FirstID returns the id of the fixed first question of the flow.
func (qs *QuestionSet) FirstID() string {
	return qs.questions[0].ID
}

func (qs *QuestionSet) Len() int {
	return len(qs.questions)
}

func newRuleEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("answers", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create rule environment")
	}
	return env, nil
}

func compileRule(env *cel.Env, expression string) (cel.Program, error) {
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, errors.Wrap(issues.Err(), "compile rule expression",
			slog.String("expression", expression))
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, errors.Wrap(err, "build rule program",
			slog.String("expression", expression))
	}
	return program, nil
}

// evalRule evaluates a compiled condition against the answer set. Evaluation
// errors (such as referencing an answer that is not present) and non-boolean
// results count as no-match rather than failures, so a partially answered
// flow routes through rule defaults.
func evalRule(program cel.Program, answers Answers) bool {
	out, _, err := program.Eval(map[string]any{"answers": map[string]any(answers)})
	if err != nil {
		return false
	}
	matched, ok := out.Value().(bool)
	return ok && matched
}
