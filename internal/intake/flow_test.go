package intake_test

import (
	"testing"

	"github.com/lendfolio/lendfolio/internal/intake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDefaultQuestionSet(t *testing.T) *intake.QuestionSet {
	t.Helper()
	qs, err := intake.DefaultQuestionSet()
	require.NoError(t, err)
	return qs
}

func TestQuestionSet_Flow_Branching(t *testing.T) {
	qs := mustDefaultQuestionSet(t)

	tests := []struct {
		name     string
		answers  intake.Answers
		wantFlow []string
	}{
		{
			name:    "individual borrower routes through annual income",
			answers: intake.Answers{"borrower_type": "Individual"},
			wantFlow: []string{
				"borrower_type", "property_type", "loan_amount", "credit_score",
				"annual_income", "closing_timeline", "additional_notes",
			},
		},
		{
			name:    "LLC routes through business revenue",
			answers: intake.Answers{"borrower_type": "LLC"},
			wantFlow: []string{
				"borrower_type", "property_type", "loan_amount", "credit_score",
				"business_revenue", "closing_timeline", "additional_notes",
			},
		},
		{
			name:    "corporation routes through business revenue",
			answers: intake.Answers{"borrower_type": "Corporation"},
			wantFlow: []string{
				"borrower_type", "property_type", "loan_amount", "credit_score",
				"business_revenue", "closing_timeline", "additional_notes",
			},
		},
		{
			name:    "no answers defaults to the business branch",
			answers: intake.Answers{},
			wantFlow: []string{
				"borrower_type", "property_type", "loan_amount", "credit_score",
				"business_revenue", "closing_timeline", "additional_notes",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFlow, qs.Flow(tt.answers))
		})
	}
}

func TestQuestionSet_Flow_Deterministic(t *testing.T) {
	qs := mustDefaultQuestionSet(t)
	answers := intake.Answers{"borrower_type": "Individual", "credit_score": float64(700)}

	first := qs.Flow(answers)
	second := qs.Flow(answers)

	assert.Equal(t, first, second)
}

func TestQuestionSet_Flow_CycleGuard(t *testing.T) {
	qs, err := intake.NewQuestionSet([]intake.Question{
		{ID: "a", Prompt: "A?", Type: intake.QuestionTypeText, Next: intake.NextRule{Kind: intake.NextGoto, Target: "b"}},
		{ID: "b", Prompt: "B?", Type: intake.QuestionTypeText, Next: intake.NextRule{Kind: intake.NextGoto, Target: "a"}},
	})
	require.NoError(t, err)

	// The intentionally cyclic rule terminates at the revisit.
	assert.Equal(t, []string{"a", "b"}, qs.Flow(intake.Answers{}))
}

func TestQuestionSet_Flow_UnknownTargetEndsFlow(t *testing.T) {
	qs, err := intake.NewQuestionSet([]intake.Question{
		{ID: "a", Prompt: "A?", Type: intake.QuestionTypeText, Next: intake.NextRule{Kind: intake.NextGoto, Target: "missing"}},
		{ID: "b", Prompt: "B?", Type: intake.QuestionTypeText},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, qs.Flow(intake.Answers{}))
}

func TestQuestionSet_Flow_EndFromFirstQuestion(t *testing.T) {
	qs, err := intake.NewQuestionSet([]intake.Question{
		{ID: "only", Prompt: "Only?", Type: intake.QuestionTypeText, Next: intake.NextRule{Kind: intake.NextEnd}},
		{ID: "never", Prompt: "Never?", Type: intake.QuestionTypeText},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"only"}, qs.Flow(intake.Answers{}))
}

func TestQuestionSet_NextQuestionID(t *testing.T) {
	qs := mustDefaultQuestionSet(t)

	tests := []struct {
		name      string
		currentID string
		answers   intake.Answers
		want      string
	}{
		{"sequential successor", "borrower_type", intake.Answers{}, "property_type"},
		{"conditional individual", "credit_score", intake.Answers{"borrower_type": "Individual"}, "annual_income"},
		{"conditional entity", "credit_score", intake.Answers{"borrower_type": "LLC"}, "business_revenue"},
		{"goto convergence", "annual_income", intake.Answers{}, "closing_timeline"},
		{"last question ends flow", "additional_notes", intake.Answers{}, ""},
		{"unknown id ends flow", "nonexistent", intake.Answers{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, qs.NextQuestionID(tt.currentID, tt.answers))
		})
	}
}

func TestQuestionSet_Progress(t *testing.T) {
	qs := mustDefaultQuestionSet(t)

	completed, total := qs.Progress(intake.Answers{})
	assert.Equal(t, 0, completed)
	assert.Equal(t, 7, total)

	completed, total = qs.Progress(intake.Answers{
		"borrower_type": "Individual",
		"property_type": "Office",
		// Stale answer for a question outside the individual branch.
		"business_revenue": float64(100000),
	})
	assert.Equal(t, 2, completed)
	assert.Equal(t, 7, total)
}

func TestNewQuestionSet_Validation(t *testing.T) {
	_, err := intake.NewQuestionSet(nil)
	require.Error(t, err)

	_, err = intake.NewQuestionSet([]intake.Question{
		{ID: "a", Prompt: "A?", Type: intake.QuestionTypeText},
		{ID: "a", Prompt: "A again?", Type: intake.QuestionTypeText},
	})
	require.Error(t, err)

	_, err = intake.NewQuestionSet([]intake.Question{
		{ID: "a", Prompt: "A?", Type: intake.QuestionTypeText, Next: intake.NextRule{
			Kind:     intake.NextConditional,
			Branches: []intake.Branch{{When: "this is not CEL((", Target: "b"}},
			Default:  "b",
		}},
		{ID: "b", Prompt: "B?", Type: intake.QuestionTypeText},
	})
	require.Error(t, err)
}
