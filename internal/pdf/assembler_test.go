package pdf_test

import (
	"testing"
	"time"

	"github.com/lendfolio/lendfolio/internal/errors"
	"github.com/lendfolio/lendfolio/internal/intake"
	"github.com/lendfolio/lendfolio/internal/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
}

func newTestAssembler(t *testing.T) *pdf.Assembler {
	t.Helper()
	qs, err := intake.DefaultQuestionSet()
	require.NoError(t, err)
	return pdf.NewAssembler(qs, fixedClock)
}

func TestAssembler_Build(t *testing.T) {
	assembler := newTestAssembler(t)
	answers := intake.Answers{
		"borrower_type": "LLC",
		"property_type": "Multifamily",
		"loan_amount":   float64(250000),
	}
	summary := "Executive Summary\n\nStrong sponsor with stabilized cash flow."
	checklist := []string{"Articles of organization/incorporation", "Current rent roll by unit"}

	document, err := assembler.Build(answers, summary, checklist)

	require.NoError(t, err)
	require.NotEmpty(t, document)
	assert.Equal(t, "%PDF", string(document[:4]))
}

func TestAssembler_BuildRequiresSummary(t *testing.T) {
	assembler := newTestAssembler(t)

	_, err := assembler.Build(intake.Answers{}, "   ", nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, pdf.ErrNoSummary))
}

func TestAssembler_BuildIsDeterministic(t *testing.T) {
	assembler := newTestAssembler(t)
	answers := intake.Answers{"borrower_type": "Individual", "credit_score": float64(700)}
	summary := "Paragraph one.\n\nParagraph two after a blank line."
	checklist := []string{"Government-issued photo ID"}

	first, err := assembler.Build(answers, summary, checklist)
	require.NoError(t, err)
	second, err := assembler.Build(answers, summary, checklist)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssembler_BuildLongSummarySpansPages(t *testing.T) {
	assembler := newTestAssembler(t)

	// Enough paragraphs to overflow a single Letter page.
	summary := ""
	for i := 0; i < 80; i++ {
		summary += "This paragraph repeats to force the vertical cursor past the bottom margin of the first page.\n"
	}

	document, err := assembler.Build(intake.Answers{}, summary, []string{"item"})

	require.NoError(t, err)
	// A multi-page PDF references more than one /Page object.
	assert.Greater(t, len(document), 4000)
}
