package intake_test

import (
	"testing"

	"github.com/lendfolio/lendfolio/internal/intake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDefaultChecklist(t *testing.T) *intake.Checklist {
	t.Helper()
	checklist, err := intake.DefaultChecklist()
	require.NoError(t, err)
	return checklist
}

func TestChecklist_Build(t *testing.T) {
	checklist := mustDefaultChecklist(t)

	baseline := []string{
		"Completed personal financial statement",
		"Last 2 years of tax returns",
		"Most recent 3 months of bank statements",
		"Property rent roll and operating statement",
	}

	tests := []struct {
		name        string
		answers     intake.Answers
		wantInclude []string
		wantExclude []string
	}{
		{
			name:        "LLC gets organizational documents, no photo ID",
			answers:     intake.Answers{"borrower_type": "LLC"},
			wantInclude: []string{"Articles of organization/incorporation", "Business debt schedule"},
			wantExclude: []string{"Government-issued photo ID"},
		},
		{
			name:        "individual gets photo ID, no organizational documents",
			answers:     intake.Answers{"borrower_type": "Individual"},
			wantInclude: []string{"Government-issued photo ID"},
			wantExclude: []string{"Articles of organization/incorporation", "Business debt schedule"},
		},
		{
			name:        "unanswered borrower type falls back to photo ID",
			answers:     intake.Answers{},
			wantInclude: []string{"Government-issued photo ID"},
			wantExclude: []string{"Articles of organization/incorporation"},
		},
		{
			name:        "multifamily adds unit rent roll regardless of borrower type",
			answers:     intake.Answers{"borrower_type": "Individual", "property_type": "Multifamily"},
			wantInclude: []string{"Current rent roll by unit", "Government-issued photo ID"},
			wantExclude: []string{"Major tenant lease summary"},
		},
		{
			name:        "office adds tenant lease summary",
			answers:     intake.Answers{"property_type": "Office"},
			wantInclude: []string{"Major tenant lease summary"},
			wantExclude: []string{"Current rent roll by unit"},
		},
		{
			name:        "retail adds tenant lease summary",
			answers:     intake.Answers{"property_type": "Retail"},
			wantInclude: []string{"Major tenant lease summary"},
		},
		{
			name:        "industrial adds no property items",
			answers:     intake.Answers{"property_type": "Industrial"},
			wantExclude: []string{"Major tenant lease summary", "Current rent roll by unit"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := checklist.Build(tt.answers)

			for _, item := range baseline {
				assert.Contains(t, items, item)
			}
			for _, item := range tt.wantInclude {
				assert.Contains(t, items, item)
			}
			for _, item := range tt.wantExclude {
				assert.NotContains(t, items, item)
			}
		})
	}
}

func TestChecklist_RuleOrderAndAdditivity(t *testing.T) {
	// Overlapping rules contribute duplicates on purpose.
	checklist, err := intake.NewChecklist([]intake.ChecklistRule{
		{Items: []string{"always first"}},
		{When: `answers.kind == 'x'`, Items: []string{"shared item"}},
		{When: `answers.kind in ['x', 'y']`, Items: []string{"shared item"}},
	})
	require.NoError(t, err)

	items := checklist.Build(intake.Answers{"kind": "x"})
	assert.Equal(t, []string{"always first", "shared item", "shared item"}, items)
}

func TestNewChecklist_RejectsBadExpression(t *testing.T) {
	_, err := intake.NewChecklist([]intake.ChecklistRule{
		{When: "nonsense ==", Items: []string{"item"}},
	})
	require.Error(t, err)
}
