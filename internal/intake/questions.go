package intake

func floatPtr(v float64) *float64 {
	return &v
}

// DefaultQuestions is the commercial loan intake table. The entity/individual
// branch after the credit score question converges on the closing timeline.
var DefaultQuestions = []Question{
	{
		ID:      "borrower_type",
		Prompt:  "What type of borrower are you?",
		Type:    QuestionTypeChoice,
		Options: []string{"Individual", "LLC", "Corporation"},
		Next:    NextRule{Kind: NextSequential},
	},
	{
		ID:      "property_type",
		Prompt:  "What property type is this request for?",
		Type:    QuestionTypeChoice,
		Options: []string{"Multifamily", "Office", "Retail", "Industrial"},
		Next:    NextRule{Kind: NextSequential},
	},
	{
		ID:          "loan_amount",
		Prompt:      "What loan amount do you need?",
		Type:        QuestionTypeNumber,
		Min:         floatPtr(10000),
		Placeholder: "Enter requested amount in USD",
		Format:      FormatCurrency,
		Next:        NextRule{Kind: NextSequential},
	},
	{
		ID:     "credit_score",
		Prompt: "What is your credit score?",
		Type:   QuestionTypeNumber,
		Min:    floatPtr(300),
		Max:    floatPtr(850),
		Next: NextRule{
			Kind: NextConditional,
			Branches: []Branch{
				{When: `answers.borrower_type == 'Individual'`, Target: "annual_income"},
			},
			Default: "business_revenue",
		},
	},
	{
		ID:          "annual_income",
		Prompt:      "What is your annual income?",
		Type:        QuestionTypeNumber,
		Min:         floatPtr(0),
		Placeholder: "Annual personal income in USD",
		Format:      FormatCurrencyPerYear,
		Next:        NextRule{Kind: NextGoto, Target: "closing_timeline"},
	},
	{
		ID:          "business_revenue",
		Prompt:      "What is your annual business revenue?",
		Type:        QuestionTypeNumber,
		Min:         floatPtr(0),
		Placeholder: "Annual business revenue in USD",
		Format:      FormatCurrencyPerYear,
		Next:        NextRule{Kind: NextGoto, Target: "closing_timeline"},
	},
	{
		ID:      "closing_timeline",
		Prompt:  "How soon do you need to close?",
		Type:    QuestionTypeChoice,
		Options: []string{"0-30 days", "31-60 days", "61-90 days", "90+ days"},
		Next:    NextRule{Kind: NextGoto, Target: "additional_notes"},
	},
	{
		ID:          "additional_notes",
		Prompt:      "Any additional context we should include in your package summary?",
		Type:        QuestionTypeText,
		Placeholder: "Optional notes (business plan, collateral, tenant profile...)",
		Next:        NextRule{Kind: NextSequential},
	},
}

// DefaultQuestionSet compiles the loan intake table.
func DefaultQuestionSet() (*QuestionSet, error) {
	return NewQuestionSet(DefaultQuestions)
}

// DefaultChecklistRules derives the required-documents list from the answers.
// Rules are additive and applied in declaration order; nothing is
// deduplicated or suppressed.
var DefaultChecklistRules = []ChecklistRule{
	{
		Items: []string{
			"Completed personal financial statement",
			"Last 2 years of tax returns",
			"Most recent 3 months of bank statements",
			"Property rent roll and operating statement",
		},
	},
	{
		When: `has(answers.borrower_type) && answers.borrower_type in ['LLC', 'Corporation']`,
		Items: []string{
			"Articles of organization/incorporation",
			"Business debt schedule",
		},
	},
	{
		When:  `!has(answers.borrower_type) || !(answers.borrower_type in ['LLC', 'Corporation'])`,
		Items: []string{"Government-issued photo ID"},
	},
	{
		When:  `has(answers.property_type) && answers.property_type == 'Multifamily'`,
		Items: []string{"Current rent roll by unit"},
	},
	{
		When:  `has(answers.property_type) && answers.property_type in ['Office', 'Retail']`,
		Items: []string{"Major tenant lease summary"},
	},
}

// DefaultChecklist compiles the loan document checklist rules.
func DefaultChecklist() (*Checklist, error) {
	return NewChecklist(DefaultChecklistRules)
}
