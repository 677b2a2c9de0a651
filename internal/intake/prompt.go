package intake

import "strings"

// FormatAnswerLines renders one line per answered question in flow order,
// each as "- <prompt> <formatted value>". The same rendering feeds the
// summary prompt and the Borrower Snapshot section of the package document.
func FormatAnswerLines(qs *QuestionSet, answers Answers) []string {
	var lines []string
	for _, id := range qs.Flow(answers) {
		q, ok := qs.Question(id)
		if !ok {
			continue
		}
		value, answered := answers[id]
		if !answered {
			continue
		}
		lines = append(lines, "- "+q.Prompt+" "+FormatValue(q, value))
	}
	return lines
}

// FormatAnswersForPrompt joins the answer lines into the borrower-data block
// of the summary prompt.
func FormatAnswersForPrompt(qs *QuestionSet, answers Answers) string {
	return strings.Join(FormatAnswerLines(qs, answers), "\n")
}
