// Package pack inspects the intake flow and renders loan package PDFs
// offline from saved answer sets.
package pack

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lendfolio/lendfolio/internal/intake"
	"github.com/lendfolio/lendfolio/internal/pdf"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "pack",
	Title: "Loan package operations",
}

func init() {
	Flow.Flags().String("answers", "", "path to an answers JSON file, omit for an empty answer set")
	Render.Flags().String("answers", "./answers.json", "path to the answers JSON file")
	Render.Flags().String("summary", "./summary.txt", "path to the summary text file")
	Render.Flags().String("out", "./loan-package.pdf", "path to the generated PDF")
}

// loadAnswers reads an answer set from a JSON file. An empty path yields an
// empty answer set. Going through JSON gives the same float64 number
// convention the web session uses.
func loadAnswers(path string) (intake.Answers, error) {
	answers := make(intake.Answers)
	if path == "" {
		return answers, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}
	if err = json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("decode answers file: %w", err)
	}
	return answers, nil
}

var Flow = &cobra.Command{
	Use:     "flow",
	GroupID: "pack",
	Short:   "Print the resolved question flow",
	Long:    `Resolves the intake question flow for an answer set and prints each question with its answer, followed by the document checklist.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		answersPath, err := cmd.Flags().GetString("answers")
		if err != nil {
			return err
		}
		answers, err := loadAnswers(answersPath)
		if err != nil {
			return err
		}

		questions, err := intake.DefaultQuestionSet()
		if err != nil {
			return err
		}
		checklist, err := intake.DefaultChecklist()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, id := range questions.Flow(answers) {
			question, ok := questions.Question(id)
			if !ok {
				continue
			}
			_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, question.Prompt)
			if value, answered := answers[id]; answered {
				_, _ = fmt.Fprintf(out, "   %s\n", intake.FormatValue(question, value))
			}
		}

		completed, total := questions.Progress(answers)
		_, _ = fmt.Fprintf(out, "\n%d of %d answered\n", completed, total)

		_, _ = fmt.Fprintln(out, "\nDocument checklist:")
		for _, item := range checklist.Build(answers) {
			_, _ = fmt.Fprintf(out, "- %s\n", item)
		}
		return nil
	},
}

var Render = &cobra.Command{
	Use:     "render",
	GroupID: "pack",
	Short:   "Render a loan package PDF",
	Long:    `Assembles the loan package PDF from a saved answers file and a summary text file, without a running server.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		answersPath, err := cmd.Flags().GetString("answers")
		if err != nil {
			return err
		}
		summaryPath, err := cmd.Flags().GetString("summary")
		if err != nil {
			return err
		}
		outPath, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}

		answers, err := loadAnswers(answersPath)
		if err != nil {
			return err
		}
		summary, err := os.ReadFile(summaryPath)
		if err != nil {
			return fmt.Errorf("read summary file: %w", err)
		}

		questions, err := intake.DefaultQuestionSet()
		if err != nil {
			return err
		}
		checklist, err := intake.DefaultChecklist()
		if err != nil {
			return err
		}

		document, err := pdf.NewAssembler(questions, nil).Build(answers, string(summary), checklist.Build(answers))
		if err != nil {
			return err
		}
		if err = os.WriteFile(outPath, document, 0o644); err != nil {
			return fmt.Errorf("write PDF: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "The loan package was saved as %s\n", outPath)
		return nil
	},
}
