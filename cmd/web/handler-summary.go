package main

import (
	"log/slog"
	"net/http"

	"github.com/lendfolio/lendfolio/internal/errors"
	"github.com/lendfolio/lendfolio/internal/intake"
)

const (
	summaryNotConfiguredMessage = "Summary generation is not configured on this server. Set OPENAI_API_KEY to enable it."
	summaryIncompleteMessage    = "Finish the intake before generating your loan summary."
	summaryFailedMessage        = "We could not generate your summary. Please try again."
)

// generateSummary runs a single stateless completion over the formatted
// answer set and stores the returned prose in the session. The raw intake
// transcript is never sent to the model.
func (app *application) generateSummary(w http.ResponseWriter, r *http.Request) {
	wizard := app.loadWizard(r.Context())
	if !wizard.Complete() {
		app.respondAssistant(w, r, wizard, "", summaryIncompleteMessage)
		return
	}
	if app.summarizer == nil {
		app.respondAssistant(w, r, wizard, "", summaryNotConfiguredMessage)
		return
	}

	borrowerData := intake.FormatAnswersForPrompt(app.questions, wizard.Answers())
	summary, err := app.summarizer.GenerateSummary(r.Context(), borrowerData)
	if err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "summary generation failed", errors.SlogError(err))
		app.respondAssistant(w, r, wizard, "", summaryFailedMessage)
		return
	}

	app.sessionManager.Put(r.Context(), summarySessionKey, summary)

	// Keep an already saved submission in step with the new summary. A
	// failure here only affects the stored copy, the session still has the
	// summary, so log and carry on.
	if app.sessionManager.GetString(r.Context(), submissionIDSessionKey) != "" {
		if err = app.persistSubmission(r.Context(), wizard.Answers(), summary); err != nil {
			app.logger.LogAttrs(r.Context(), slog.LevelError, "refresh stored submission", errors.SlogError(err))
		}
	}

	app.respondAssistant(w, r, wizard, "", "")
}
