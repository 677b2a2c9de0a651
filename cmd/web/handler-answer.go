package main

import (
	"log/slog"
	"net/http"

	"github.com/lendfolio/lendfolio/internal/errors"
	"github.com/lendfolio/lendfolio/internal/intake"
)

const draftSaveFailedMessage = "We could not save your draft automatically. Use Save Submission to retry."

func (app *application) submitAnswer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	raw := r.PostForm.Get("answer")

	wizard := app.loadWizard(r.Context())
	err := wizard.SubmitAnswer(r.Context(), raw)

	var validationErr *intake.ValidationError
	switch {
	case errors.As(err, &validationErr):
		// The wizard state is untouched, so there is nothing to store.
		app.respondAssistant(w, r, wizard, validationErr.Message, "")
		return
	case errors.Is(err, intake.ErrFlowComplete):
		// A stale form post after completion, just refresh the panel.
		app.respondAssistant(w, r, wizard, "", "")
		return
	case errors.Is(err, intake.ErrDraftSave):
		// The conversation advanced even though the save failed. Keep the
		// state and let the user retry with an explicit save.
		app.logger.LogAttrs(r.Context(), slog.LevelError, "automatic draft save failed", errors.SlogError(err))
		if storeErr := app.storeWizard(r.Context(), wizard); storeErr != nil {
			app.serverError(w, r, storeErr)
			return
		}
		app.respondAssistant(w, r, wizard, "", draftSaveFailedMessage)
		return
	case err != nil:
		app.serverError(w, r, err)
		return
	}

	if err = app.storeWizard(r.Context(), wizard); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.respondAssistant(w, r, wizard, "", "")
}

// resetAssistant discards the conversation along with the session's summary
// and saved-submission bookkeeping. Already persisted submissions stay in the
// database.
func (app *application) resetAssistant(w http.ResponseWriter, r *http.Request) {
	wizard := intake.NewWizard(app.questions, app.draftSaver())
	if err := app.storeWizard(r.Context(), wizard); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Remove(r.Context(), summarySessionKey)
	app.sessionManager.Remove(r.Context(), savedSessionKey)
	app.sessionManager.Remove(r.Context(), submissionIDSessionKey)

	app.respondAssistant(w, r, wizard, "", "")
}
