package main

import (
	"net/http"

	"github.com/lendfolio/lendfolio/internal/errors"
)

// saveSubmission persists the current answers and summary on demand. It works
// mid-flow too, so a borrower can bank a partial intake.
func (app *application) saveSubmission(w http.ResponseWriter, r *http.Request) {
	wizard := app.loadWizard(r.Context())
	summary := app.sessionManager.GetString(r.Context(), summarySessionKey)

	if err := app.persistSubmission(r.Context(), wizard.Answers(), summary); err != nil {
		if errors.Is(err, errNotAuthenticated) {
			app.clientError(w, r, http.StatusUnauthorized)
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), savedSessionKey, true)
	app.respondAssistant(w, r, wizard, "", "")
}
