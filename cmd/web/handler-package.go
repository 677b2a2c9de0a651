package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// downloadPackage assembles the loan package PDF from the session's answers,
// summary and checklist. Generating a summary first is a precondition; until
// then the download redirects back to the assistant.
func (app *application) downloadPackage(w http.ResponseWriter, r *http.Request) {
	wizard := app.loadWizard(r.Context())
	summary := app.sessionManager.GetString(r.Context(), summarySessionKey)
	if !wizard.Complete() || summary == "" {
		http.Redirect(w, r, "/assistant", http.StatusSeeOther)
		return
	}

	answers := wizard.Answers()
	document, err := app.assembler.Build(answers, summary, app.checklist.Build(answers))
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	filename := fmt.Sprintf("loan-package-%s.pdf", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(document)))
	_, _ = w.Write(document)
}
