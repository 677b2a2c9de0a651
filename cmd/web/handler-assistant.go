package main

import (
	"net/http"
	"strings"

	"github.com/lendfolio/lendfolio/internal/contexthelpers"
	"github.com/lendfolio/lendfolio/internal/errors"
	"github.com/lendfolio/lendfolio/internal/intake"
	"github.com/lendfolio/lendfolio/internal/models"
)

type progressData struct {
	Completed int
	Total     int
}

type assistantTemplateData struct {
	BaseTemplateData
	Transcript        []intake.Turn
	Current           *intake.Question
	Progress          progressData
	ValidationError   string
	Summary           string
	SummaryParagraphs []string
	SummaryError      string
	Checklist         []string
	Saved             bool
}

func (app *application) assistantData(r *http.Request, wizard *intake.Wizard) assistantTemplateData {
	data := assistantTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Transcript:       wizard.Transcript(),
	}
	if current, ok := wizard.Current(); ok {
		data.Current = &current
	}
	data.Progress.Completed, data.Progress.Total = wizard.Progress()

	ctx := r.Context()
	data.Summary = app.sessionManager.GetString(ctx, summarySessionKey)
	data.Saved = app.sessionManager.GetBool(ctx, savedSessionKey)
	if data.Summary != "" {
		for _, paragraph := range strings.Split(data.Summary, "\n") {
			if trimmed := strings.TrimSpace(paragraph); trimmed != "" {
				data.SummaryParagraphs = append(data.SummaryParagraphs, trimmed)
			}
		}
	}
	if wizard.Complete() {
		data.Checklist = app.checklist.Build(wizard.Answers())
	}
	return data
}

// assistantPage renders the intake conversation. First visits establish an
// anonymous borrower identity so drafts and submissions have an owner without
// an account or login step.
func (app *application) assistantPage(w http.ResponseWriter, r *http.Request) {
	r, err := app.ensureIdentity(w, r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	wizard := app.loadWizard(r.Context())
	data := app.assistantData(r, wizard)
	data.ValidationError = app.sessionManager.PopString(r.Context(), flashSessionKey)

	app.render(w, r, http.StatusOK, "assistant", data)
}

func (app *application) ensureIdentity(w http.ResponseWriter, r *http.Request) (*http.Request, error) {
	if contexthelpers.AuthenticatedUserID(r.Context()) != nil {
		return r, nil
	}

	user, err := models.NewUser()
	if err != nil {
		return r, errors.Wrap(err, "create anonymous user")
	}
	if err = app.users.Upsert(r.Context(), user); err != nil {
		return r, errors.Wrap(err, "store anonymous user")
	}
	if err = app.sessionManager.RenewToken(r.Context()); err != nil {
		return r, errors.Wrap(err, "renew session token")
	}
	app.sessionManager.Put(r.Context(), userIDSessionKey, user.ID)
	return contexthelpers.AuthenticateContext(r, user.ID), nil
}

// respondAssistant completes a form post: htmx requests get the refreshed
// conversation panel to swap in place, plain form posts get a
// POST-redirect-GET with the message carried in a session flash.
func (app *application) respondAssistant(
	w http.ResponseWriter,
	r *http.Request,
	wizard *intake.Wizard,
	validationError string,
	summaryError string,
) {
	if app.htmx.NewHandler(w, r).IsHxRequest() {
		data := app.assistantData(r, wizard)
		data.ValidationError = validationError
		data.SummaryError = summaryError
		app.renderTemplate(w, r, http.StatusOK, "assistant", "panel", data)
		return
	}

	if flash := validationError + summaryError; flash != "" {
		app.sessionManager.Put(r.Context(), flashSessionKey, flash)
	}
	http.Redirect(w, r, "/assistant", http.StatusSeeOther)
}
